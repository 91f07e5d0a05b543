package logger

import (
	"hotelpms/config"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogFileMaxSizeMB  = 50
	defaultLogFileMaxBackups = 5
	defaultLogFileMaxAgeDays = 14
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == "" {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}

// NewFileWriter builds the rotating file writer described by SERVER_LOG_FILE_*.
// It returns nil when no path is configured.
func NewFileWriter(config *config.Config) *lumberjack.Logger {
	fileCfg := config.Server.LogFile
	if fileCfg.Path == "" {
		return nil
	}

	maxSize := fileCfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultLogFileMaxSizeMB
	}

	maxBackups := fileCfg.MaxBackups
	if maxBackups <= 0 {
		maxBackups = defaultLogFileMaxBackups
	}

	maxAge := fileCfg.MaxAgeDays
	if maxAge <= 0 {
		maxAge = defaultLogFileMaxAgeDays
	}

	return &lumberjack.Logger{
		Filename:   fileCfg.Path,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   fileCfg.Compress,
		LocalTime:  true,
	}
}

// SetFileOutput tees the global logger into the rotating log file.
// The returned closer must be closed on shutdown; it is a no-op when file logging is disabled.
func SetFileOutput(config *config.Config) io.Closer {
	fileWriter := NewFileWriter(config)
	if fileWriter == nil {
		return io.NopCloser(nil)
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(zerolog.MultiLevelWriter(console, fileWriter))

	log.Info().Str("path", fileWriter.Filename).Msg("File logging enabled.")

	return fileWriter
}
