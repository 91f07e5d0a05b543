package logger_test

import (
	"bytes"
	"errors"
	"hotelpms/config"
	"hotelpms/shared/logger"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("payment insert failed"))

	assert.Contains(t, buf.String(), "payment insert failed")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "debug", level: "debug", expected: zerolog.DebugLevel},
		{name: "warn", level: "warn", expected: zerolog.WarnLevel},
		{name: "error", level: "error", expected: zerolog.ErrorLevel},
		{name: "empty falls back to trace", level: "", expected: zerolog.TraceLevel},
		{name: "garbage falls back to trace", level: "loud", expected: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.level

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}

	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func TestNewFileWriter(t *testing.T) {
	cfg := &config.Config{}
	assert.Nil(t, logger.NewFileWriter(cfg))

	cfg.Server.LogFile.Path = filepath.Join(t.TempDir(), "app.log")
	cfg.Server.LogFile.MaxBackups = 2

	writer := logger.NewFileWriter(cfg)

	assert.NotNil(t, writer)
	assert.Equal(t, cfg.Server.LogFile.Path, writer.Filename)
	assert.Equal(t, 50, writer.MaxSize)
	assert.Equal(t, 2, writer.MaxBackups)
	assert.Equal(t, 14, writer.MaxAge)
}

func TestSetFileOutput(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	cfg := &config.Config{}
	cfg.Server.LogFile.Path = filepath.Join(t.TempDir(), "hotel.log")

	closer := logger.SetFileOutput(cfg)

	log.Info().Msg("room 101 checked in")
	assert.NoError(t, closer.Close())

	content, err := os.ReadFile(cfg.Server.LogFile.Path)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "room 101 checked in")
}
