package main

import (
	"context"
	"hotelpms/config"
	"hotelpms/di"
	"hotelpms/internal/events"
	"hotelpms/shared/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	worker := di.InitializeWorker()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		if err := worker.Kafka.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close kafka client")
		}
	}()

	log.Info().
		Str("topic", cfg.Kafka.Topics.RoomStatus).
		Str("group", cfg.Kafka.ConsumerGroup).
		Msg("Starting room status consumer.")

	err := worker.Kafka.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topics.RoomStatus, events.RoomStatusHandler(worker.Cache))
	if err != nil {
		log.Error().Err(err).Msg("room status consumer stopped with error")
	}
}
