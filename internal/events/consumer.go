package events

import (
	"context"
	"hotelpms/infras/kafka"
	"hotelpms/shared"
	"hotelpms/shared/cache"
	"hotelpms/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// RoomStatusHandler clears the room and booking prefixes of the redis cache shared by every API
// instance. A consumer group hands each event to one worker, so it is cleared once per event.
// Malformed messages are logged and skipped so they never block the partition.
func RoomStatusHandler(redisCache cache.RedisCache) kafka.Handler {
	return func(ctx context.Context, message kafkaGo.Message) error {
		event, err := kafka.DecodeKafkaMessage[RoomStatusChanged](message)
		if err != nil {
			log.Error().Err(err).Str("key", string(message.Key)).Msg("skipping malformed room status event")

			return nil
		}

		shared.InvalidateCaches(ctx, redisCache, constant.CachePrefixRoom)
		shared.InvalidateCaches(ctx, redisCache, constant.CachePrefixBooking)

		log.Info().
			Str("room_id", event.RoomID).
			Str("room_number", event.RoomNumber).
			Str("from", event.PreviousStatus.String()).
			Str("to", event.Status.String()).
			Msg("room status changed")

		return nil
	}
}
