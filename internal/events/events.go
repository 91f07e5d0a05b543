package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotelpms/config"
	"hotelpms/infras/kafka"
	"hotelpms/infras/otel"
	"hotelpms/shared/constant"
	"hotelpms/shared/policy"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

const breakerName = "room-status-publisher"

// RoomStatusChanged is published whenever a room moves to a new status.
type RoomStatusChanged struct {
	RoomID         string            `json:"room_id"`
	RoomNumber     string            `json:"room_number"`
	Status         policy.RoomStatus `json:"status"`
	PreviousStatus policy.RoomStatus `json:"previous_status"`
	BookingID      string            `json:"booking_id,omitempty"`
	ChangedAt      time.Time         `json:"changed_at"`
}

type Publisher interface {
	PublishRoomStatus(ctx context.Context, changes ...RoomStatusChanged) error
}

type publisherImpl struct {
	client  kafka.Client
	topic   string
	breaker *gobreaker.CircuitBreaker
	otel    otel.Otel
}

// NewPublisher returns a publisher that sends room status events to the configured topic.
// With no topic configured events are dropped.
func NewPublisher(cfg *config.Config, client kafka.Client, otel otel.Otel) Publisher {
	breakerCfg := cfg.Kafka.Breaker

	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: breakerCfg.MaxRequests,
		Interval:    time.Duration(breakerCfg.IntervalSeconds) * time.Second,
		Timeout:     time.Duration(breakerCfg.TimeoutSeconds) * time.Second,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	}

	if breakerCfg.ConsecutiveFailures > 0 {
		settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerCfg.ConsecutiveFailures
		}
	}

	return &publisherImpl{
		client:  client,
		topic:   cfg.Kafka.Topics.RoomStatus,
		breaker: gobreaker.NewCircuitBreaker(settings),
		otel:    otel,
	}
}

func (p *publisherImpl) PublishRoomStatus(ctx context.Context, changes ...RoomStatusChanged) (err error) {
	if len(changes) == 0 || p.topic == "" {
		return nil
	}

	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".PublishRoomStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	messages := make([]kafka.Message, len(changes))
	for idx, change := range changes {
		messages[idx] = kafka.Message{Key: change.RoomID, Value: change}
	}

	_, err = p.breaker.Execute(func() (any, error) {
		return nil, p.client.SendMessages(ctx, p.topic, messages...)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		log.Warn().Err(err).Int("events", len(changes)).Msg("room status events dropped, broker unavailable")

		return fmt.Errorf("room status publisher unavailable: %w", err)
	}

	if err != nil {
		log.Error().Err(err).Int("events", len(changes)).Msg("failed to publish room status events")

		return fmt.Errorf("failed to publish room status events: %w", err)
	}

	scope.SetAttribute("events.count", len(changes))

	return nil
}
