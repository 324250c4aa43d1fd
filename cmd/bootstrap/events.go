package bootstrap

import (
	"context"
	"log/slog"

	"travel-kernel/internal/infra/events"
	"travel-kernel/internal/pkg/config"
	"travel-kernel/internal/usecase/shared"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.EventPublisher {
	if !cfg.Kafka.Enabled {
		logger.Info("event publishing disabled")
		return events.Noop{}
	}

	publisher := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka, logger), cfg.Kafka, logger)
	lc.Append(fx.Hook{
		// flushes buffered async messages
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
