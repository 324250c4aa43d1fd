package bootstrap

import (
	"context"
	"log/slog"

	"travel-kernel/internal/infra/cache"
	"travel-kernel/internal/pkg/config"
	"travel-kernel/internal/usecase/shared"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewViewCache,
	),
)

// NewViewCache falls back to a no-op cache when CACHE_ENABLED is off. Every
// read path works without it.
func NewViewCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.ViewCache, error) {
	if !cfg.Redis.Enabled {
		logger.Info("view cache disabled")
		return cache.Noop{}, nil
	}

	client, cleanup, err := cache.Connect(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return cache.NewRedisViewCache(client, cfg.Redis.TTL, logger), nil
}
