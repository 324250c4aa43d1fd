package bootstrap

import (
	"context"
	"log/slog"

	"travel-kernel/internal/infra/docstore"
	"travel-kernel/internal/pkg/clock"
	"travel-kernel/internal/pkg/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
)

var MongoModule = fx.Module("mongo",
	fx.Provide(
		NewMongoClient,
		NewDocStore,
	),
)

func NewMongoClient(lc fx.Lifecycle, cfg config.Config) (*mongo.Client, error) {
	client, cleanup, err := docstore.Connect(context.Background(), cfg.Mongo)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return client, nil
}

// NewDocStore prepares collections and indexes before the first request and
// seeds listings when LISTING_FIXTURES is set.
func NewDocStore(lc fx.Lifecycle, client *mongo.Client, cfg config.Config, clk clock.Clock, logger *slog.Logger) *docstore.Store {
	store := docstore.NewStore(client, cfg.Mongo, clk, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := store.EnsureIndexes(ctx); err != nil {
				return err
			}
			if cfg.Mongo.ListingFixtures == "" {
				return nil
			}
			if err := store.LoadListingFixtures(ctx, cfg.Mongo.ListingFixtures); err != nil {
				return err
			}
			logger.Info("listing fixtures loaded", "path", cfg.Mongo.ListingFixtures)
			return nil
		},
	})

	return store
}
