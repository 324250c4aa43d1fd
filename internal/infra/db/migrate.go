package db

import (
	"context"
	"log/slog"

	"travel-kernel/internal/pkg/config"
	"travel-kernel/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// Migrate applies pending versioned migrations from cfg.MigrationsDir using the
// atlas CLI found at cfg.AtlasBinary.
func Migrate(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) error {
	client, err := atlasexec.NewClient(".", cfg.AtlasBinary)
	if err != nil {
		return errs.Wrap(err, "failed to init atlas client")
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    cfg.BuildDSN(),
		DirURL: cfg.MigrationsDir,
	})
	if err != nil {
		return errs.Wrap(err, "failed to apply ledger migrations")
	}

	logger.Info("ledger migrations applied",
		slog.Int("applied", len(res.Applied)),
		slog.String("current", res.Current),
		slog.String("target", res.Target),
	)
	return nil
}
