package bootstrap

import (
	"context"
	"log/slog"

	"travel-kernel/internal/pkg/config"
	"travel-kernel/internal/usecase/commands"
	"travel-kernel/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewSweeper,
	),
)

// SweeperWorkerModule runs the sweeper for the lifetime of the app.
var SweeperWorkerModule = fx.Module("worker/sweeper",
	fx.Invoke(startSweeper),
)

func NewSweeper(bookings commands.BookingCommands, cfg config.Config, logger *slog.Logger) *worker.Sweeper {
	return worker.NewSweeper(bookings, cfg.Booking.SweepInterval, logger)
}

func startSweeper(lc fx.Lifecycle, sweeper *worker.Sweeper) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				sweeper.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
