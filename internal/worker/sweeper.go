package worker

import (
	"context"
	"log/slog"
	"time"
)

// HoldExpirer fails Pending holds older than horizon. A zero horizon means
// the configured default.
type HoldExpirer interface {
	ExpireStale(ctx context.Context, horizon time.Duration) ([]string, error)
}

// Sweeper periodically expires abandoned holds so their capacity returns to
// the pool even when nobody books the same listing again.
type Sweeper struct {
	expirer  HoldExpirer
	interval time.Duration
	logger   *slog.Logger
}

func NewSweeper(expirer HoldExpirer, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{expirer: expirer, interval: interval, logger: logger}
}

// Run sweeps once immediately and then every interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	s.logger.Info("hold sweeper started", "interval", s.interval.String())
	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("hold sweeper stopped")
			return
		case <-t.C:
			s.sweep(ctx)
		}
	}
}

// RunOnce performs a single pass and returns the expired booking ids.
func (s *Sweeper) RunOnce(ctx context.Context) ([]string, error) {
	ids, err := s.expirer.ExpireStale(ctx, 0)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		s.logger.Info("sweep expired holds", "count", len(ids))
	}
	return ids, nil
}

func (s *Sweeper) sweep(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error("hold sweep failed", "error", err.Error())
	}
}
