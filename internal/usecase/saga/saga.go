// Package saga drives compensation for multi-store workflows. Forward steps
// run in the caller; each successful step registers how to undo itself, and
// Compensate replays those undos newest first.
package saga

import (
	"context"
	"log/slog"
	"time"

	"travel-kernel/internal/pkg/errs"
)

type Policy struct {
	Attempts int
	Backoff  time.Duration
}

type step struct {
	name       string
	compensate func(ctx context.Context) error
}

type Saga struct {
	name   string
	policy Policy
	logger *slog.Logger
	steps  []step
}

func New(name string, policy Policy, logger *slog.Logger) *Saga {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	return &Saga{name: name, policy: policy, logger: logger}
}

// Add registers the undo for a step that has completed.
func (s *Saga) Add(name string, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, step{name: name, compensate: compensate})
}

func (s *Saga) Len() int {
	return len(s.steps)
}

// Compensate runs every registered undo in reverse order, each with bounded
// retries. It ignores cancellation of ctx: once started, compensation runs to
// the end. The returned error joins the undos that never succeeded.
func (s *Saga) Compensate(ctx context.Context, cause error) error {
	ctx = context.WithoutCancel(ctx)

	causeMsg := ""
	if cause != nil {
		causeMsg = cause.Error()
	}
	s.logger.Warn("compensating saga", "saga", s.name, "steps", len(s.steps), "cause", causeMsg)

	var failed []error
	for i := len(s.steps) - 1; i >= 0; i-- {
		st := s.steps[i]
		if err := Retry(ctx, s.policy, st.compensate); err != nil {
			s.logger.Error("compensation exhausted retries",
				"saga", s.name,
				"step", st.name,
				"attempts", s.policy.Attempts,
				"critical", true,
				"error", err.Error(),
			)
			failed = append(failed, errs.Wrapf(err, "compensate %s", st.name))
			continue
		}
		s.logger.Info("compensated", "saga", s.name, "step", st.name)
	}
	s.steps = nil
	return errs.Join(failed...)
}

// Retry calls fn up to policy.Attempts times, doubling the backoff between tries.
func Retry(ctx context.Context, policy Policy, fn func(ctx context.Context) error) error {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}
	wait := policy.Backoff

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return errs.Join(err, ctx.Err())
		case <-time.After(wait):
		}
		wait *= 2
	}
	return err
}
