package commands

import (
	"context"
	"log/slog"
	"time"

	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/infra"
	"travel-kernel/internal/pkg/clock"
	"travel-kernel/internal/usecase/saga"
	"travel-kernel/internal/usecase/shared"
)

// BookingSettings carries the hold horizon and the compensation retry policy.
type BookingSettings struct {
	HoldHorizon  time.Duration
	Compensation saga.Policy
}

// lifecycle owns the booking transitions shared by the booking and checkout
// commands, together with their side effects on caches and the event bus.
type lifecycle struct {
	store    shared.BookingStore
	cache    shared.ViewCache
	events   shared.EventPublisher
	clock    clock.Clock
	settings BookingSettings
	logger   *slog.Logger
}

// fail moves Pending bookings among ids to Failed. With a billingID it also
// reverts the Confirmed ones paid by that billing. Bookings confirmed by any
// other payment and terminal bookings are left as they are.
func (l *lifecycle) fail(ctx context.Context, ids []string, billingID string) ([]*booking.Booking, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	now := l.clock.Now()

	var changed []*booking.Booking
	err := l.store.Within(ctx, func(ctx context.Context, tx shared.BookingTx) error {
		changed = changed[:0]
		found, err := tx.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, b := range found {
			from := b.Status()
			switch {
			case from == booking.StatusPending:
				if err := b.Fail(now); err != nil {
					return err
				}
			case billingID != "" && from == booking.StatusConfirmed && b.BillingID() == billingID:
				if _, err := b.Compensate(now); err != nil {
					return err
				}
			default:
				continue
			}
			if err := tx.Update(ctx, b, from); err != nil {
				return err
			}
			changed = append(changed, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.announce(ctx, changed...)
	return changed, nil
}

// expire fails Pending holds in scope that are older than horizon.
func (l *lifecycle) expire(ctx context.Context, scope shared.StaleScope, horizon time.Duration) ([]*booking.Booking, error) {
	now := l.clock.Now()
	cutoff := now.Add(-horizon)

	var expired []*booking.Booking
	err := l.store.Within(ctx, func(ctx context.Context, tx shared.BookingTx) error {
		expired = expired[:0]
		stale, err := tx.Stale(ctx, cutoff, scope)
		if err != nil {
			return err
		}
		for _, b := range stale {
			if !b.IsStale(now, horizon) {
				continue
			}
			if err := b.Fail(now); err != nil {
				continue
			}
			if err := tx.Update(ctx, b, booking.StatusPending); err != nil {
				// confirmed or cancelled in the meantime
				if infra.IsKind(err, infra.KindWriteConflict) {
					continue
				}
				return err
			}
			expired = append(expired, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(expired) > 0 {
		l.logger.Info("expired stale holds",
			"count", len(expired),
			"userId", scope.UserID,
			"listingId", scope.ListingID,
		)
	}
	l.announce(ctx, expired...)
	return expired, nil
}

// announce drops cached views touched by the given bookings and publishes
// their new state. Failures are logged; they never fail the transition.
func (l *lifecycle) announce(ctx context.Context, bs ...*booking.Booking) {
	if len(bs) == 0 {
		return
	}
	now := l.clock.Now()

	seen := make(map[string]struct{})
	scopes := make([]string, 0, len(bs)*2)
	add := func(scope string) {
		if _, ok := seen[scope]; ok {
			return
		}
		seen[scope] = struct{}{}
		scopes = append(scopes, scope)
	}

	events := make([]shared.BookingEvent, 0, len(bs))
	for _, b := range bs {
		add(shared.ListingScope(b.ListingID()))
		add(shared.UserScope(b.UserID()))
		if b.BillingID() != "" {
			add(shared.BillScope(b.UserID()))
		}
		events = append(events, shared.NewBookingEvent(b, now))
	}

	l.invalidate(ctx, scopes...)
	l.events.PublishBooking(ctx, events...)
}

func (l *lifecycle) invalidate(ctx context.Context, scopes ...string) {
	if err := l.cache.Invalidate(context.WithoutCancel(ctx), scopes...); err != nil {
		l.logger.Warn("view cache invalidation failed", "scopes", scopes, "error", err.Error())
	}
}

// compensator builds a saga using the configured retry policy.
func (l *lifecycle) compensator(name string) *saga.Saga {
	return saga.New(name, l.settings.Compensation, l.logger)
}
