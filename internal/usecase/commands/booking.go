package commands

import (
	"context"
	"log/slog"
	"time"

	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/infra"
	"travel-kernel/internal/pkg/clock"
	"travel-kernel/internal/usecase/shared"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking_mock.go -package=commandsmock

type BookingCommands interface {
	// CreateHold reserves capacity for one cart item as a Pending booking.
	CreateHold(ctx context.Context, spec booking.HoldSpec) (*booking.Booking, error)
	// Cancel cancels the booking and every non-terminal sibling sharing its billing id.
	Cancel(ctx context.Context, actor user.Actor, bookingID string) ([]*booking.Booking, error)
	// FailMany fails the Pending bookings among ids. Replays are no-ops.
	FailMany(ctx context.Context, ids []string) (int64, error)
	// ExpireStale fails every Pending hold older than horizon, or the
	// configured horizon when horizon is zero.
	ExpireStale(ctx context.Context, horizon time.Duration) ([]string, error)
}

type bookingUseCaseImpl struct {
	*lifecycle
	listings shared.ListingReader
	services *booking.Services
}

func NewBookingUseCase(
	store shared.BookingStore,
	listings shared.ListingReader,
	cache shared.ViewCache,
	events shared.EventPublisher,
	clk clock.Clock,
	settings BookingSettings,
	logger *slog.Logger,
) BookingCommands {
	return &bookingUseCaseImpl{
		lifecycle: &lifecycle{
			store:    store,
			cache:    cache,
			events:   events,
			clock:    clk,
			settings: settings,
			logger:   logger,
		},
		listings: listings,
		services: &booking.Services{Clock: clk},
	}
}

func (uc *bookingUseCaseImpl) CreateHold(ctx context.Context, spec booking.HoldSpec) (*booking.Booking, error) {
	spec, err := spec.Normalize()
	if err != nil {
		return nil, err
	}

	// abandoned carts of the same user must not block the new hold
	if _, err := uc.expire(ctx, shared.StaleScope{UserID: spec.UserID, ListingID: spec.ListingID}, uc.settings.HoldHorizon); err != nil {
		return nil, err
	}

	l, err := uc.listings.Get(ctx, spec.Variant, spec.ListingID)
	if err != nil {
		return nil, err
	}

	var held *booking.Booking
	key := shared.InventoryKey{ListingID: spec.ListingID, SubType: spec.SubType}
	err = uc.store.Hold(ctx, key, func(ctx context.Context, tx shared.BookingTx) error {
		from, to := booking.CoarseSpan(spec.Query())
		existing, err := tx.Active(ctx, spec.ListingID, from, to)
		if err != nil {
			return err
		}
		b, err := booking.NewHold(uc.services, spec, l, existing)
		if err != nil {
			return err
		}
		if err := tx.Insert(ctx, b); err != nil {
			return err
		}
		held = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.announce(ctx, held)
	return held, nil
}

func (uc *bookingUseCaseImpl) Cancel(ctx context.Context, actor user.Actor, bookingID string) ([]*booking.Booking, error) {
	now := uc.clock.Now()

	var cancelled []*booking.Booking
	err := uc.store.Within(ctx, func(ctx context.Context, tx shared.BookingTx) error {
		cancelled = cancelled[:0]
		b, err := tx.FindByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return booking.ErrNotFound
			}
			return err
		}
		if !actor.CanActFor(b.UserID()) {
			return ErrNotOwner
		}
		if b.Status().IsTerminal() {
			return booking.ErrAlreadyTerminal
		}

		group := []*booking.Booking{b}
		if b.BillingID() != "" {
			if group, err = tx.FindByBillingID(ctx, b.BillingID()); err != nil {
				return err
			}
		}
		for _, s := range group {
			if s.Status().IsTerminal() {
				continue
			}
			from := s.Status()
			if err := s.Cancel(now); err != nil {
				return err
			}
			if err := tx.Update(ctx, s, from); err != nil {
				return err
			}
			cancelled = append(cancelled, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.announce(ctx, cancelled...)
	return cancelled, nil
}

func (uc *bookingUseCaseImpl) FailMany(ctx context.Context, ids []string) (int64, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, ErrNoBookings
	}
	changed, err := uc.fail(ctx, ids, "")
	if err != nil {
		return 0, err
	}
	return int64(len(changed)), nil
}

func (uc *bookingUseCaseImpl) ExpireStale(ctx context.Context, horizon time.Duration) ([]string, error) {
	if horizon <= 0 {
		horizon = uc.settings.HoldHorizon
	}
	expired, err := uc.expire(ctx, shared.StaleScope{}, horizon)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(expired))
	for _, b := range expired {
		ids = append(ids, b.ID())
	}
	return ids, nil
}

// uniqueIDs drops blanks and duplicates, keeping first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
