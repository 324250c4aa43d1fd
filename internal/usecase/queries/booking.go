package queries

import (
	"context"
	"log/slog"

	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/infra"
	"travel-kernel/internal/pkg/errs"
	"travel-kernel/internal/usecase/shared"
)

var ErrAccessDenied = errs.Mark(errs.New("access denied"), errs.ErrForbidden)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/queries/booking_mock.go -package=queriesmock

type BookingQueries interface {
	Get(ctx context.Context, actor user.Actor, bookingID string) (*BookingView, error)
	ListByUser(ctx context.Context, actor user.Actor, userID string, filter shared.BookingFilter) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store  shared.BookingStore
	cache  shared.ViewCache
	logger *slog.Logger
}

func NewBookingQueries(store shared.BookingStore, cache shared.ViewCache, logger *slog.Logger) BookingQueries {
	return &bookingQueriesImpl{store: store, cache: cache, logger: logger}
}

func (q *bookingQueriesImpl) Get(ctx context.Context, actor user.Actor, bookingID string) (*BookingView, error) {
	b, err := q.store.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}
	if !actor.CanActFor(b.UserID()) {
		return nil, ErrAccessDenied
	}
	return NewBookingView(b), nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, actor user.Actor, userID string, filter shared.BookingFilter) ([]*BookingView, error) {
	if !actor.CanActFor(userID) {
		return nil, ErrAccessDenied
	}
	if filter.Status != "" {
		if _, err := booking.ParseStatus(string(filter.Status)); err != nil {
			return nil, err
		}
	}

	scope := shared.UserScope(userID)
	key := "bookings:" + string(filter.Status) + ":" + filter.BillingID

	var cached []*BookingView
	lookup := cacheGet(ctx, q.cache, q.logger, scope, key, &cached)
	if lookup.hit {
		return cached, nil
	}

	bs, err := q.store.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	views := NewBookingViews(bs)
	cacheSet(ctx, q.cache, q.logger, lookup, scope, key, views)
	return views, nil
}

// cachedLookup is the outcome of a view cache read. A failed read leaves
// writable false so the recomputed view is not written back.
type cachedLookup struct {
	gen      shared.Generation
	hit      bool
	writable bool
}

// cacheGet treats a cache failure as a miss.
func cacheGet(ctx context.Context, c shared.ViewCache, logger *slog.Logger, scope, key string, dst any) cachedLookup {
	gen, hit, err := c.Get(ctx, scope, key, dst)
	if err != nil {
		logger.Warn("view cache read failed", "scope", scope, "error", err.Error())
		return cachedLookup{}
	}
	return cachedLookup{gen: gen, hit: hit, writable: true}
}

func cacheSet(ctx context.Context, c shared.ViewCache, logger *slog.Logger, lookup cachedLookup, scope, key string, value any) {
	if !lookup.writable {
		return
	}
	if err := c.Set(ctx, scope, key, lookup.gen, value); err != nil {
		logger.Warn("view cache write failed", "scope", scope, "error", err.Error())
	}
}
