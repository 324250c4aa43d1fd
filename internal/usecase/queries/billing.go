package queries

import (
	"context"
	"log/slog"

	"travel-kernel/internal/domain/billing"
	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/infra"
	"travel-kernel/internal/usecase/shared"
)

//go:generate mockgen -source=billing.go -destination=../../../tests/mock/queries/billing_mock.go -package=queriesmock

type BillingQueries interface {
	ByBillingID(ctx context.Context, actor user.Actor, billingID string) (*BillView, error)
	ByUser(ctx context.Context, actor user.Actor, userID string) ([]*BillView, error)
	// Search pins non-admin callers to their own user id.
	Search(ctx context.Context, actor user.Actor, filter billing.SearchFilter) ([]*BillView, error)
}

type billingQueriesImpl struct {
	reader shared.BillReader
	cache  shared.ViewCache
	logger *slog.Logger
}

func NewBillingQueries(reader shared.BillReader, cache shared.ViewCache, logger *slog.Logger) BillingQueries {
	return &billingQueriesImpl{reader: reader, cache: cache, logger: logger}
}

func (q *billingQueriesImpl) ByBillingID(ctx context.Context, actor user.Actor, billingID string) (*BillView, error) {
	rows, err := q.reader.ByBillingID(ctx, billingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, billing.ErrNotFound
		}
		return nil, err
	}
	bill, err := billing.NewBill(rows)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(bill.UserID) {
		return nil, ErrAccessDenied
	}
	return NewBillView(bill), nil
}

func (q *billingQueriesImpl) ByUser(ctx context.Context, actor user.Actor, userID string) ([]*BillView, error) {
	if !actor.CanActFor(userID) {
		return nil, ErrAccessDenied
	}

	scope := shared.BillScope(userID)
	var cached []*BillView
	lookup := cacheGet(ctx, q.cache, q.logger, scope, "all", &cached)
	if lookup.hit {
		return cached, nil
	}

	rows, err := q.reader.ByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	bills, err := billing.Group(rows)
	if err != nil {
		return nil, err
	}
	views := NewBillViews(bills)
	cacheSet(ctx, q.cache, q.logger, lookup, scope, "all", views)
	return views, nil
}

func (q *billingQueriesImpl) Search(ctx context.Context, actor user.Actor, filter billing.SearchFilter) ([]*BillView, error) {
	if !actor.IsAdmin() {
		if filter.UserID != "" && filter.UserID != actor.UserID {
			return nil, ErrAccessDenied
		}
		filter.UserID = actor.UserID
	}
	if filter.Status != "" {
		if _, err := billing.ParseStatus(string(filter.Status)); err != nil {
			return nil, err
		}
	}
	if _, _, err := filter.Range(); err != nil {
		return nil, err
	}

	rows, err := q.reader.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	bills, err := billing.Group(rows)
	if err != nil {
		return nil, err
	}
	return NewBillViews(bills), nil
}
