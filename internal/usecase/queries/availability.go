package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/domain/listing"
	"travel-kernel/internal/pkg/clock"
	"travel-kernel/internal/usecase/shared"
)

// AvailabilityRequest asks for remaining capacity. Flights use TravelDate,
// hotels and cars use From/To.
type AvailabilityRequest struct {
	ListingID  string
	Variant    string
	SubType    string
	TravelDate *time.Time
	From       *time.Time
	To         *time.Time
	UserID     string
}

// AvailabilitySettings carries the hold horizon past which Pending holds
// no longer count against capacity.
type AvailabilitySettings struct {
	HoldHorizon time.Duration
}

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/availability_mock.go -package=queriesmock

type AvailabilityQueries interface {
	Remaining(ctx context.Context, req AvailabilityRequest) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	store    shared.BookingStore
	listings shared.ListingReader
	cache    shared.ViewCache
	events   shared.EventPublisher
	clock    clock.Clock
	settings AvailabilitySettings
	logger   *slog.Logger
}

func NewAvailabilityQueries(
	store shared.BookingStore,
	listings shared.ListingReader,
	cache shared.ViewCache,
	events shared.EventPublisher,
	clk clock.Clock,
	settings AvailabilitySettings,
	logger *slog.Logger,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		store:    store,
		listings: listings,
		cache:    cache,
		events:   events,
		clock:    clk,
		settings: settings,
		logger:   logger,
	}
}

func (q *availabilityQueriesImpl) Remaining(ctx context.Context, req AvailabilityRequest) (*AvailabilityView, error) {
	listingID := strings.TrimSpace(req.ListingID)
	if listingID == "" {
		return nil, booking.ErrListingIDRequired
	}
	variant, err := listing.ParseVariant(req.Variant)
	if err != nil {
		return nil, err
	}
	subType, err := listing.NormalizeSubType(variant, req.SubType)
	if err != nil {
		return nil, err
	}
	query := booking.Query{SubType: subType, Dates: queryDates(variant, req)}
	if err := query.Dates.Validate(variant); err != nil {
		return nil, err
	}

	view := &AvailabilityView{
		ListingID:  listingID,
		Variant:    variant.String(),
		SubType:    subType,
		TravelDate: query.Dates.TravelDate,
		From:       query.Dates.CheckIn,
		To:         query.Dates.CheckOut,
	}

	scope := shared.ListingScope(listingID)
	key := availabilityKey(variant, query)
	var cached AvailabilityView
	if lookup := cacheGet(ctx, q.cache, q.logger, scope, key, &cached); lookup.hit {
		view = &cached
	} else {
		l, err := q.listings.Get(ctx, variant, listingID)
		if err != nil {
			return nil, err
		}
		from, to := booking.CoarseSpan(query)
		existing, err := q.store.Active(ctx, listingID, from, to)
		if err != nil {
			return nil, err
		}
		live := booking.Live(existing, q.clock.Now(), q.settings.HoldHorizon)
		if view.Remaining, err = booking.Remaining(l, query, live); err != nil {
			return nil, err
		}
		cacheSet(ctx, q.cache, q.logger, lookup, scope, key, view)
	}

	from, to := query.Dates.Span()
	q.events.PublishSearch(ctx, shared.SearchEvent{
		ListingID:  listingID,
		Variant:    variant.String(),
		SubType:    subType,
		From:       &from,
		To:         &to,
		Remaining:  view.Remaining,
		UserID:     req.UserID,
		OccurredAt: q.clock.Now(),
	})
	return view, nil
}

func queryDates(v listing.Variant, req AvailabilityRequest) booking.Dates {
	if v == listing.VariantFlight {
		if req.TravelDate != nil {
			return booking.FlightDates(*req.TravelDate)
		}
		return booking.Dates{}
	}
	if req.From != nil && req.To != nil {
		return booking.StayDates(*req.From, *req.To)
	}
	return booking.Dates{}
}

// availabilityKey fingerprints a query inside its listing scope.
func availabilityKey(v listing.Variant, q booking.Query) string {
	from, to := q.Dates.Span()
	return strings.Join([]string{
		"availability",
		v.String(),
		q.SubType,
		from.Format(time.RFC3339),
		to.Format(time.RFC3339),
	}, ":")
}
