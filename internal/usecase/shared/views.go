package shared

import (
	"context"
	"time"

	"travel-kernel/internal/domain/booking"
)

// Generation is the version of a scope observed by a lookup.
type Generation int64

// ViewCache stores rendered read models under a scope. Invalidate drops every
// entry of a scope at once. A view computed after a miss is stored with the
// generation that miss returned, so an invalidation landing in between
// orphans it instead of publishing it.
type ViewCache interface {
	Get(ctx context.Context, scope, key string, dst any) (Generation, bool, error)
	Set(ctx context.Context, scope, key string, gen Generation, value any) error
	Invalidate(ctx context.Context, scopes ...string) error
}

func ListingScope(listingID string) string { return "listing:" + listingID }
func UserScope(userID string) string       { return "user:" + userID }
func BillScope(userID string) string       { return "bills:" + userID }

type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"bookingId"`
	UserID     string    `json:"userId"`
	ListingID  string    `json:"listingId"`
	Variant    string    `json:"variant"`
	Status     string    `json:"status"`
	BillingID  string    `json:"billingId,omitempty"`
	CheckoutID string    `json:"checkoutId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewBookingEvent(b *booking.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       "booking." + b.Status().String(),
		BookingID:  b.ID(),
		UserID:     b.UserID(),
		ListingID:  b.ListingID(),
		Variant:    b.Variant().String(),
		Status:     b.Status().String(),
		BillingID:  b.BillingID(),
		CheckoutID: b.CheckoutID(),
		OccurredAt: at,
	}
}

type SearchEvent struct {
	ListingID  string     `json:"listingId"`
	Variant    string     `json:"variant"`
	SubType    string     `json:"subType,omitempty"`
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
	Remaining  int        `json:"remaining"`
	UserID     string     `json:"userId,omitempty"`
	OccurredAt time.Time  `json:"occurredAt"`
}

// EventPublisher is fire-and-forget. Implementations never block the caller
// on broker availability and never fail a reservation.
type EventPublisher interface {
	PublishBooking(ctx context.Context, events ...BookingEvent)
	PublishSearch(ctx context.Context, event SearchEvent)
}

// Pinger is implemented by stores that take part in readiness checks.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}
