package shared

import (
	"context"
	"time"

	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/domain/listing"
)

// InventoryKey identifies the capacity bucket a hold competes for.
type InventoryKey struct {
	ListingID string
	SubType   string
}

func (k InventoryKey) String() string {
	return k.ListingID + "|" + k.SubType
}

type BookingFilter struct {
	Status    booking.Status
	BillingID string
}

// StaleScope narrows an expiry pass. Empty fields match everything.
type StaleScope struct {
	UserID    string
	ListingID string
}

// BookingStore is the document-store side of the saga.
type BookingStore interface {
	// Hold runs fn in a transaction serialised on key. A concurrent hold on the
	// same key aborts with booking.ErrInsufficientCapacity; it is not retried.
	Hold(ctx context.Context, key InventoryKey, fn func(ctx context.Context, tx BookingTx) error) error
	// Within runs fn in a transaction and retries transient write conflicts.
	Within(ctx context.Context, fn func(ctx context.Context, tx BookingTx) error) error

	Active(ctx context.Context, listingID string, from, to time.Time) ([]*booking.Booking, error)
	FindByID(ctx context.Context, id string) (*booking.Booking, error)
	FindByIDs(ctx context.Context, ids []string) ([]*booking.Booking, error)
	ListByUser(ctx context.Context, userID string, filter BookingFilter) ([]*booking.Booking, error)
}

type BookingTx interface {
	// Active returns Pending and Confirmed bookings of a listing that may
	// overlap [from, to]. The result is a superset; callers refine it.
	Active(ctx context.Context, listingID string, from, to time.Time) ([]*booking.Booking, error)
	FindByID(ctx context.Context, id string) (*booking.Booking, error)
	FindByIDs(ctx context.Context, ids []string) ([]*booking.Booking, error)
	FindByBillingID(ctx context.Context, billingID string) ([]*booking.Booking, error)
	Insert(ctx context.Context, b *booking.Booking) error
	// Update persists b only if the stored status still equals from.
	Update(ctx context.Context, b *booking.Booking, from booking.Status) error
	Stale(ctx context.Context, cutoff time.Time, scope StaleScope) ([]*booking.Booking, error)
}

type ListingReader interface {
	Get(ctx context.Context, variant listing.Variant, id string) (*listing.Listing, error)
}
