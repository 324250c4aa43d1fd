package booking

import (
	"strings"
	"time"

	"travel-kernel/internal/domain/listing"
	"travel-kernel/internal/pkg/clock"

	"github.com/google/uuid"
)

type Services struct {
	Clock clock.Clock
}

// HoldSpec is one requested cart item after date normalisation.
type HoldSpec struct {
	UserID     string
	ListingID  string
	Variant    listing.Variant
	Quantity   int
	SubType    string
	Dates      Dates
	CheckoutID string
}

// Normalize validates the request shape and canonicalises the sub-type tag.
func (s HoldSpec) Normalize() (HoldSpec, error) {
	s.UserID = strings.TrimSpace(s.UserID)
	s.ListingID = strings.TrimSpace(s.ListingID)
	if s.UserID == "" {
		return s, ErrUserIDRequired
	}
	if s.ListingID == "" {
		return s, ErrListingIDRequired
	}
	if s.Quantity < 1 {
		return s, ErrQuantity
	}
	sub, err := listing.NormalizeSubType(s.Variant, s.SubType)
	if err != nil {
		return s, err
	}
	s.SubType = sub
	if err := s.Dates.Validate(s.Variant); err != nil {
		return s, err
	}
	return s, nil
}

func (s HoldSpec) Query() Query {
	return Query{SubType: s.SubType, Dates: s.Dates}
}

type Booking struct {
	id          string
	userID      string
	listingID   string
	variant     listing.Variant
	quantity    int
	subType     string
	dates       Dates
	totalAmount Money
	status      Status
	billingID   string
	checkoutID  string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewHold creates a Pending booking after checking remaining capacity against
// the active bookings visible to the caller's transaction.
func NewHold(services *Services, spec HoldSpec, l *listing.Listing, existing []*Booking) (*Booking, error) {
	spec, err := spec.Normalize()
	if err != nil {
		return nil, err
	}
	if l.ID != spec.ListingID || l.Variant != spec.Variant {
		return nil, ErrListingMismatch
	}

	remaining, err := Remaining(l, spec.Query(), existing)
	if err != nil {
		return nil, err
	}
	if remaining < spec.Quantity {
		return nil, ErrInsufficientCapacity
	}

	total, err := Price(l, spec.SubType, spec.Dates, spec.Quantity)
	if err != nil {
		return nil, err
	}

	now := services.Clock.Now()
	return &Booking{
		id:          uuid.NewString(),
		userID:      spec.UserID,
		listingID:   spec.ListingID,
		variant:     spec.Variant,
		quantity:    spec.Quantity,
		subType:     spec.SubType,
		dates:       spec.Dates,
		totalAmount: total,
		status:      StatusPending,
		checkoutID:  spec.CheckoutID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructBooking(
	id, userID, listingID string,
	variant listing.Variant,
	quantity int,
	subType string,
	dates Dates,
	totalAmount Money,
	status Status,
	billingID, checkoutID string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		userID:      userID,
		listingID:   listingID,
		variant:     variant,
		quantity:    quantity,
		subType:     subType,
		dates:       dates,
		totalAmount: totalAmount,
		status:      status,
		billingID:   billingID,
		checkoutID:  checkoutID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Confirm attaches the committed billing id and moves Pending -> Confirmed.
func (b *Booking) Confirm(billingID string, now time.Time) error {
	if billingID == "" {
		return ErrBillingIDRequired
	}
	if err := b.transition(StatusConfirmed, now); err != nil {
		return err
	}
	b.billingID = billingID
	return nil
}

func (b *Booking) Cancel(now time.Time) error {
	if b.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	return b.transition(StatusCancelled, now)
}

// Fail releases a Pending hold (expiry, payment failure, hold-phase rollback).
func (b *Booking) Fail(now time.Time) error {
	return b.transition(StatusFailed, now)
}

// Compensate forces a booking back to Failed after a later saga step failed.
// Unlike Fail it also reverts Confirmed. It reports whether anything changed.
func (b *Booking) Compensate(now time.Time) (bool, error) {
	switch b.status {
	case StatusFailed:
		return false, nil
	case StatusPending, StatusConfirmed:
		b.status = StatusFailed
		b.updatedAt = now
		return true, nil
	default:
		return false, ErrIllegalTransition
	}
}

// IsStale reports whether a Pending hold has outlived the hold horizon.
func (b *Booking) IsStale(now time.Time, horizon time.Duration) bool {
	return b.status == StatusPending && now.Sub(b.createdAt) >= horizon
}

func (b *Booking) OwnedBy(userID string) bool {
	return b.userID == userID
}

func (b *Booking) transition(next Status, now time.Time) error {
	if !b.status.CanTransitionTo(next) {
		return ErrIllegalTransition
	}
	b.status = next
	b.updatedAt = now
	return nil
}

func (b *Booking) ID() string               { return b.id }
func (b *Booking) UserID() string           { return b.userID }
func (b *Booking) ListingID() string        { return b.listingID }
func (b *Booking) Variant() listing.Variant { return b.variant }
func (b *Booking) Quantity() int            { return b.quantity }
func (b *Booking) SubType() string          { return b.subType }
func (b *Booking) Dates() Dates             { return b.dates }
func (b *Booking) TotalAmount() Money       { return b.totalAmount }
func (b *Booking) Status() Status           { return b.status }
func (b *Booking) BillingID() string        { return b.billingID }
func (b *Booking) CheckoutID() string       { return b.checkoutID }
func (b *Booking) CreatedAt() time.Time     { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time     { return b.updatedAt }
