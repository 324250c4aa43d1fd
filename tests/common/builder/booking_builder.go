//go:build unit || e2e

package builder

import (
	"time"

	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/domain/listing"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID          string
	UserID      string
	ListingID   string
	Variant     listing.Variant
	Quantity    int
	SubType     string
	Dates       booking.Dates
	TotalAmount int64
	Status      booking.Status
	BillingID   string
	CheckoutID  string
	CreatedAt   time.Time
}

func Day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:          uuid.NewString(),
		UserID:      "user-1",
		ListingID:   "hotel-1",
		Variant:     listing.VariantHotel,
		Quantity:    1,
		SubType:     string(listing.RoomStandard),
		Dates:       booking.StayDates(Day(2024, 12, 1), Day(2024, 12, 3)),
		TotalAmount: 2 * StandardNightCents,
		Status:      booking.StatusPending,
		CreatedAt:   time.Date(2024, 11, 20, 10, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithUser(userID string) *BookingBuilder {
	b.UserID = userID
	return b
}

func (b *BookingBuilder) WithBilling(billingID string) *BookingBuilder {
	b.BillingID = billingID
	return b
}

func (b *BookingBuilder) WithStay(in, out time.Time) *BookingBuilder {
	b.Dates = booking.StayDates(in, out)
	return b
}

func (b *BookingBuilder) ForFlight(listingID string, class listing.SeatClass, travel time.Time) *BookingBuilder {
	b.ListingID = listingID
	b.Variant = listing.VariantFlight
	b.SubType = string(class)
	b.Dates = booking.FlightDates(travel)
	return b
}

func (b *BookingBuilder) ForCar(listingID string, pickup, dropoff time.Time) *BookingBuilder {
	b.ListingID = listingID
	b.Variant = listing.VariantCar
	b.SubType = ""
	b.Dates = booking.StayDates(pickup, dropoff)
	return b
}

func (b *BookingBuilder) Build() *booking.Booking {
	return booking.ReconstructBooking(
		b.ID, b.UserID, b.ListingID, b.Variant, b.Quantity, b.SubType, b.Dates,
		booking.NewMoney(b.TotalAmount), b.Status, b.BillingID, b.CheckoutID,
		b.CreatedAt, b.CreatedAt,
	)
}
