package booking

import (
	"time"

	"travel-kernel/internal/domain/listing"
)

// Dates is the variant-dependent date triple. Flights carry TravelDate; hotels
// and cars carry CheckIn/CheckOut (car pickup/return are normalised into them).
type Dates struct {
	TravelDate *time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
}

func FlightDates(travel time.Time) Dates {
	t := travel.UTC()
	return Dates{TravelDate: &t}
}

func StayDates(checkIn, checkOut time.Time) Dates {
	in, out := checkIn.UTC(), checkOut.UTC()
	return Dates{CheckIn: &in, CheckOut: &out}
}

// Validate checks presence and ordering for the given variant.
func (d Dates) Validate(v listing.Variant) error {
	switch v {
	case listing.VariantFlight:
		if d.TravelDate == nil {
			return ErrTravelDateRequired
		}
	case listing.VariantHotel, listing.VariantCar:
		if d.CheckIn == nil || d.CheckOut == nil {
			return ErrStayDatesRequired
		}
		if !d.CheckIn.Before(*d.CheckOut) {
			return ErrDateOrder
		}
	default:
		return listing.ErrUnknownVariant
	}
	return nil
}

// FlightDay returns the inclusive bounds of the travel date's UTC day.
func FlightDay(travel time.Time) (time.Time, time.Time) {
	t := travel.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24*time.Hour - time.Millisecond)
}

// Span returns the interval used for coarse overlap lookups.
func (d Dates) Span() (time.Time, time.Time) {
	if d.TravelDate != nil {
		return FlightDay(*d.TravelDate)
	}
	if d.CheckIn != nil && d.CheckOut != nil {
		return *d.CheckIn, *d.CheckOut
	}
	return time.Time{}, time.Time{}
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Times(n int64) Money {
	return Money{cents: m.cents * n}
}
