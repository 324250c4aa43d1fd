package booking

import (
	"time"

	"travel-kernel/internal/domain/listing"
)

// Query asks how much of a listing's sub-type is free for a date window.
type Query struct {
	SubType string
	Dates   Dates
}

// CheckRequest verifies that a query is legal against the listing: active,
// offering the sub-type, operating on the day and inside the availability window.
func CheckRequest(l *listing.Listing, q Query) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if !l.IsActive() {
		return listing.ErrNotActive
	}
	if err := q.Dates.Validate(l.Variant); err != nil {
		return err
	}
	if _, err := l.Capacity(q.SubType); err != nil {
		return err
	}

	switch l.Variant {
	case listing.VariantFlight:
		travel := q.Dates.TravelDate.UTC()
		if !l.OperatesOn(travel.Weekday()) {
			return ErrNotOperatingDay
		}
		if !l.Window.Bounded() || !l.Window.Contains(travel, travel) {
			return ErrOutsideWindow
		}
	case listing.VariantHotel:
		if !l.Window.Bounded() || !l.Window.Contains(*q.Dates.CheckIn, *q.Dates.CheckOut) {
			return ErrOutsideWindow
		}
	case listing.VariantCar:
		// Legacy cars may lack window bounds; Contains treats nil as open.
		if !l.Window.Contains(*q.Dates.CheckIn, *q.Dates.CheckOut) {
			return ErrOutsideWindow
		}
	}
	return nil
}

// Remaining derives free capacity as declared minus held, where held is the
// quantity of Pending and Confirmed bookings overlapping the query.
// existing may be a coarse superset; it is refined here per variant.
func Remaining(l *listing.Listing, q Query, existing []*Booking) (int, error) {
	if err := CheckRequest(l, q); err != nil {
		return 0, err
	}
	capacity, err := l.Capacity(q.SubType)
	if err != nil {
		return 0, err
	}

	held := 0
	for _, b := range existing {
		if b.listingID != l.ID || !b.status.HoldsInventory() {
			continue
		}
		if l.Variant != listing.VariantCar && b.subType != q.SubType {
			continue
		}
		if overlaps(l.Variant, b.dates, q.Dates) {
			held += b.quantity
		}
	}

	if l.Variant == listing.VariantCar {
		if held > 0 {
			return 0, nil
		}
		return 1, nil
	}
	if remaining := capacity - held; remaining > 0 {
		return remaining, nil
	}
	return 0, nil
}

func overlaps(v listing.Variant, booked, requested Dates) bool {
	switch v {
	case listing.VariantFlight:
		if booked.TravelDate == nil {
			return false
		}
		start, end := FlightDay(*requested.TravelDate)
		t := booked.TravelDate.UTC()
		return !t.Before(start) && !t.After(end)
	case listing.VariantHotel:
		if booked.CheckIn == nil || booked.CheckOut == nil {
			return false
		}
		// half-open: back-to-back stays do not collide
		return booked.CheckIn.Before(*requested.CheckOut) && booked.CheckOut.After(*requested.CheckIn)
	case listing.VariantCar:
		if booked.CheckIn == nil || booked.CheckOut == nil {
			return false
		}
		// closed: a return and pickup at the same instant collide
		return !booked.CheckIn.After(*requested.CheckOut) && !booked.CheckOut.Before(*requested.CheckIn)
	default:
		return false
	}
}

// Live drops Pending holds that have outlived horizon. They stop counting
// against capacity as soon as they go stale, ahead of the sweep that fails
// them. A non-positive horizon keeps every hold.
func Live(existing []*Booking, now time.Time, horizon time.Duration) []*Booking {
	if horizon <= 0 {
		return existing
	}
	out := make([]*Booking, 0, len(existing))
	for _, b := range existing {
		if b.IsStale(now, horizon) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// CoarseSpan is the superset window stores use to pre-filter candidate bookings.
func CoarseSpan(q Query) (time.Time, time.Time) {
	return q.Dates.Span()
}
