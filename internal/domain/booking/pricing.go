package booking

import (
	"time"

	"travel-kernel/internal/domain/listing"
)

const day = 24 * time.Hour

// Units counts started days between start and end, rounding partial days up.
func Units(start, end time.Time) int64 {
	diff := end.Sub(start)
	if diff <= 0 {
		return 0
	}
	units := int64(diff / day)
	if diff%day != 0 {
		units++
	}
	return units
}

// Price computes the denormalised booking total:
// flight = unit × qty, hotel = per-night × nights × qty, car = daily × days × qty.
func Price(l *listing.Listing, subType string, dates Dates, quantity int) (Money, error) {
	if quantity < 1 {
		return Money{}, ErrQuantity
	}
	unit, err := l.UnitPrice(subType)
	if err != nil {
		return Money{}, err
	}

	switch l.Variant {
	case listing.VariantFlight:
		return NewMoney(unit).Times(int64(quantity)), nil
	case listing.VariantHotel, listing.VariantCar:
		if dates.CheckIn == nil || dates.CheckOut == nil {
			return Money{}, ErrStayDatesRequired
		}
		n := Units(*dates.CheckIn, *dates.CheckOut)
		if n < 1 {
			return Money{}, ErrZeroUnits
		}
		return NewMoney(unit).Times(n).Times(int64(quantity)), nil
	default:
		return Money{}, listing.ErrUnknownVariant
	}
}
