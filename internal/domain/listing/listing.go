package listing

import (
	"strings"
	"time"

	"travel-kernel/internal/pkg/errs"
)

var (
	ErrNotFound       = errs.Mark(errs.New("listing not found"), errs.ErrNotFound)
	ErrNotActive      = errs.NewValidation("listingId", "listing is not active")
	ErrNoSuchSubType  = errs.NewValidation("subType", "listing does not offer the requested sub-type")
	ErrVariantDetails = errs.New("listing details do not match its variant")
)

// Window is the inclusive availability range of a listing. Nil bounds are open.
type Window struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether [start, end] lies inside the window. A nil bound
// never excludes anything.
func (w Window) Contains(start, end time.Time) bool {
	if w.From != nil && start.Before(*w.From) {
		return false
	}
	if w.To != nil && end.After(*w.To) {
		return false
	}
	return true
}

// Bounded reports whether both bounds are declared.
func (w Window) Bounded() bool {
	return w.From != nil && w.To != nil
}

type SeatOffer struct {
	Class      SeatClass
	PriceCents int64
	TotalSeats int
}

type RoomOffer struct {
	Type               RoomType
	PricePerNightCents int64
	InventoryCount     int
}

type Address struct {
	City    string
	State   string
	Zip     string
	Country string
}

type FlightDetails struct {
	Origin          string
	Destination     string
	DepartureTime   string
	ArrivalTime     string
	OperatingDays   []time.Weekday
	DurationMinutes int
	SeatClasses     []SeatOffer
}

type HotelDetails struct {
	Name       string
	Address    Address
	StarRating int
	Amenities  []string
	RoomTypes  []RoomOffer
}

type CarDetails struct {
	Make            string
	Model           string
	VehicleClass    string
	Transmission    string
	Seats           int
	DailyPriceCents int64
}

// Listing is a read-only snapshot served by the listing collaborator.
// Declared capacity is never mutated by the kernel.
type Listing struct {
	ID         string
	ProviderID string
	Variant    Variant
	Status     Status
	Window     Window
	Flight     *FlightDetails
	Hotel      *HotelDetails
	Car        *CarDetails
}

func (l *Listing) IsActive() bool {
	return l.Status == StatusActive
}

// Validate checks that the variant-specific details are present.
func (l *Listing) Validate() error {
	switch l.Variant {
	case VariantFlight:
		if l.Flight == nil {
			return ErrVariantDetails
		}
	case VariantHotel:
		if l.Hotel == nil {
			return ErrVariantDetails
		}
	case VariantCar:
		if l.Car == nil {
			return ErrVariantDetails
		}
	default:
		return ErrUnknownVariant
	}
	return nil
}

func (l *Listing) OperatesOn(day time.Weekday) bool {
	if l.Flight == nil {
		return false
	}
	for _, d := range l.Flight.OperatingDays {
		if d == day {
			return true
		}
	}
	return false
}

func (l *Listing) SeatClass(c string) (SeatOffer, error) {
	if l.Flight != nil {
		for _, s := range l.Flight.SeatClasses {
			if string(s.Class) == c {
				return s, nil
			}
		}
	}
	return SeatOffer{}, ErrNoSuchSubType
}

func (l *Listing) RoomType(t string) (RoomOffer, error) {
	if l.Hotel != nil {
		for _, r := range l.Hotel.RoomTypes {
			if string(r.Type) == t {
				return r, nil
			}
		}
	}
	return RoomOffer{}, ErrNoSuchSubType
}

// Capacity returns the declared capacity for a sub-type. Cars are a single unit.
func (l *Listing) Capacity(subType string) (int, error) {
	switch l.Variant {
	case VariantFlight:
		s, err := l.SeatClass(subType)
		return s.TotalSeats, err
	case VariantHotel:
		r, err := l.RoomType(subType)
		return r.InventoryCount, err
	case VariantCar:
		return 1, nil
	default:
		return 0, ErrUnknownVariant
	}
}

// UnitPrice is the per-seat, per-night or per-day price in cents.
func (l *Listing) UnitPrice(subType string) (int64, error) {
	switch l.Variant {
	case VariantFlight:
		s, err := l.SeatClass(subType)
		return s.PriceCents, err
	case VariantHotel:
		r, err := l.RoomType(subType)
		return r.PricePerNightCents, err
	case VariantCar:
		if l.Car == nil {
			return 0, ErrVariantDetails
		}
		return l.Car.DailyPriceCents, nil
	default:
		return 0, ErrUnknownVariant
	}
}

// ParseWeekday maps short or long English weekday names.
func ParseWeekday(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := d.String()
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return d, true
		}
	}
	return 0, false
}
