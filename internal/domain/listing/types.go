package listing

import (
	"strings"

	"travel-kernel/internal/pkg/errs"
)

type Variant string

const (
	VariantFlight Variant = "flight"
	VariantHotel  Variant = "hotel"
	VariantCar    Variant = "car"
)

var ErrUnknownVariant = errs.NewValidation("variant", "variant must be one of flight, hotel, car")

func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case VariantFlight, VariantHotel, VariantCar:
		return v, nil
	default:
		return "", ErrUnknownVariant
	}
}

func (v Variant) String() string { return string(v) }

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type SeatClass string

const (
	SeatEconomy  SeatClass = "Economy"
	SeatBusiness SeatClass = "Business"
	SeatFirst    SeatClass = "First"
)

type RoomType string

const (
	RoomStandard     RoomType = "Standard"
	RoomSuite        RoomType = "Suite"
	RoomDeluxe       RoomType = "Deluxe"
	RoomSingle       RoomType = "Single"
	RoomDouble       RoomType = "Double"
	RoomPresidential RoomType = "Presidential"
)

var (
	seatClasses = []SeatClass{SeatEconomy, SeatBusiness, SeatFirst}
	roomTypes   = []RoomType{RoomStandard, RoomSuite, RoomDeluxe, RoomSingle, RoomDouble, RoomPresidential}
)

var (
	ErrUnknownSeatClass = errs.NewValidation("subType", "seat class must be one of Economy, Business, First")
	ErrUnknownRoomType  = errs.NewValidation("subType", "room type must be one of Standard, Suite, Deluxe, Single, Double, Presidential")
	ErrSubTypeRequired  = errs.NewValidation("subType", "sub-type is required for this variant")
	ErrSubTypeForCar    = errs.NewValidation("subType", "cars take no sub-type")
)

// ParseSeatClass accepts the tag case-insensitively and returns its canonical form.
func ParseSeatClass(s string) (SeatClass, error) {
	for _, c := range seatClasses {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", ErrUnknownSeatClass
}

func ParseRoomType(s string) (RoomType, error) {
	for _, r := range roomTypes {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return "", ErrUnknownRoomType
}

// NormalizeSubType validates the sub-type tag for a variant and returns its canonical spelling.
func NormalizeSubType(v Variant, s string) (string, error) {
	switch v {
	case VariantFlight:
		if strings.TrimSpace(s) == "" {
			return "", ErrSubTypeRequired
		}
		c, err := ParseSeatClass(s)
		return string(c), err
	case VariantHotel:
		if strings.TrimSpace(s) == "" {
			return "", ErrSubTypeRequired
		}
		r, err := ParseRoomType(s)
		return string(r), err
	case VariantCar:
		if strings.TrimSpace(s) != "" {
			return "", ErrSubTypeForCar
		}
		return "", nil
	default:
		return "", ErrUnknownVariant
	}
}
