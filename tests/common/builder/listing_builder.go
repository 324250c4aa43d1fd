//go:build unit || e2e

package builder

import (
	"time"

	"travel-kernel/internal/domain/listing"
	"travel-kernel/internal/pkg/ptr"
)

// Listing windows used across tests cover the whole of December 2024.
var (
	WindowFrom = time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	WindowTo   = time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
)

const (
	StandardNightCents = 120_00
	SuiteNightCents    = 300_00
	EconomySeatCents   = 250_00
	BusinessSeatCents  = 900_00
	CarDayCents        = 45_00
)

type ListingBuilder struct {
	l *listing.Listing
}

func NewHotelBuilder() *ListingBuilder {
	return &ListingBuilder{l: &listing.Listing{
		ID:         "hotel-1",
		ProviderID: "provider-1",
		Variant:    listing.VariantHotel,
		Status:     listing.StatusActive,
		Window:     listing.Window{From: ptr.Of(WindowFrom), To: ptr.Of(WindowTo)},
		Hotel: &listing.HotelDetails{
			Name:       "Harbour View",
			Address:    listing.Address{City: "San Francisco", State: "CA", Zip: "94102", Country: "US"},
			StarRating: 4,
			Amenities:  []string{"wifi", "pool"},
			RoomTypes: []listing.RoomOffer{
				{Type: listing.RoomStandard, PricePerNightCents: StandardNightCents, InventoryCount: 2},
				{Type: listing.RoomSuite, PricePerNightCents: SuiteNightCents, InventoryCount: 1},
			},
		},
	}}
}

func NewFlightBuilder() *ListingBuilder {
	return &ListingBuilder{l: &listing.Listing{
		ID:         "flight-1",
		ProviderID: "provider-2",
		Variant:    listing.VariantFlight,
		Status:     listing.StatusActive,
		Window:     listing.Window{From: ptr.Of(WindowFrom), To: ptr.Of(WindowTo)},
		Flight: &listing.FlightDetails{
			Origin:          "SFO",
			Destination:     "JFK",
			DepartureTime:   "08:00",
			ArrivalTime:     "16:30",
			OperatingDays:   []time.Weekday{time.Monday, time.Wednesday, time.Friday},
			DurationMinutes: 330,
			SeatClasses: []listing.SeatOffer{
				{Class: listing.SeatEconomy, PriceCents: EconomySeatCents, TotalSeats: 1},
				{Class: listing.SeatBusiness, PriceCents: BusinessSeatCents, TotalSeats: 4},
			},
		},
	}}
}

func NewCarBuilder() *ListingBuilder {
	return &ListingBuilder{l: &listing.Listing{
		ID:         "car-1",
		ProviderID: "provider-3",
		Variant:    listing.VariantCar,
		Status:     listing.StatusActive,
		Window:     listing.Window{From: ptr.Of(WindowFrom), To: ptr.Of(WindowTo)},
		Car: &listing.CarDetails{
			Make:            "Toyota",
			Model:           "Corolla",
			VehicleClass:    "compact",
			Transmission:    "automatic",
			Seats:           5,
			DailyPriceCents: CarDayCents,
		},
	}}
}

func (b *ListingBuilder) With(mutate func(*listing.Listing)) *ListingBuilder {
	mutate(b.l)
	return b
}

func (b *ListingBuilder) WithID(id string) *ListingBuilder {
	b.l.ID = id
	return b
}

func (b *ListingBuilder) WithStatus(s listing.Status) *ListingBuilder {
	b.l.Status = s
	return b
}

func (b *ListingBuilder) WithoutWindow() *ListingBuilder {
	b.l.Window = listing.Window{}
	return b
}

func (b *ListingBuilder) WithWindow(from, to time.Time) *ListingBuilder {
	b.l.Window = listing.Window{From: ptr.Of(from), To: ptr.Of(to)}
	return b
}

func (b *ListingBuilder) Build() *listing.Listing {
	cp := *b.l
	return &cp
}
