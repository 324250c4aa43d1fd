package docstore

import (
	"context"
	"time"

	"travel-kernel/internal/domain/listing"
	"travel-kernel/internal/infra"

	"go.mongodb.org/mongo-driver/bson"
)

// listingDoc covers the three listing collections; only the block matching
// the collection's variant is populated.
type listingDoc struct {
	ID            string     `bson:"_id" yaml:"id"`
	ProviderID    string     `bson:"providerId" yaml:"providerId"`
	Status        string     `bson:"status" yaml:"status"`
	AvailableFrom *time.Time `bson:"availableFrom,omitempty" yaml:"availableFrom"`
	AvailableTo   *time.Time `bson:"availableTo,omitempty" yaml:"availableTo"`

	// flight
	Origin          string    `bson:"origin,omitempty" yaml:"origin"`
	Destination     string    `bson:"destination,omitempty" yaml:"destination"`
	DepartureTime   string    `bson:"departureTime,omitempty" yaml:"departureTime"`
	ArrivalTime     string    `bson:"arrivalTime,omitempty" yaml:"arrivalTime"`
	OperatingDays   []string  `bson:"operatingDays,omitempty" yaml:"operatingDays"`
	DurationMinutes int       `bson:"durationMinutes,omitempty" yaml:"durationMinutes"`
	SeatClasses     []seatDoc `bson:"seatClasses,omitempty" yaml:"seatClasses"`

	// hotel
	Name       string    `bson:"name,omitempty" yaml:"name"`
	Address    *addrDoc  `bson:"address,omitempty" yaml:"address"`
	StarRating int       `bson:"starRating,omitempty" yaml:"starRating"`
	Amenities  []string  `bson:"amenities,omitempty" yaml:"amenities"`
	RoomTypes  []roomDoc `bson:"roomTypes,omitempty" yaml:"roomTypes"`

	// car
	Make            string `bson:"make,omitempty" yaml:"make"`
	Model           string `bson:"model,omitempty" yaml:"model"`
	VehicleClass    string `bson:"vehicleClass,omitempty" yaml:"vehicleClass"`
	Transmission    string `bson:"transmission,omitempty" yaml:"transmission"`
	Seats           int    `bson:"seats,omitempty" yaml:"seats"`
	DailyPriceCents int64  `bson:"dailyPriceCents,omitempty" yaml:"dailyPriceCents"`
}

type seatDoc struct {
	Type       string `bson:"type" yaml:"type"`
	PriceCents int64  `bson:"priceCents" yaml:"priceCents"`
	TotalSeats int    `bson:"totalSeats" yaml:"totalSeats"`
}

type roomDoc struct {
	Type               string `bson:"type" yaml:"type"`
	PricePerNightCents int64  `bson:"pricePerNightCents" yaml:"pricePerNightCents"`
	InventoryCount     int    `bson:"inventoryCount" yaml:"inventoryCount"`
}

type addrDoc struct {
	City    string `bson:"city" yaml:"city"`
	State   string `bson:"state" yaml:"state"`
	Zip     string `bson:"zip" yaml:"zip"`
	Country string `bson:"country" yaml:"country"`
}

func collectionFor(v listing.Variant) (string, error) {
	switch v {
	case listing.VariantFlight:
		return collFlights, nil
	case listing.VariantHotel:
		return collHotels, nil
	case listing.VariantCar:
		return collCars, nil
	default:
		return "", listing.ErrUnknownVariant
	}
}

func (d listingDoc) toDomain(v listing.Variant) *listing.Listing {
	l := &listing.Listing{
		ID:         d.ID,
		ProviderID: d.ProviderID,
		Variant:    v,
		Status:     listing.Status(d.Status),
		Window:     listing.Window{From: utcPtr(d.AvailableFrom), To: utcPtr(d.AvailableTo)},
	}
	switch v {
	case listing.VariantFlight:
		f := &listing.FlightDetails{
			Origin:          d.Origin,
			Destination:     d.Destination,
			DepartureTime:   d.DepartureTime,
			ArrivalTime:     d.ArrivalTime,
			DurationMinutes: d.DurationMinutes,
		}
		for _, day := range d.OperatingDays {
			if wd, ok := listing.ParseWeekday(day); ok {
				f.OperatingDays = append(f.OperatingDays, wd)
			}
		}
		for _, s := range d.SeatClasses {
			// unknown tags in storage are skipped rather than served
			class, err := listing.ParseSeatClass(s.Type)
			if err != nil {
				continue
			}
			f.SeatClasses = append(f.SeatClasses, listing.SeatOffer{Class: class, PriceCents: s.PriceCents, TotalSeats: s.TotalSeats})
		}
		l.Flight = f
	case listing.VariantHotel:
		h := &listing.HotelDetails{
			Name:       d.Name,
			StarRating: d.StarRating,
			Amenities:  d.Amenities,
		}
		if d.Address != nil {
			h.Address = listing.Address{City: d.Address.City, State: d.Address.State, Zip: d.Address.Zip, Country: d.Address.Country}
		}
		for _, r := range d.RoomTypes {
			rt, err := listing.ParseRoomType(r.Type)
			if err != nil {
				continue
			}
			h.RoomTypes = append(h.RoomTypes, listing.RoomOffer{Type: rt, PricePerNightCents: r.PricePerNightCents, InventoryCount: r.InventoryCount})
		}
		l.Hotel = h
	case listing.VariantCar:
		l.Car = &listing.CarDetails{
			Make:            d.Make,
			Model:           d.Model,
			VehicleClass:    d.VehicleClass,
			Transmission:    d.Transmission,
			Seats:           d.Seats,
			DailyPriceCents: d.DailyPriceCents,
		}
	}
	return l
}

// ListingStore is the read-only listing collaborator.
type ListingStore struct {
	*Store
}

func NewListingStore(s *Store) *ListingStore {
	return &ListingStore{Store: s}
}

func (s *ListingStore) Get(ctx context.Context, variant listing.Variant, id string) (*listing.Listing, error) {
	name, err := collectionFor(variant)
	if err != nil {
		return nil, err
	}
	var doc listingDoc
	if err := s.collection(name).FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if kindOf(err) == infra.KindNotFound {
			return nil, listing.ErrNotFound
		}
		return nil, wrapMongoErr(s.logger, "failed to load listing", err)
	}
	return doc.toDomain(variant), nil
}
