//go:build unit

package booking_test

import (
	"testing"
	"time"

	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/domain/listing"
	"travel-kernel/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	dec1  = builder.Day(2024, 12, 1)
	dec3  = builder.Day(2024, 12, 3)
	dec5  = builder.Day(2024, 12, 5)
	dec25 = builder.Day(2024, 12, 25) // Wednesday
	dec24 = builder.Day(2024, 12, 24) // Tuesday
)

func TestRemainingHotel(t *testing.T) {
	hotel := builder.NewHotelBuilder().Build()
	std := string(listing.RoomStandard)
	q := booking.Query{SubType: std, Dates: booking.StayDates(dec1, dec3)}

	t.Run("declared capacity when nothing is held", func(t *testing.T) {
		n, err := booking.Remaining(hotel, q, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("pending and confirmed consume, cancelled and failed do not", func(t *testing.T) {
		existing := []*booking.Booking{
			builder.NewBookingBuilder().WithStatus(booking.StatusPending).Build(),
			builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).Build(),
			builder.NewBookingBuilder().WithStatus(booking.StatusFailed).Build(),
		}
		n, err := booking.Remaining(hotel, q, existing)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		existing = append(existing, builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).Build())
		n, err = booking.Remaining(hotel, q, existing)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("half-open overlap lets back-to-back stays through", func(t *testing.T) {
		existing := []*booking.Booking{
			builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Quantity = 2 }).WithStay(dec3, dec5).Build(),
		}
		n, err := booking.Remaining(hotel, q, existing)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("other room types are ignored", func(t *testing.T) {
		existing := []*booking.Booking{
			builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.SubType = string(listing.RoomSuite) }).Build(),
		}
		n, err := booking.Remaining(hotel, q, existing)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("window straddling availableTo by one second is rejected", func(t *testing.T) {
		end := builder.WindowTo.Add(time.Second)
		_, err := booking.Remaining(hotel, booking.Query{SubType: std, Dates: booking.StayDates(end.Add(-48*time.Hour), end)}, nil)
		assert.ErrorIs(t, err, booking.ErrOutsideWindow)

		_, err = booking.Remaining(hotel, booking.Query{SubType: std, Dates: booking.StayDates(builder.WindowTo.Add(-48*time.Hour), builder.WindowTo)}, nil)
		assert.NoError(t, err)
	})

	t.Run("check-in must precede check-out", func(t *testing.T) {
		_, err := booking.Remaining(hotel, booking.Query{SubType: std, Dates: booking.StayDates(dec3, dec3)}, nil)
		assert.ErrorIs(t, err, booking.ErrDateOrder)
	})

	t.Run("unknown room type for this hotel", func(t *testing.T) {
		_, err := booking.Remaining(hotel, booking.Query{SubType: string(listing.RoomPresidential), Dates: q.Dates}, nil)
		assert.ErrorIs(t, err, listing.ErrNoSuchSubType)
	})

	t.Run("inactive listing", func(t *testing.T) {
		inactive := builder.NewHotelBuilder().WithStatus(listing.StatusInactive).Build()
		_, err := booking.Remaining(inactive, q, nil)
		assert.ErrorIs(t, err, listing.ErrNotActive)
	})
}

func TestRemainingFlight(t *testing.T) {
	flight := builder.NewFlightBuilder().Build()
	eco := string(listing.SeatEconomy)

	t.Run("counts bookings anywhere on the travel day", func(t *testing.T) {
		late := dec25.Add(23*time.Hour + 59*time.Minute)
		existing := []*booking.Booking{
			builder.NewBookingBuilder().ForFlight(flight.ID, listing.SeatEconomy, late).Build(),
		}
		n, err := booking.Remaining(flight, booking.Query{SubType: eco, Dates: booking.FlightDates(dec25)}, existing)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("next day's bookings do not count", func(t *testing.T) {
		existing := []*booking.Booking{
			builder.NewBookingBuilder().ForFlight(flight.ID, listing.SeatEconomy, dec25.Add(24*time.Hour)).Build(),
		}
		n, err := booking.Remaining(flight, booking.Query{SubType: eco, Dates: booking.FlightDates(dec25)}, existing)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("non-operating weekday is rejected", func(t *testing.T) {
		_, err := booking.Remaining(flight, booking.Query{SubType: eco, Dates: booking.FlightDates(dec24)}, nil)
		assert.ErrorIs(t, err, booking.ErrNotOperatingDay)
	})

	t.Run("flights need a bounded window", func(t *testing.T) {
		unbounded := builder.NewFlightBuilder().WithoutWindow().Build()
		_, err := booking.Remaining(unbounded, booking.Query{SubType: eco, Dates: booking.FlightDates(dec25)}, nil)
		assert.ErrorIs(t, err, booking.ErrOutsideWindow)
	})
}

func TestRemainingCar(t *testing.T) {
	car := builder.NewCarBuilder().Build()
	q := booking.Query{Dates: booking.StayDates(dec1, dec3)}

	t.Run("binary availability", func(t *testing.T) {
		n, err := booking.Remaining(car, q, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		existing := []*booking.Booking{builder.NewBookingBuilder().ForCar(car.ID, dec1, dec3).Build()}
		n, err = booking.Remaining(car, q, existing)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("closed overlap: return at pickup instant collides", func(t *testing.T) {
		existing := []*booking.Booking{builder.NewBookingBuilder().ForCar(car.ID, dec3, dec5).Build()}
		n, err := booking.Remaining(car, q, existing)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("null window bounds are tolerated", func(t *testing.T) {
		legacy := builder.NewCarBuilder().WithoutWindow().Build()
		n, err := booking.Remaining(legacy, q, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("outside a declared window is rejected", func(t *testing.T) {
		narrow := builder.NewCarBuilder().WithWindow(dec1, dec3.Add(-time.Second)).Build()
		_, err := booking.Remaining(narrow, q, nil)
		assert.ErrorIs(t, err, booking.ErrOutsideWindow)
	})
}

func TestLive(t *testing.T) {
	created := builder.NewBookingBuilder().Build()
	paid := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).WithBilling("bill-1").Build()
	existing := []*booking.Booking{created, paid}
	start := time.Date(2024, 11, 20, 10, 0, 0, 0, time.UTC)

	assert.Len(t, booking.Live(existing, start.Add(14*time.Minute), 15*time.Minute), 2)

	live := booking.Live(existing, start.Add(15*time.Minute), 15*time.Minute)
	require.Len(t, live, 1)
	assert.Equal(t, paid.ID(), live[0].ID())

	assert.Len(t, booking.Live(existing, start.Add(time.Hour), 0), 2, "no horizon keeps every hold")
}
