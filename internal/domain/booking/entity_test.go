//go:build unit

package booking_test

import (
	"testing"
	"time"

	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/domain/listing"
	"travel-kernel/internal/pkg/clock"
	"travel-kernel/internal/pkg/errs"
	"travel-kernel/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 11, 20, 10, 0, 0, 0, time.UTC)

func services() *booking.Services {
	return &booking.Services{Clock: clock.NewMockClock(now)}
}

func hotelSpec(sub listing.RoomType, qty int) booking.HoldSpec {
	return booking.HoldSpec{
		UserID:    "user-1",
		ListingID: "hotel-1",
		Variant:   listing.VariantHotel,
		Quantity:  qty,
		SubType:   string(sub),
		Dates:     booking.StayDates(dec1, dec3),
	}
}

func TestNewHold(t *testing.T) {
	hotel := builder.NewHotelBuilder().Build()

	t.Run("基本成功ケース", func(t *testing.T) {
		b, err := booking.NewHold(services(), hotelSpec(listing.RoomStandard, 2), hotel, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, b.ID())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, int64(2*2*builder.StandardNightCents), b.TotalAmount().Cents())
		assert.Equal(t, now, b.CreatedAt())
		assert.Empty(t, b.BillingID())
	})

	t.Run("sub-type tag is canonicalised", func(t *testing.T) {
		spec := hotelSpec(listing.RoomSuite, 1)
		spec.SubType = "suite"
		b, err := booking.NewHold(services(), spec, hotel, nil)
		require.NoError(t, err)
		assert.Equal(t, "Suite", b.SubType())
	})

	cases := []struct {
		name   string
		mutate func(*booking.HoldSpec)
		errIs  error
	}{
		{name: "数量0NG", mutate: func(s *booking.HoldSpec) { s.Quantity = 0 }, errIs: booking.ErrQuantity},
		{name: "ユーザーID無しNG", mutate: func(s *booking.HoldSpec) { s.UserID = "" }, errIs: booking.ErrUserIDRequired},
		{name: "不明なルームタイプNG", mutate: func(s *booking.HoldSpec) { s.SubType = "Penthouse" }, errIs: listing.ErrUnknownRoomType},
		{name: "宿泊0泊NG", mutate: func(s *booking.HoldSpec) { s.Dates = booking.StayDates(dec1, dec1) }, errIs: booking.ErrDateOrder},
		{name: "在庫不足NG", mutate: func(s *booking.HoldSpec) { s.Quantity = 3 }, errIs: booking.ErrInsufficientCapacity},
		{name: "バリアント不一致NG", mutate: func(s *booking.HoldSpec) { s.Variant = listing.VariantFlight; s.SubType = "Economy"; s.Dates = booking.FlightDates(dec25) }, errIs: booking.ErrListingMismatch},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec := hotelSpec(listing.RoomStandard, 1)
			c.mutate(&spec)
			b, err := booking.NewHold(services(), spec, hotel, nil)
			require.Nil(t, b)
			require.ErrorIs(t, err, c.errIs)
			assert.True(t, errs.Is(err, errs.ErrValidation))
		})
	}
}

func TestPrice(t *testing.T) {
	t.Run("partial day rounds up", func(t *testing.T) {
		assert.Equal(t, int64(3), booking.Units(dec1, dec3.Add(time.Hour)))
		assert.Equal(t, int64(2), booking.Units(dec1, dec3))
		assert.Equal(t, int64(0), booking.Units(dec3, dec1))
	})

	t.Run("per variant", func(t *testing.T) {
		flight := builder.NewFlightBuilder().Build()
		m, err := booking.Price(flight, "Business", booking.FlightDates(dec25), 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3*builder.BusinessSeatCents), m.Cents())

		car := builder.NewCarBuilder().Build()
		m, err = booking.Price(car, "", booking.StayDates(dec1, dec3), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2*builder.CarDayCents), m.Cents())
	})

	t.Run("zero days rejected", func(t *testing.T) {
		car := builder.NewCarBuilder().Build()
		_, err := booking.Price(car, "", booking.StayDates(dec1, dec1), 1)
		assert.ErrorIs(t, err, booking.ErrZeroUnits)
	})
}

func TestStateMachine(t *testing.T) {
	later := now.Add(time.Minute)

	t.Run("pending to confirmed requires billing id", func(t *testing.T) {
		b := builder.NewBookingBuilder().Build()
		require.ErrorIs(t, b.Confirm("", later), booking.ErrBillingIDRequired)
		require.NoError(t, b.Confirm("bill-1", later))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, "bill-1", b.BillingID())
		assert.Equal(t, later, b.UpdatedAt())
	})

	t.Run("legal edges only", func(t *testing.T) {
		edges := []struct {
			from, to booking.Status
			ok       bool
		}{
			{booking.StatusPending, booking.StatusConfirmed, true},
			{booking.StatusPending, booking.StatusFailed, true},
			{booking.StatusPending, booking.StatusCancelled, true},
			{booking.StatusConfirmed, booking.StatusCancelled, true},
			{booking.StatusConfirmed, booking.StatusFailed, false},
			{booking.StatusConfirmed, booking.StatusPending, false},
			{booking.StatusCancelled, booking.StatusPending, false},
			{booking.StatusFailed, booking.StatusConfirmed, false},
		}
		for _, e := range edges {
			assert.Equal(t, e.ok, e.from.CanTransitionTo(e.to), "%s -> %s", e.from, e.to)
		}
	})

	t.Run("fail only from pending", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).Build()
		assert.ErrorIs(t, b.Fail(later), booking.ErrIllegalTransition)
	})

	t.Run("cancel of terminal booking is a conflict", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusFailed).Build()
		err := b.Cancel(later)
		assert.ErrorIs(t, err, booking.ErrAlreadyTerminal)
		assert.True(t, errs.Is(err, errs.ErrConflict))
	})

	t.Run("compensation reverts confirmed and is idempotent", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).WithBilling("bill-1").Build()
		changed, err := b.Compensate(later)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, booking.StatusFailed, b.Status())

		changed, err = b.Compensate(later)
		require.NoError(t, err)
		assert.False(t, changed)

		cancelled := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).Build()
		_, err = cancelled.Compensate(later)
		assert.ErrorIs(t, err, booking.ErrIllegalTransition)
	})

	t.Run("stale after the hold horizon", func(t *testing.T) {
		b := builder.NewBookingBuilder().Build()
		created := b.CreatedAt()
		assert.False(t, b.IsStale(created.Add(14*time.Minute), 15*time.Minute))
		assert.True(t, b.IsStale(created.Add(15*time.Minute), 15*time.Minute))

		confirmed := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).Build()
		assert.False(t, confirmed.IsStale(created.Add(time.Hour), 15*time.Minute))
	})
}
