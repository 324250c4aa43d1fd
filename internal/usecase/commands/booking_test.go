//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/domain/card"
	"travel-kernel/internal/domain/listing"
	"travel-kernel/internal/usecase/commands"
	"travel-kernel/internal/usecase/shared"
	"travel-kernel/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suiteHold(userID string) booking.HoldSpec {
	return booking.HoldSpec{
		UserID:    userID,
		ListingID: "hotel-1",
		Variant:   listing.VariantHotel,
		Quantity:  1,
		SubType:   "suite",
		Dates:     booking.StayDates(dec1, dec3),
	}
}

func TestBookingUseCase_CreateHold(t *testing.T) {
	ctx := context.Background()

	t.Run("prices and stores a pending hold", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		b, err := h.bookings.CreateHold(ctx, suiteHold("user-1"))
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, string(listing.RoomSuite), b.SubType())
		assert.Equal(t, int64(2*builder.SuiteNightCents), b.TotalAmount().Cents())
		assert.NotNil(t, h.store.Get(b.ID()))
		assert.True(t, h.cache.WasInvalidated(shared.ListingScope("hotel-1")))
		assert.Equal(t, []string{"booking.pending"}, h.events.Types())
	})

	t.Run("last unit cannot be held twice", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		_, err := h.bookings.CreateHold(ctx, suiteHold("user-1"))
		require.NoError(t, err)
		_, err = h.bookings.CreateHold(ctx, suiteHold("user-2"))
		assert.ErrorIs(t, err, booking.ErrInsufficientCapacity)
	})

	t.Run("stale hold of the same user is released first", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		first, err := h.bookings.CreateHold(ctx, suiteHold("user-1"))
		require.NoError(t, err)
		h.advance(20 * time.Minute)

		second, err := h.bookings.CreateHold(ctx, suiteHold("user-1"))
		require.NoError(t, err)
		assert.Equal(t, booking.StatusFailed, h.store.Get(first.ID()).Status())
		assert.Equal(t, booking.StatusPending, h.store.Get(second.ID()).Status())
	})

	t.Run("unknown listing", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		spec := suiteHold("user-1")
		spec.ListingID = "hotel-404"
		_, err := h.bookings.CreateHold(ctx, spec)
		assert.ErrorIs(t, err, listing.ErrNotFound)
	})

	t.Run("invalid request", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		spec := suiteHold("user-1")
		spec.Quantity = 0
		_, err := h.bookings.CreateHold(ctx, spec)
		assert.ErrorIs(t, err, booking.ErrQuantity)
		assert.Empty(t, h.store.All())
	})
}

func TestBookingUseCase_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("pending hold is released", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		b, err := h.bookings.CreateHold(ctx, suiteHold("user-1"))
		require.NoError(t, err)

		cancelled, err := h.bookings.Cancel(ctx, traveller, b.ID())
		require.NoError(t, err)
		require.Len(t, cancelled, 1)
		assert.Equal(t, booking.StatusCancelled, h.store.Get(b.ID()).Status())

		_, err = h.bookings.CreateHold(ctx, suiteHold("user-2"))
		assert.NoError(t, err, "capacity returns after cancel")
	})

	t.Run("siblings in a terminal state are skipped", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		b1 := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).WithBilling("bill-1").Build()
		b2 := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).WithBilling("bill-1").Build()
		b3 := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).WithBilling("bill-2").Build()
		h.store.Seed(b1, b2, b3)

		cancelled, err := h.bookings.Cancel(ctx, traveller, b1.ID())
		require.NoError(t, err)
		require.Len(t, cancelled, 1)
		assert.Equal(t, b1.ID(), cancelled[0].ID())
		assert.Equal(t, booking.StatusConfirmed, h.store.Get(b3.ID()).Status())
		assert.True(t, h.cache.WasInvalidated(shared.BillScope("user-1")))
	})

	t.Run("terminal booking", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		b := builder.NewBookingBuilder().WithStatus(booking.StatusFailed).Build()
		h.store.Seed(b)
		_, err := h.bookings.Cancel(ctx, traveller, b.ID())
		assert.ErrorIs(t, err, booking.ErrAlreadyTerminal)
	})

	t.Run("not the owner", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		b := builder.NewBookingBuilder().Build()
		h.store.Seed(b)
		_, err := h.bookings.Cancel(ctx, other, b.ID())
		assert.ErrorIs(t, err, commands.ErrNotOwner)

		_, err = h.bookings.Cancel(ctx, admin, b.ID())
		assert.NoError(t, err)
	})

	t.Run("missing booking", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		_, err := h.bookings.Cancel(ctx, traveller, "nope")
		assert.ErrorIs(t, err, booking.ErrNotFound)
	})
}

func TestBookingUseCase_FailMany(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, card.Policy{})
	pending := builder.NewBookingBuilder().Build()
	confirmed := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).WithBilling("bill-1").Build()
	h.store.Seed(pending, confirmed)

	n, err := h.bookings.FailMany(ctx, []string{pending.ID(), confirmed.ID(), pending.ID(), "", "ghost"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, booking.StatusFailed, h.store.Get(pending.ID()).Status())
	assert.Equal(t, booking.StatusConfirmed, h.store.Get(confirmed.ID()).Status())

	n, err = h.bookings.FailMany(ctx, []string{pending.ID()})
	require.NoError(t, err)
	assert.Zero(t, n, "replay is a no-op")

	_, err = h.bookings.FailMany(ctx, []string{"", ""})
	assert.ErrorIs(t, err, commands.ErrNoBookings)
}

func TestBookingUseCase_ExpireStale(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, card.Policy{})

	old := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.CreatedAt = startTime.Add(-time.Hour) }).Build()
	fresh := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.CreatedAt = startTime.Add(-5 * time.Minute) }).Build()
	paid := builder.NewBookingBuilder().
		WithStatus(booking.StatusConfirmed).
		WithBilling("bill-1").
		With(func(b *builder.BookingBuilder) { b.CreatedAt = startTime.Add(-time.Hour) }).
		Build()
	h.store.Seed(old, fresh, paid)

	ids, err := h.bookings.ExpireStale(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{old.ID()}, ids)
	assert.Equal(t, booking.StatusPending, h.store.Get(fresh.ID()).Status())
	assert.Equal(t, booking.StatusConfirmed, h.store.Get(paid.ID()).Status())

	ids, err = h.bookings.ExpireStale(ctx, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []string{fresh.ID()}, ids)

	ids, err = h.bookings.ExpireStale(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
