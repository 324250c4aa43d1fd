//go:build unit

package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"travel-kernel/internal/domain/card"
	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/pkg/clock"
	"travel-kernel/internal/pkg/ptr"
	"travel-kernel/internal/pkg/vault"
	"travel-kernel/internal/usecase/commands"
	"travel-kernel/internal/usecase/queries"
	"travel-kernel/internal/usecase/saga"
	"travel-kernel/internal/usecase/shared"
	"travel-kernel/tests/common/builder"
	"travel-kernel/tests/common/fake"

	"github.com/stretchr/testify/require"
)

var (
	startTime = time.Date(2024, 11, 20, 10, 0, 0, 0, time.UTC)

	dec1  = builder.Day(2024, 12, 1)
	dec3  = builder.Day(2024, 12, 3)
	dec25 = builder.Day(2024, 12, 25)

	traveller = user.Actor{UserID: "user-1", Role: user.RoleUser}
	other     = user.Actor{UserID: "user-2", Role: user.RoleUser}
	admin     = user.Actor{UserID: "admin-1", Role: user.RoleAdmin}
)

type harness struct {
	clock    *clock.MockClock
	store    *fake.BookingStore
	ledger   *fake.Ledger
	wallets  *fake.Wallets
	cache    *fake.Cache
	events   *fake.Events
	cipher   *vault.Cipher
	bookings commands.BookingCommands
	cards    commands.CardCommands
	checkout commands.CheckoutCommands
	avail    queries.AvailabilityQueries
	bills    queries.BillingQueries
	policy   card.Policy
	settings commands.BookingSettings
	logger   *slog.Logger
}

func newHarness(t *testing.T, policy card.Policy) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cipher, err := vault.New("test-card-vault-secret")
	require.NoError(t, err)

	h := &harness{
		clock:   clock.NewMockClock(startTime),
		store:   fake.NewBookingStore(),
		ledger:  fake.NewLedger(),
		wallets: fake.NewWallets("user-1", "user-2"),
		cache:   fake.NewCache(),
		events:  &fake.Events{},
		cipher:  cipher,
	}
	listings := fake.NewListings(
		builder.NewHotelBuilder().Build(),
		builder.NewFlightBuilder().Build(),
		builder.NewCarBuilder().Build(),
	)
	settings := commands.BookingSettings{
		HoldHorizon:  15 * time.Minute,
		Compensation: saga.Policy{Attempts: 3, Backoff: time.Millisecond},
	}

	h.policy, h.settings, h.logger = policy, settings, logger

	h.bookings = commands.NewBookingUseCase(h.store, listings, h.cache, h.events, h.clock, settings, logger)
	h.cards = commands.NewCardUseCase(h.wallets, cipher, policy, h.clock, logger)
	h.checkout = commands.NewCheckoutUseCase(h.bookings, h.cards, h.store, h.ledger, h.cache, h.events, policy, h.clock, settings, logger)
	h.avail = queries.NewAvailabilityQueries(h.store, listings, h.cache, h.events, h.clock, queries.AvailabilitySettings{HoldHorizon: settings.HoldHorizon}, logger)
	h.bills = queries.NewBillingQueries(h.ledger, h.cache, logger)
	return h
}

// checkoutWith builds a checkout use case sharing the harness stores but
// writing the ledger through uow.
func (h *harness) checkoutWith(uow shared.UnitOfWork) commands.CheckoutCommands {
	return commands.NewCheckoutUseCase(h.bookings, h.cards, h.store, uow, h.cache, h.events, h.policy, h.clock, h.settings, h.logger)
}

func (h *harness) advance(d time.Duration) {
	h.clock.Set(h.clock.Now().Add(d))
}

func hotelItem(room string, qty int) commands.CartItem {
	return commands.CartItem{
		ListingID: "hotel-1",
		Variant:   "hotel",
		Quantity:  qty,
		SubType:   room,
		CheckIn:   ptr.Of(dec1),
		CheckOut:  ptr.Of(dec3),
	}
}

func flightItem(class string, travel time.Time) commands.CartItem {
	return commands.CartItem{
		ListingID:  "flight-1",
		Variant:    "flight",
		Quantity:   1,
		SubType:    class,
		TravelDate: ptr.Of(travel),
	}
}

func carItem() commands.CartItem {
	return commands.CartItem{
		ListingID:  "car-1",
		Variant:    "car",
		Quantity:   1,
		PickupDate: ptr.Of(dec1),
		ReturnDate: ptr.Of(dec3),
	}
}

func newCard() commands.CardData {
	return commands.CardData{
		CardNumber: "4111 1111 1111 1111",
		CardHolder: "Ada Lovelace",
		ExpiryDate: "12/27",
		CVV:        "123",
		ZipCode:    "94102",
	}
}

func bookingIDs(res *commands.CheckoutResult) []string {
	ids := make([]string, 0, len(res.Bookings))
	for _, b := range res.Bookings {
		ids = append(ids, b.ID())
	}
	return ids
}
