package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"travel-kernel/internal/domain/billing"
	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/domain/card"
	"travel-kernel/internal/domain/listing"
	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/pkg/clock"
	"travel-kernel/internal/pkg/errs"
	"travel-kernel/internal/usecase/shared"

	"github.com/google/uuid"
)

// CartItem is one requested reservation. Cars may use PickupDate/ReturnDate
// in place of CheckIn/CheckOut.
type CartItem struct {
	ListingID  string
	Variant    string
	Quantity   int
	SubType    string
	TravelDate *time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	PickupDate *time.Time
	ReturnDate *time.Time
}

type CheckoutRequest struct {
	UserID string
	Items  []CartItem
}

type CheckoutResult struct {
	CheckoutID       string
	Bookings         []*booking.Booking
	TotalAmountCents int64
}

// CardData is either a saved card reference (CardID) or a full new card.
type CardData struct {
	CardID     string
	CardNumber string
	CardHolder string
	ExpiryDate string
	CVV        string
	ZipCode    string
}

type PaymentRequest struct {
	CheckoutID    string
	UserID        string
	BookingIDs    []string
	PaymentMethod string
	Card          CardData
}

type PaymentResult struct {
	BillingID        string
	Bookings         []*booking.Booking
	TotalAmountCents int64
}

//go:generate mockgen -source=checkout.go -destination=../../../tests/mock/commands/checkout_mock.go -package=commandsmock

type CheckoutCommands interface {
	// Checkout holds every cart item or none of them.
	Checkout(ctx context.Context, actor user.Actor, req CheckoutRequest) (*CheckoutResult, error)
	// Pay validates the card, writes the ledger and confirms the holds. Every
	// failure leaves the referenced bookings Failed.
	Pay(ctx context.Context, actor user.Actor, req PaymentRequest) (*PaymentResult, error)
}

type checkoutUseCaseImpl struct {
	*lifecycle
	bookings BookingCommands
	cards    CardCommands
	uow      shared.UnitOfWork
	policy   card.Policy
}

func NewCheckoutUseCase(
	bookings BookingCommands,
	cards CardCommands,
	store shared.BookingStore,
	uow shared.UnitOfWork,
	cache shared.ViewCache,
	events shared.EventPublisher,
	policy card.Policy,
	clk clock.Clock,
	settings BookingSettings,
	logger *slog.Logger,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		lifecycle: &lifecycle{
			store:    store,
			cache:    cache,
			events:   events,
			clock:    clk,
			settings: settings,
			logger:   logger,
		},
		bookings: bookings,
		cards:    cards,
		uow:      uow,
		policy:   policy,
	}
}

func (uc *checkoutUseCaseImpl) Checkout(ctx context.Context, actor user.Actor, req CheckoutRequest) (*CheckoutResult, error) {
	// a disconnecting client must not leave holds half-compensated
	ctx = context.WithoutCancel(ctx)

	if !actor.CanActFor(req.UserID) {
		return nil, ErrActorMismatch
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	checkoutID := uuid.NewString()
	logger := uc.logger.With("checkoutId", checkoutID, "userId", req.UserID)
	sg := uc.compensator("checkout " + checkoutID)

	var (
		held     []*booking.Booking
		failures []ItemError
	)
	for i, item := range req.Items {
		for _, unit := range splitRooms(item) {
			b, err := uc.holdItem(ctx, req.UserID, checkoutID, unit)
			if err != nil {
				failures = append(failures, ItemError{Index: i, ListingID: item.ListingID, Err: err})
				break
			}
			held = append(held, b)
			id := b.ID()
			sg.Add("fail hold "+id, func(ctx context.Context) error {
				_, err := uc.fail(ctx, []string{id}, "")
				return err
			})
		}
	}

	if len(failures) > 0 {
		holdErr := &HoldError{Items: failures}
		logger.Info("checkout rejected", "failedItems", len(failures), "heldItems", len(held))
		if err := sg.Compensate(ctx, holdErr); err != nil {
			logger.Error("checkout left holds behind", "critical", true, "error", err.Error())
		}
		return nil, holdErr
	}

	var total booking.Money
	for _, b := range held {
		total = total.Add(b.TotalAmount())
	}
	logger.Info("checkout held", "bookings", len(held), "totalCents", total.Cents())
	return &CheckoutResult{
		CheckoutID:       checkoutID,
		Bookings:         held,
		TotalAmountCents: total.Cents(),
	}, nil
}

func (uc *checkoutUseCaseImpl) holdItem(ctx context.Context, userID, checkoutID string, item CartItem) (*booking.Booking, error) {
	variant, err := listing.ParseVariant(item.Variant)
	if err != nil {
		return nil, err
	}
	spec := booking.HoldSpec{
		UserID:     userID,
		ListingID:  item.ListingID,
		Variant:    variant,
		Quantity:   item.Quantity,
		SubType:    item.SubType,
		Dates:      cartDates(variant, item),
		CheckoutID: checkoutID,
	}
	return uc.bookings.CreateHold(ctx, spec)
}

// splitRooms turns a hotel item for n rooms into n single-room items so each
// room is its own booking under the shared billing id. Other variants pass
// through unchanged.
func splitRooms(item CartItem) []CartItem {
	v, err := listing.ParseVariant(item.Variant)
	if err != nil || v != listing.VariantHotel || item.Quantity <= 1 {
		return []CartItem{item}
	}
	units := make([]CartItem, item.Quantity)
	for i := range units {
		units[i] = item
		units[i].Quantity = 1
	}
	return units
}

// cartDates maps variant-specific request dates onto the booking date triple.
func cartDates(v listing.Variant, item CartItem) booking.Dates {
	switch v {
	case listing.VariantFlight:
		if item.TravelDate != nil {
			return booking.FlightDates(*item.TravelDate)
		}
	case listing.VariantCar:
		in, out := item.PickupDate, item.ReturnDate
		if in == nil {
			in = item.CheckIn
		}
		if out == nil {
			out = item.CheckOut
		}
		if in != nil && out != nil {
			return booking.StayDates(*in, *out)
		}
	default:
		if item.CheckIn != nil && item.CheckOut != nil {
			return booking.StayDates(*item.CheckIn, *item.CheckOut)
		}
	}
	return booking.Dates{}
}

func (uc *checkoutUseCaseImpl) Pay(ctx context.Context, actor user.Actor, req PaymentRequest) (*PaymentResult, error) {
	ctx = context.WithoutCancel(ctx)

	if !actor.CanActFor(req.UserID) {
		return nil, ErrActorMismatch
	}
	ids := uniqueIDs(req.BookingIDs)
	if len(ids) == 0 {
		return nil, ErrNoBookings
	}
	logger := uc.logger.With("checkoutId", req.CheckoutID, "userId", req.UserID)
	now := uc.clock.Now()

	found, err := uc.store.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err := uc.checkBookings(found, ids, req, now); err != nil {
		logger.Info("payment rejected", "error", err.Error())
		uc.abort(ctx, err, req.UserID, pendingOwnedBy(found, req.UserID), "")
		return nil, err
	}
	ordered := orderByIDs(found, ids)

	details, err := uc.resolveCard(ctx, req, now)
	if err != nil {
		logger.Info("payment card rejected", "error", err.Error())
		uc.abort(ctx, err, req.UserID, ids, "")
		return nil, err
	}

	billingID := uuid.NewString()
	rows := ledgerRows(billingID, req, ordered, details, now)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bills().Insert(ctx, tx.DB(), rows)
	})
	if err != nil {
		logger.Error("ledger write failed", "billingId", billingID, "error", err.Error())
		uc.abort(ctx, err, req.UserID, ids, "")
		return nil, err
	}

	var confirmed []*booking.Booking
	err = uc.store.Within(ctx, func(ctx context.Context, tx shared.BookingTx) error {
		confirmed = confirmed[:0]
		current, err := tx.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(current) != len(ids) {
			return ErrUnknownBooking
		}
		for _, b := range orderByIDs(current, ids) {
			if b.Status() == booking.StatusConfirmed && b.BillingID() != billingID {
				return ErrAlreadyPaid
			}
			if err := b.Confirm(billingID, now); err != nil {
				return err
			}
			if err := tx.Update(ctx, b, booking.StatusPending); err != nil {
				return err
			}
			confirmed = append(confirmed, b)
		}
		return nil
	})
	if errs.Is(err, ErrAlreadyPaid) {
		// the winning payment owns the bookings; only this bill is voided
		logger.Warn("bookings paid concurrently", "billingId", billingID)
		uc.abort(ctx, err, req.UserID, nil, billingID)
		return nil, err
	}
	if err != nil {
		logger.Error("booking confirmation failed after ledger commit", "billingId", billingID, "error", err.Error())
		uc.abort(ctx, err, req.UserID, ids, billingID)
		return nil, err
	}

	uc.announce(ctx, confirmed...)

	var total booking.Money
	for _, b := range confirmed {
		total = total.Add(b.TotalAmount())
	}
	logger.Info("payment completed", "billingId", billingID, "bookings", len(confirmed), "totalCents", total.Cents())
	return &PaymentResult{
		BillingID:        billingID,
		Bookings:         confirmed,
		TotalAmountCents: total.Cents(),
	}, nil
}

// checkBookings rejects the payment unless every id resolves to a Pending,
// unexpired booking of the payer from this checkout.
func (uc *checkoutUseCaseImpl) checkBookings(found []*booking.Booking, ids []string, req PaymentRequest, now time.Time) error {
	if req.PaymentMethod != "" && !strings.EqualFold(req.PaymentMethod, billing.PaymentMethodCard) {
		return ErrPaymentMethod
	}
	if len(found) != len(ids) {
		return ErrUnknownBooking
	}
	for _, b := range found {
		if !b.OwnedBy(req.UserID) {
			return ErrNotOwner
		}
		if b.Status() != booking.StatusPending {
			return ErrBookingNotPending
		}
		if req.CheckoutID != "" && b.CheckoutID() != req.CheckoutID {
			return ErrCheckoutMismatch
		}
		if b.IsStale(now, uc.settings.HoldHorizon) {
			return ErrHoldExpired
		}
	}
	return nil
}

func (uc *checkoutUseCaseImpl) resolveCard(ctx context.Context, req PaymentRequest, now time.Time) (card.Details, error) {
	data := req.Card
	if err := card.ValidateCVV(strings.TrimSpace(data.CVV)); err != nil {
		return card.Details{}, err
	}

	switch {
	case strings.TrimSpace(data.CardID) != "":
		saved, err := uc.cards.ForPayment(ctx, req.UserID, data.CardID)
		if err != nil {
			return card.Details{}, err
		}
		if strings.TrimSpace(saved.ZIP) == "" {
			return card.Details{}, card.ErrZIPMissing
		}
		if card.NormalizeZIP(data.ZipCode) != card.NormalizeZIP(saved.ZIP) {
			return card.Details{}, card.ZIPMismatch(strings.TrimSpace(data.ZipCode))
		}
		if _, err := card.ValidateExpiry(saved.Expiry, now); err != nil {
			return card.Details{}, err
		}
		return saved, nil

	case strings.TrimSpace(data.CardNumber) != "":
		in, err := uc.policy.Validate(card.Input{
			PAN:    data.CardNumber,
			Holder: data.CardHolder,
			Expiry: data.ExpiryDate,
			ZIP:    data.ZipCode,
		}, now)
		if err != nil {
			return card.Details{}, err
		}
		return card.Details{PAN: in.PAN, Holder: in.Holder, Expiry: in.Expiry, ZIP: in.ZIP}, nil

	default:
		return card.Details{}, ErrCardDataRequired
	}
}

// abort terminates a failed payment. Bookings are failed before the ledger
// rows are voided so no Confirmed booking ever points at a Failed bill.
func (uc *checkoutUseCaseImpl) abort(ctx context.Context, cause error, userID string, ids []string, billingID string) {
	sg := uc.compensator("payment")
	if billingID != "" {
		sg.Add("void ledger "+billingID, func(ctx context.Context) error {
			return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
				_, err := tx.Bills().MarkFailed(ctx, tx.DB(), billingID)
				return err
			})
		})
	}
	if len(ids) > 0 {
		sg.Add("fail bookings", func(ctx context.Context) error {
			_, err := uc.fail(ctx, ids, billingID)
			return err
		})
	}
	if sg.Len() == 0 {
		return
	}

	if err := sg.Compensate(ctx, cause); err != nil {
		uc.logger.Error("payment left inconsistent",
			"critical", true,
			"billingId", billingID,
			"bookingIds", ids,
			"error", err.Error(),
		)
	}
	if billingID != "" {
		uc.invalidate(ctx, shared.BillScope(userID))
	}
}

func pendingOwnedBy(bs []*booking.Booking, userID string) []string {
	ids := make([]string, 0, len(bs))
	for _, b := range bs {
		if b.OwnedBy(userID) && b.Status() == booking.StatusPending {
			ids = append(ids, b.ID())
		}
	}
	return ids
}

func orderByIDs(bs []*booking.Booking, ids []string) []*booking.Booking {
	byID := make(map[string]*booking.Booking, len(bs))
	for _, b := range bs {
		byID[b.ID()] = b
	}
	out := make([]*booking.Booking, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

func ledgerRows(billingID string, req PaymentRequest, bs []*booking.Booking, details card.Details, now time.Time) []billing.Row {
	rows := make([]billing.Row, 0, len(bs))
	for _, b := range bs {
		d := b.Dates()
		checkoutID := b.CheckoutID()
		if checkoutID == "" {
			checkoutID = req.CheckoutID
		}
		rows = append(rows, billing.Row{
			BillingID:       billingID,
			BookingID:       b.ID(),
			UserID:          b.UserID(),
			Variant:         b.Variant(),
			CheckoutID:      checkoutID,
			TransactionDate: now,
			AmountCents:     b.TotalAmount().Cents(),
			PaymentMethod:   billing.PaymentMethodCard,
			Status:          billing.StatusCompleted,
			Invoice: billing.InvoiceDetails{
				CardHolder:  details.Holder,
				MaskedCard:  card.Mask(card.Last4(details.PAN)),
				Expiry:      details.Expiry,
				ZipCode:     details.ZIP,
				ListingID:   b.ListingID(),
				Variant:     b.Variant(),
				SubType:     b.SubType(),
				Quantity:    b.Quantity(),
				TravelDate:  d.TravelDate,
				CheckIn:     d.CheckIn,
				CheckOut:    d.CheckOut,
				TotalAmount: b.TotalAmount().Cents(),
			},
		})
	}
	return rows
}
