package commands

import (
	"fmt"
	"strings"

	"travel-kernel/internal/pkg/errs"
)

var (
	ErrNotOwner      = errs.Mark(errs.New("resource is owned by another user"), errs.ErrForbidden)
	ErrActorMismatch = errs.Mark(errs.New("userId does not match the authenticated user"), errs.ErrForbidden)

	ErrEmptyCart         = errs.NewValidation("cartItems", "cart must contain at least one item")
	ErrNoBookings        = errs.NewValidation("bookingIds", "at least one booking id is required")
	ErrBookingNotPending = errs.NewValidation("bookingIds", "booking is not pending")
	ErrHoldExpired       = errs.NewValidation("bookingIds", "booking hold has expired")
	ErrCheckoutMismatch  = errs.NewValidation("checkoutId", "booking does not belong to this checkout")
	ErrPaymentMethod     = errs.NewValidation("paymentMethod", "payment method must be credit_card")
	ErrCardDataRequired  = errs.NewValidation("cardData", "either cardId or a full card number is required")
	ErrUnknownBooking    = errs.Mark(errs.New("one or more bookings do not exist"), errs.ErrNotFound)
	ErrAlreadyPaid       = errs.Mark(errs.New("booking was paid by another payment"), errs.ErrConflict)

	// ErrCardUnreadable hides the vault failure from the caller.
	ErrCardUnreadable = errs.New("saved card could not be read")
)

// ItemError is the failure of one cart item during the hold phase.
type ItemError struct {
	Index     int
	ListingID string
	Err       error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("item %d (%s): %s", e.Index, e.ListingID, e.Err.Error())
}

func (e ItemError) Unwrap() error { return e.Err }

// HoldError reports every cart item that could not be held. The checkout has
// already been compensated when it is returned.
type HoldError struct {
	Items []ItemError
}

func (e *HoldError) Error() string {
	parts := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		parts = append(parts, it.Error())
	}
	return "checkout failed: " + strings.Join(parts, "; ")
}

func (e *HoldError) Unwrap() []error {
	out := make([]error, 0, len(e.Items))
	for _, it := range e.Items {
		out = append(out, it.Err)
	}
	return out
}

