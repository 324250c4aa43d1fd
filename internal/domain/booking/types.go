package booking

import "travel-kernel/internal/pkg/errs"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// Legal forward edges. Compensation (Confirmed -> Failed) is handled separately.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusFailed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusFailed:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusFailed
}

// HoldsInventory reports whether a booking in this state consumes capacity.
func (s Status) HoldsInventory() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

var (
	ErrNotFound          = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)
	ErrIllegalTransition = errs.Mark(errs.New("illegal booking state transition"), errs.ErrConflict)
	ErrAlreadyTerminal   = errs.Mark(errs.New("booking is already cancelled or failed"), errs.ErrConflict)
	ErrInvalidStatus     = errs.NewValidation("status", "status must be one of pending, confirmed, cancelled, failed")
	ErrBillingIDRequired = errs.New("billing id is required to confirm a booking")

	ErrQuantity             = errs.NewValidation("quantity", "quantity must be at least 1")
	ErrUserIDRequired       = errs.NewValidation("userId", "userId is required")
	ErrListingIDRequired    = errs.NewValidation("listingId", "listingId is required")
	ErrListingMismatch      = errs.NewValidation("listingId", "listing does not match the requested variant")
	ErrInsufficientCapacity = errs.NewValidation("quantity", "not enough capacity")
	ErrTravelDateRequired   = errs.NewValidation("travelDate", "travelDate is required for flights")
	ErrStayDatesRequired    = errs.NewValidation("checkIn", "check-in and check-out dates are required")
	ErrDateOrder            = errs.NewValidation("checkOut", "check-out must be after check-in")
	ErrZeroUnits            = errs.NewValidation("checkOut", "booking must cover at least one night or day")
	ErrNotOperatingDay      = errs.NewValidation("travelDate", "flight does not operate on the requested weekday")
	ErrOutsideWindow        = errs.NewValidation("travelDate", "requested dates fall outside the listing availability window")
)
