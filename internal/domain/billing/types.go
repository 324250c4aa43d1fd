package billing

import (
	"time"

	"travel-kernel/internal/domain/listing"
	"travel-kernel/internal/pkg/errs"
)

type Status string

const (
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
)

func (s Status) String() string { return string(s) }

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusCompleted, StatusFailed:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

const PaymentMethodCard = "credit_card"

var (
	ErrNotFound       = errs.Mark(errs.New("bill not found"), errs.ErrNotFound)
	ErrInvalidStatus  = errs.NewValidation("status", "status must be Completed or Failed")
	ErrEmptyBill      = errs.New("a bill needs at least one row")
	ErrMixedBill      = errs.New("bill rows must share billing id and user")
	ErrSearchRange    = errs.NewValidation("start", "provide either start and end, or month and year")
	ErrSearchMonth    = errs.NewValidation("month", "month must be between 1 and 12")
	ErrSearchInverted = errs.NewValidation("end", "end must not be before start")
)

// InvoiceDetails is the denormalised JSON snapshot stored with each ledger row.
// It never carries more of the card than the masked last four digits.
type InvoiceDetails struct {
	CardHolder  string          `json:"cardHolder"`
	MaskedCard  string          `json:"maskedCard"`
	Expiry      string          `json:"expiry"`
	ZipCode     string          `json:"zipCode"`
	ListingID   string          `json:"listingId"`
	Variant     listing.Variant `json:"variant"`
	SubType     string          `json:"subType,omitempty"`
	Quantity    int             `json:"quantity"`
	TravelDate  *time.Time      `json:"travelDate,omitempty"`
	CheckIn     *time.Time      `json:"checkIn,omitempty"`
	CheckOut    *time.Time      `json:"checkOut,omitempty"`
	TotalAmount int64           `json:"totalAmount"`
}

// Row is one ledger entry keyed by (BillingID, BookingID).
type Row struct {
	BillingID       string
	BookingID       string
	UserID          string
	Variant         listing.Variant
	CheckoutID      string
	TransactionDate time.Time
	AmountCents     int64
	PaymentMethod   string
	Status          Status
	Invoice         InvoiceDetails
}
