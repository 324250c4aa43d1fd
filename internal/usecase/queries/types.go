package queries

import (
	"time"

	"travel-kernel/internal/domain/billing"
	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/domain/card"
)

// BookingView represents read-optimized booking data
type BookingView struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	ListingID        string     `json:"listingId"`
	Variant          string     `json:"variant"`
	Quantity         int        `json:"quantity"`
	SubType          string     `json:"subType,omitempty"`
	TravelDate       *time.Time `json:"travelDate,omitempty"`
	CheckIn          *time.Time `json:"checkIn,omitempty"`
	CheckOut         *time.Time `json:"checkOut,omitempty"`
	TotalAmountCents int64      `json:"totalAmountCents"`
	Status           string     `json:"status"`
	BillingID        string     `json:"billingId,omitempty"`
	CheckoutID       string     `json:"checkoutId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func NewBookingView(b *booking.Booking) *BookingView {
	d := b.Dates()
	return &BookingView{
		ID:               b.ID(),
		UserID:           b.UserID(),
		ListingID:        b.ListingID(),
		Variant:          b.Variant().String(),
		Quantity:         b.Quantity(),
		SubType:          b.SubType(),
		TravelDate:       d.TravelDate,
		CheckIn:          d.CheckIn,
		CheckOut:         d.CheckOut,
		TotalAmountCents: b.TotalAmount().Cents(),
		Status:           b.Status().String(),
		BillingID:        b.BillingID(),
		CheckoutID:       b.CheckoutID(),
		CreatedAt:        b.CreatedAt(),
		UpdatedAt:        b.UpdatedAt(),
	}
}

func NewBookingViews(bs []*booking.Booking) []*BookingView {
	out := make([]*BookingView, 0, len(bs))
	for _, b := range bs {
		out = append(out, NewBookingView(b))
	}
	return out
}

// BillLineView is one presented line of a bill. Hotel rooms of the same
// property appear as a single line.
type BillLineView struct {
	Variant     string   `json:"variant"`
	ListingID   string   `json:"listingId,omitempty"`
	BookingIDs  []string `json:"bookingIds"`
	AmountCents int64    `json:"amountCents"`
}

// BillItemView is one ledger row with its invoice snapshot.
type BillItemView struct {
	BookingID   string                 `json:"bookingId"`
	Variant     string                 `json:"variant"`
	AmountCents int64                  `json:"amountCents"`
	Status      string                 `json:"status"`
	Invoice     billing.InvoiceDetails `json:"invoice"`
}

type BillView struct {
	BillingID       string         `json:"billingId"`
	UserID          string         `json:"userId"`
	CheckoutID      string         `json:"checkoutId,omitempty"`
	PaymentMethod   string         `json:"paymentMethod"`
	Status          string         `json:"status"`
	TransactionDate time.Time      `json:"transactionDate"`
	TotalCents      int64          `json:"totalCents"`
	Lines           []BillLineView `json:"lines"`
	Items           []BillItemView `json:"items"`
}

func NewBillView(b *billing.Bill) *BillView {
	v := &BillView{
		BillingID:       b.BillingID,
		UserID:          b.UserID,
		CheckoutID:      b.CheckoutID,
		PaymentMethod:   b.PaymentMethod,
		Status:          b.Status.String(),
		TransactionDate: b.TransactionDate,
		TotalCents:      b.TotalCents,
		Lines:           make([]BillLineView, 0, len(b.Lines)),
		Items:           make([]BillItemView, 0, len(b.Rows)),
	}
	for _, l := range b.Lines {
		v.Lines = append(v.Lines, BillLineView{
			Variant:     l.Variant.String(),
			ListingID:   l.ListingID,
			BookingIDs:  l.BookingIDs,
			AmountCents: l.AmountCents,
		})
	}
	for _, r := range b.Rows {
		v.Items = append(v.Items, BillItemView{
			BookingID:   r.BookingID,
			Variant:     r.Variant.String(),
			AmountCents: r.AmountCents,
			Status:      r.Status.String(),
			Invoice:     r.Invoice,
		})
	}
	return v
}

func NewBillViews(bills []*billing.Bill) []*BillView {
	out := make([]*BillView, 0, len(bills))
	for _, b := range bills {
		out = append(out, NewBillView(b))
	}
	return out
}

type AvailabilityView struct {
	ListingID  string     `json:"listingId"`
	Variant    string     `json:"variant"`
	SubType    string     `json:"subType,omitempty"`
	TravelDate *time.Time `json:"travelDate,omitempty"`
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
	Remaining  int        `json:"remaining"`
}

// CardView never carries the PAN; CardNumber is always the masked form.
type CardView struct {
	CardID     string    `json:"cardId"`
	CardNumber string    `json:"cardNumber"`
	CardHolder string    `json:"cardHolder"`
	ExpiryDate string    `json:"expiryDate"`
	ZipCode    string    `json:"zipCode,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewCardView(c card.SavedCard) *CardView {
	return &CardView{
		CardID:     c.ID,
		CardNumber: c.Masked(),
		CardHolder: c.Holder,
		ExpiryDate: c.Expiry,
		ZipCode:    c.ZIP,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
