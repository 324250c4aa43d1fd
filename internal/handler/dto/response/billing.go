package response

import (
	"time"

	"travel-kernel/internal/domain/billing"
	"travel-kernel/internal/usecase/queries"
)

type BillLineResponse struct {
	Variant     string   `json:"variant"`
	ListingID   string   `json:"listingId,omitempty"`
	BookingIDs  []string `json:"bookingIds"`
	AmountCents int64    `json:"amount"`
}

type BillItemResponse struct {
	BookingID   string                 `json:"bookingId"`
	Variant     string                 `json:"variant"`
	AmountCents int64                  `json:"amount"`
	Status      string                 `json:"status"`
	Invoice     billing.InvoiceDetails `json:"invoiceDetails"`
}

type BillResponse struct {
	BillingID       string             `json:"billingId"`
	UserID          string             `json:"userId"`
	CheckoutID      string             `json:"checkoutId,omitempty"`
	PaymentMethod   string             `json:"paymentMethod"`
	Status          string             `json:"status"`
	TransactionDate time.Time          `json:"transactionDate"`
	TotalCents      int64              `json:"totalAmount"`
	Lines           []BillLineResponse `json:"lines"`
	Items           []BillItemResponse `json:"items"`
}

func FromBillView(v *queries.BillView) *BillResponse {
	out := &BillResponse{}
	mustCopy(out, v)
	return out
}

func FromBillViews(vs []*queries.BillView) []*BillResponse {
	out := make([]*BillResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromBillView(v))
	}
	return out
}
