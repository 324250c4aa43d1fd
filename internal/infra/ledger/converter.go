package ledger

import (
	"encoding/json"

	"travel-kernel/internal/domain/billing"
	"travel-kernel/internal/domain/listing"
	"travel-kernel/internal/pkg/pgconv"
)

func toInsertParams(r billing.Row) (InsertBillParams, error) {
	invoice, err := json.Marshal(r.Invoice)
	if err != nil {
		return InsertBillParams{}, err
	}
	return InsertBillParams{
		BillingID:         r.BillingID,
		BookingID:         r.BookingID,
		UserID:            r.UserID,
		BookingType:       string(r.Variant),
		CheckoutID:        pgconv.StringToPgtype(r.CheckoutID),
		TransactionDate:   pgconv.TimeToPgtype(r.TransactionDate),
		TotalAmount:       r.AmountCents,
		PaymentMethod:     r.PaymentMethod,
		TransactionStatus: string(r.Status),
		InvoiceDetails:    invoice,
	}, nil
}

func toDomainRow(b BillRow) (billing.Row, error) {
	var invoice billing.InvoiceDetails
	if len(b.InvoiceDetails) > 0 {
		if err := json.Unmarshal(b.InvoiceDetails, &invoice); err != nil {
			return billing.Row{}, err
		}
	}
	row := billing.Row{
		BillingID:       b.BillingID,
		BookingID:       b.BookingID,
		UserID:          b.UserID,
		Variant:         listing.Variant(b.BookingType),
		TransactionDate: pgconv.TimeFromPgtype(b.TransactionDate),
		AmountCents:     b.TotalAmount,
		PaymentMethod:   b.PaymentMethod,
		Status:          billing.Status(b.TransactionStatus),
		Invoice:         invoice,
	}
	if id := pgconv.StringPtrFromPgtype(b.CheckoutID); id != nil {
		row.CheckoutID = *id
	}
	return row, nil
}

func toDomainRows(rows []BillRow) ([]billing.Row, error) {
	out := make([]billing.Row, 0, len(rows))
	for _, r := range rows {
		row, err := toDomainRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}
