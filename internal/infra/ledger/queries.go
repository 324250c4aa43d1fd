package ledger

import (
	"context"
	"time"

	"travel-kernel/internal/infra/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// BillRow mirrors one row of the bills table.
type BillRow struct {
	BillingID         string
	BookingID         string
	UserID            string
	BookingType       string
	CheckoutID        pgtype.Text
	TransactionDate   pgtype.Timestamptz
	TotalAmount       int64
	PaymentMethod     string
	TransactionStatus string
	InvoiceDetails    []byte
	CreatedAt         pgtype.Timestamptz
	UpdatedAt         pgtype.Timestamptz
}

const billColumns = `billing_id, booking_id, user_id, booking_type, checkout_id, transaction_date,
	total_amount, payment_method, transaction_status, invoice_details, created_at, updated_at`

const insertBill = `INSERT INTO bills (
	billing_id, booking_id, user_id, booking_type, checkout_id, transaction_date,
	total_amount, payment_method, transaction_status, invoice_details
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

type InsertBillParams struct {
	BillingID         string
	BookingID         string
	UserID            string
	BookingType       string
	CheckoutID        pgtype.Text
	TransactionDate   pgtype.Timestamptz
	TotalAmount       int64
	PaymentMethod     string
	TransactionStatus string
	InvoiceDetails    []byte
}

const markBillsFailed = `UPDATE bills
SET transaction_status = 'Failed', updated_at = now()
WHERE billing_id = $1 AND transaction_status <> 'Failed'`

const getBillsByBillingID = `SELECT ` + billColumns + `
FROM bills
WHERE billing_id = $1
ORDER BY booking_id`

const getBillsByUserID = `SELECT ` + billColumns + `
FROM bills
WHERE user_id = $1
ORDER BY transaction_date DESC, billing_id, booking_id`

const searchBills = `SELECT ` + billColumns + `
FROM bills
WHERE transaction_date >= $1
  AND transaction_date < $2
  AND ($3::text IS NULL OR user_id = $3)
  AND ($4::text IS NULL OR transaction_status = $4)
ORDER BY transaction_date DESC, billing_id, booking_id`

type SearchBillsParams struct {
	From              time.Time
	To                time.Time
	UserID            pgtype.Text
	TransactionStatus pgtype.Text
}

// Queries holds the ledger SQL. Every method takes the DBTX to run on so the
// same value serves pool reads and transactional writes.
type Queries struct{}

func NewQueries() *Queries {
	return &Queries{}
}

func (q *Queries) InsertBill(ctx context.Context, dbtx db.DBTX, arg InsertBillParams) error {
	_, err := dbtx.Exec(ctx, insertBill,
		arg.BillingID,
		arg.BookingID,
		arg.UserID,
		arg.BookingType,
		arg.CheckoutID,
		arg.TransactionDate,
		arg.TotalAmount,
		arg.PaymentMethod,
		arg.TransactionStatus,
		arg.InvoiceDetails,
	)
	return err
}

func (q *Queries) MarkBillsFailed(ctx context.Context, dbtx db.DBTX, billingID string) (int64, error) {
	tag, err := dbtx.Exec(ctx, markBillsFailed, billingID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q *Queries) GetBillsByBillingID(ctx context.Context, dbtx db.DBTX, billingID string) ([]BillRow, error) {
	rows, err := dbtx.Query(ctx, getBillsByBillingID, billingID)
	if err != nil {
		return nil, err
	}
	return collectBillRows(rows)
}

func (q *Queries) GetBillsByUserID(ctx context.Context, dbtx db.DBTX, userID string) ([]BillRow, error) {
	rows, err := dbtx.Query(ctx, getBillsByUserID, userID)
	if err != nil {
		return nil, err
	}
	return collectBillRows(rows)
}

func (q *Queries) SearchBills(ctx context.Context, dbtx db.DBTX, arg SearchBillsParams) ([]BillRow, error) {
	rows, err := dbtx.Query(ctx, searchBills, arg.From, arg.To, arg.UserID, arg.TransactionStatus)
	if err != nil {
		return nil, err
	}
	return collectBillRows(rows)
}

func collectBillRows(rows pgx.Rows) ([]BillRow, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (BillRow, error) {
		var b BillRow
		err := row.Scan(
			&b.BillingID,
			&b.BookingID,
			&b.UserID,
			&b.BookingType,
			&b.CheckoutID,
			&b.TransactionDate,
			&b.TotalAmount,
			&b.PaymentMethod,
			&b.TransactionStatus,
			&b.InvoiceDetails,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		return b, err
	})
}
