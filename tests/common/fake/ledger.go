//go:build unit || e2e

package fake

import (
	"context"
	"sort"
	"sync"

	"travel-kernel/internal/domain/billing"
	"travel-kernel/internal/infra"
	"travel-kernel/internal/infra/db"
	"travel-kernel/internal/usecase/shared"
)

// Ledger implements both the unit of work and the bill reader over a slice
// of rows. Writes of a failed transaction are discarded.
type Ledger struct {
	mu   sync.Mutex
	rows []billing.Row

	InsertErr     error
	MarkFailedErr error
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := &ledgerTx{ledger: l, rows: append([]billing.Row(nil), l.rows...)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	l.rows = tx.rows
	return nil
}

func (l *Ledger) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

// Rows returns every stored row of billingID.
func (l *Ledger) Rows(billingID string) []billing.Row {
	l.mu.Lock()
	defer l.mu.Unlock()
	return filterRows(l.rows, func(r billing.Row) bool { return r.BillingID == billingID })
}

func (l *Ledger) All() []billing.Row {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]billing.Row(nil), l.rows...)
}

func (l *Ledger) ByBillingID(_ context.Context, billingID string) ([]billing.Row, error) {
	rows := l.Rows(billingID)
	if len(rows) == 0 {
		return nil, infra.RepositoryError{Kind: infra.KindNotFound}
	}
	return rows, nil
}

func (l *Ledger) ByUserID(_ context.Context, userID string) ([]billing.Row, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return filterRows(l.rows, func(r billing.Row) bool { return r.UserID == userID }), nil
}

func (l *Ledger) Search(_ context.Context, filter billing.SearchFilter) ([]billing.Row, error) {
	from, to, err := filter.Range()
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return filterRows(l.rows, func(r billing.Row) bool {
		return !r.TransactionDate.Before(from) && r.TransactionDate.Before(to) &&
			(filter.UserID == "" || r.UserID == filter.UserID) &&
			(filter.Status == "" || r.Status == filter.Status)
	}), nil
}

type ledgerTx struct {
	ledger *Ledger
	rows   []billing.Row
}

func (t *ledgerTx) Bills() shared.BillRepository { return t }
func (t *ledgerTx) DB() db.DBTX                  { return nil }

func (t *ledgerTx) Insert(_ context.Context, _ db.DBTX, rows []billing.Row) error {
	if t.ledger.InsertErr != nil {
		return t.ledger.InsertErr
	}
	for _, r := range rows {
		for _, existing := range t.rows {
			if existing.BillingID == r.BillingID && existing.BookingID == r.BookingID {
				return infra.RepositoryError{Kind: infra.KindDuplicateKey}
			}
		}
		t.rows = append(t.rows, r)
	}
	return nil
}

func (t *ledgerTx) MarkFailed(_ context.Context, _ db.DBTX, billingID string) (int64, error) {
	if t.ledger.MarkFailedErr != nil {
		return 0, t.ledger.MarkFailedErr
	}
	var n int64
	for i := range t.rows {
		if t.rows[i].BillingID == billingID && t.rows[i].Status != billing.StatusFailed {
			t.rows[i].Status = billing.StatusFailed
			n++
		}
	}
	return n, nil
}

func filterRows(rows []billing.Row, match func(billing.Row) bool) []billing.Row {
	out := []billing.Row{}
	for _, r := range rows {
		if match(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TransactionDate.After(out[j].TransactionDate)
	})
	return out
}
