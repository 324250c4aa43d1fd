package shared

import (
	"context"

	"travel-kernel/internal/domain/billing"
	"travel-kernel/internal/infra/db"
)

// UnitOfWork scopes writes to the relational billing ledger.
type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Bills() BillRepository
	DB() db.DBTX
}

type BillRepository interface {
	Insert(ctx context.Context, tx db.DBTX, rows []billing.Row) error
	MarkFailed(ctx context.Context, tx db.DBTX, billingID string) (int64, error)
}

type BillReader interface {
	ByBillingID(ctx context.Context, billingID string) ([]billing.Row, error)
	ByUserID(ctx context.Context, userID string) ([]billing.Row, error)
	Search(ctx context.Context, filter billing.SearchFilter) ([]billing.Row, error)
}
