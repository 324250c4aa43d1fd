package ledger

import (
	"context"
	"errors"
	"log/slog"

	"travel-kernel/internal/domain/billing"
	"travel-kernel/internal/infra"
	"travel-kernel/internal/infra/db"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

//go:generate mockgen -source=repository.go -destination=../../../tests/mock/ledger/repository_mock.go -package=ledgermock

type BillWriteQueries interface {
	InsertBill(ctx context.Context, dbtx db.DBTX, arg InsertBillParams) error
	MarkBillsFailed(ctx context.Context, dbtx db.DBTX, billingID string) (int64, error)
}

type BillRepository struct {
	queries BillWriteQueries
	logger  *slog.Logger
}

func NewBillRepository(queries BillWriteQueries, logger *slog.Logger) *BillRepository {
	return &BillRepository{
		queries: queries,
		logger:  logger,
	}
}

// Insert writes every row on tx. Callers run it inside one ledger
// transaction so a checkout's rows commit together or not at all.
func (r *BillRepository) Insert(ctx context.Context, tx db.DBTX, rows []billing.Row) error {
	for _, row := range rows {
		params, err := toInsertParams(row)
		if err != nil {
			return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode invoice details", err)
		}
		if err := r.queries.InsertBill(ctx, tx, params); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
				return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "bill row already exists", err)
			}
			return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to insert bill row", err)
		}
	}
	return nil
}

func (r *BillRepository) MarkFailed(ctx context.Context, tx db.DBTX, billingID string) (int64, error) {
	n, err := r.queries.MarkBillsFailed(ctx, tx, billingID)
	if err != nil {
		return 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to mark bill rows failed", err)
	}
	return n, nil
}
