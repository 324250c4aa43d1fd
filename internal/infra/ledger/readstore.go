package ledger

import (
	"context"
	"log/slog"

	"travel-kernel/internal/domain/billing"
	"travel-kernel/internal/infra"
	"travel-kernel/internal/infra/db"
	"travel-kernel/internal/pkg/pgconv"
)

//go:generate mockgen -source=readstore.go -destination=../../../tests/mock/ledger/readstore_mock.go -package=ledgermock

type BillViewQueries interface {
	GetBillsByBillingID(ctx context.Context, dbtx db.DBTX, billingID string) ([]BillRow, error)
	GetBillsByUserID(ctx context.Context, dbtx db.DBTX, userID string) ([]BillRow, error)
	SearchBills(ctx context.Context, dbtx db.DBTX, arg SearchBillsParams) ([]BillRow, error)
}

type BillReadStore struct {
	queries BillViewQueries
	db      db.DBTX
	logger  *slog.Logger
}

func NewBillReadStore(queries BillViewQueries, dbtx db.DBTX, logger *slog.Logger) *BillReadStore {
	return &BillReadStore{
		queries: queries,
		db:      dbtx,
		logger:  logger,
	}
}

func (s *BillReadStore) ByBillingID(ctx context.Context, billingID string) ([]billing.Row, error) {
	rows, err := s.queries.GetBillsByBillingID(ctx, s.db, billingID)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to get bill rows by billing id", err)
	}
	if len(rows) == 0 {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "bill not found", nil)
	}
	return s.convert(rows)
}

func (s *BillReadStore) ByUserID(ctx context.Context, userID string) ([]billing.Row, error) {
	rows, err := s.queries.GetBillsByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to get bill rows by user", err)
	}
	return s.convert(rows)
}

func (s *BillReadStore) Search(ctx context.Context, filter billing.SearchFilter) ([]billing.Row, error) {
	from, to, err := filter.Range()
	if err != nil {
		return nil, err
	}
	rows, err := s.queries.SearchBills(ctx, s.db, SearchBillsParams{
		From:              from,
		To:                to,
		UserID:            pgconv.StringToPgtype(filter.UserID),
		TransactionStatus: pgconv.StringToPgtype(string(filter.Status)),
	})
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to search bill rows", err)
	}
	return s.convert(rows)
}

func (s *BillReadStore) convert(rows []BillRow) ([]billing.Row, error) {
	out, err := toDomainRows(rows)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to decode invoice details", err)
	}
	return out, nil
}
