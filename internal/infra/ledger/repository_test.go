//go:build unit

package ledger_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"travel-kernel/internal/domain/billing"
	"travel-kernel/internal/domain/listing"
	"travel-kernel/internal/infra"
	"travel-kernel/internal/infra/db"
	"travel-kernel/internal/infra/ledger"
	ledgermock "travel-kernel/tests/mock/ledger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sampleRows() []billing.Row {
	at := time.Date(2024, 11, 20, 10, 5, 0, 0, time.UTC)
	invoice := billing.InvoiceDetails{
		CardHolder:  "Ada Lovelace",
		MaskedCard:  "****-****-****-1111",
		Expiry:      "12/30",
		ZipCode:     "94102",
		ListingID:   "hotel-1",
		Variant:     listing.VariantHotel,
		SubType:     "Standard",
		Quantity:    1,
		TotalAmount: 24000,
	}
	return []billing.Row{
		{BillingID: "bill-1", BookingID: "b-1", UserID: "user-1", Variant: listing.VariantHotel, CheckoutID: "co-1",
			TransactionDate: at, AmountCents: 24000, PaymentMethod: billing.PaymentMethodCard, Status: billing.StatusCompleted, Invoice: invoice},
		{BillingID: "bill-1", BookingID: "b-2", UserID: "user-1", Variant: listing.VariantHotel, CheckoutID: "co-1",
			TransactionDate: at, AmountCents: 24000, PaymentMethod: billing.PaymentMethodCard, Status: billing.StatusCompleted, Invoice: invoice},
	}
}

// =============================================================================
// Insert
// =============================================================================

func TestBillRepository_Insert(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		setupMock  func(*ledgermock.MockBillWriteQueries, *mockDBTX)
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "success: every row is written on the given tx",
			setupMock: func(mock *ledgermock.MockBillWriteQueries, tx *mockDBTX) {
				gomock.InOrder(
					mock.EXPECT().InsertBill(ctx, tx, gomock.Any()).DoAndReturn(
						func(_ context.Context, _ db.DBTX, arg ledger.InsertBillParams) error {
							assert.Equal(t, "b-1", arg.BookingID)
							assert.Equal(t, "hotel", arg.BookingType)
							assert.Equal(t, "Completed", arg.TransactionStatus)
							assert.True(t, arg.CheckoutID.Valid)
							var invoice billing.InvoiceDetails
							require.NoError(t, json.Unmarshal(arg.InvoiceDetails, &invoice))
							assert.Equal(t, "****-****-****-1111", invoice.MaskedCard)
							return nil
						}),
					mock.EXPECT().InsertBill(ctx, tx, gomock.Any()).Return(nil),
				)
			},
		},
		{
			name: "error: duplicate row",
			setupMock: func(mock *ledgermock.MockBillWriteQueries, tx *mockDBTX) {
				dup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
				mock.EXPECT().InsertBill(ctx, tx, gomock.Any()).Return(dup)
			},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name: "error: second row fails after the first",
			setupMock: func(mock *ledgermock.MockBillWriteQueries, tx *mockDBTX) {
				gomock.InOrder(
					mock.EXPECT().InsertBill(ctx, tx, gomock.Any()).Return(nil),
					mock.EXPECT().InsertBill(ctx, tx, gomock.Any()).Return(errors.New("connection reset")),
				)
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := ledgermock.NewMockBillWriteQueries(ctrl)
			tx := &mockDBTX{}
			tc.setupMock(mockQueries, tx)

			repo := ledger.NewBillRepository(mockQueries, discardLogger())
			err := repo.Insert(ctx, tx, sampleRows())

			if tc.expectKind == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind %s, got %v", tc.expectKind, err)
		})
	}
}

// =============================================================================
// MarkFailed
// =============================================================================

func TestBillRepository_MarkFailed(t *testing.T) {
	ctx := context.Background()

	t.Run("success: reports affected rows", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := ledgermock.NewMockBillWriteQueries(ctrl)
		tx := &mockDBTX{}
		mockQueries.EXPECT().MarkBillsFailed(ctx, tx, "bill-1").Return(int64(2), nil)

		n, err := ledger.NewBillRepository(mockQueries, discardLogger()).MarkFailed(ctx, tx, "bill-1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("success: replay touches nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := ledgermock.NewMockBillWriteQueries(ctrl)
		tx := &mockDBTX{}
		mockQueries.EXPECT().MarkBillsFailed(ctx, tx, "bill-1").Return(int64(0), nil)

		n, err := ledger.NewBillRepository(mockQueries, discardLogger()).MarkFailed(ctx, tx, "bill-1")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("error: database failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := ledgermock.NewMockBillWriteQueries(ctrl)
		tx := &mockDBTX{}
		mockQueries.EXPECT().MarkBillsFailed(ctx, tx, "bill-1").Return(int64(0), errors.New("timeout"))

		_, err := ledger.NewBillRepository(mockQueries, discardLogger()).MarkFailed(ctx, tx, "bill-1")
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use the ledger query mock instead.")
}
