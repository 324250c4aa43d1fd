package components

import (
	"log/slog"

	"travel-kernel/internal/infra/cache"
	"travel-kernel/internal/infra/db"
	"travel-kernel/internal/infra/docstore"
	"travel-kernel/internal/infra/ledger"
	"travel-kernel/internal/infra/uow"
	"travel-kernel/internal/pkg/config"
	"travel-kernel/internal/pkg/vault"
	"travel-kernel/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	ledgerModule,
	docstoreModule,
	vaultModule,
)

var ledgerModule = fx.Module("persistence/ledger",
	fx.Provide(
		ledger.NewQueries,
		NewDBTX,
		func(q *ledger.Queries) ledger.BillViewQueries { return q },
		fx.Annotate(
			ledger.NewBillReadStore,
			fx.As(new(shared.BillReader)),
		),
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(fx.Self()),
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

var docstoreModule = fx.Module("persistence/docstore",
	fx.Provide(
		fx.Annotate(
			docstore.NewBookingStore,
			fx.As(new(shared.BookingStore)),
		),
		fx.Annotate(
			docstore.NewWalletStore,
			fx.As(new(shared.WalletStore)),
		),
		docstore.NewListingStore,
		NewListingReader,
	),
)

var vaultModule = fx.Module("persistence/vault",
	fx.Provide(
		NewSealer,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// NewListingReader puts the view cache in front of the listing catalog.
func NewListingReader(store *docstore.ListingStore, views shared.ViewCache, logger *slog.Logger) shared.ListingReader {
	return cache.NewListingReader(store, views, logger)
}

func NewSealer(cfg config.Config) (shared.Sealer, error) {
	cipher, err := vault.New(cfg.Vault.Secret)
	if err != nil {
		return nil, err
	}
	return cipher, nil
}
