package queries

import (
	"context"
	"log/slog"

	"travel-kernel/internal/domain/card"
	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/usecase/shared"
)

//go:generate mockgen -source=card.go -destination=../../../tests/mock/queries/card_mock.go -package=queriesmock

type CardQueries interface {
	List(ctx context.Context, actor user.Actor, userID string) ([]*CardView, error)
}

type cardQueriesImpl struct {
	wallets shared.WalletStore
	sealer  shared.Sealer
	logger  *slog.Logger
}

func NewCardQueries(wallets shared.WalletStore, sealer shared.Sealer, logger *slog.Logger) CardQueries {
	return &cardQueriesImpl{wallets: wallets, sealer: sealer, logger: logger}
}

func (q *cardQueriesImpl) List(ctx context.Context, actor user.Actor, userID string) ([]*CardView, error) {
	if !actor.CanActFor(userID) {
		return nil, ErrAccessDenied
	}
	w, err := q.wallets.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*CardView, 0, w.Len())
	for _, c := range w.Cards() {
		if c.Last4 == "" {
			// older records only carry the stored PAN
			pan, err := q.sealer.Reveal(c.CipherPAN)
			if err != nil {
				q.logger.Error("saved card could not be decrypted", "cardId", c.ID)
				continue
			}
			c.Last4 = card.Last4(pan)
		}
		views = append(views, NewCardView(c))
	}
	return views, nil
}
