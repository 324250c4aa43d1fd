package shared

import (
	"context"

	"travel-kernel/internal/domain/card"
)

// WalletStore loads and saves the saved-card array embedded in a user record.
type WalletStore interface {
	Load(ctx context.Context, userID string) (*card.Wallet, error)
	// Save fails with a conflict when the stored wallet version moved since Load.
	Save(ctx context.Context, w *card.Wallet) error
}

// Sealer is the card cipher as seen by use cases.
type Sealer interface {
	Seal(plaintext string) (string, error)
	Reveal(stored string) (string, error)
}
