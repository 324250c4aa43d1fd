package commands

import (
	"context"
	"log/slog"
	"strings"

	"travel-kernel/internal/domain/card"
	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/infra"
	"travel-kernel/internal/pkg/clock"
	"travel-kernel/internal/pkg/vault"
	"travel-kernel/internal/usecase/queries"
	"travel-kernel/internal/usecase/shared"
)

// walletSaveAttempts bounds optimistic retries when two requests edit the
// same wallet.
const walletSaveAttempts = 3

type AddCardRequest struct {
	UserID     string
	CardNumber string
	CardHolder string
	ExpiryDate string
	ZipCode    string
}

// UpdateCardRequest leaves nil fields unchanged.
type UpdateCardRequest struct {
	UserID     string
	CardID     string
	CardNumber *string
	CardHolder *string
	ExpiryDate *string
	ZipCode    *string
}

//go:generate mockgen -source=card.go -destination=../../../tests/mock/commands/card_mock.go -package=commandsmock

type CardCommands interface {
	Add(ctx context.Context, actor user.Actor, req AddCardRequest) (*queries.CardView, error)
	Update(ctx context.Context, actor user.Actor, req UpdateCardRequest) (*queries.CardView, error)
	Delete(ctx context.Context, actor user.Actor, userID, cardID string) error
	// ForPayment decrypts a saved card for the payment step. The result must
	// never be returned to a client.
	ForPayment(ctx context.Context, userID, cardID string) (card.Details, error)
}

type cardUseCaseImpl struct {
	wallets shared.WalletStore
	sealer  shared.Sealer
	policy  card.Policy
	clock   clock.Clock
	logger  *slog.Logger
}

func NewCardUseCase(wallets shared.WalletStore, sealer shared.Sealer, policy card.Policy, clk clock.Clock, logger *slog.Logger) CardCommands {
	return &cardUseCaseImpl{
		wallets: wallets,
		sealer:  sealer,
		policy:  policy,
		clock:   clk,
		logger:  logger,
	}
}

func (uc *cardUseCaseImpl) Add(ctx context.Context, actor user.Actor, req AddCardRequest) (*queries.CardView, error) {
	if !actor.CanActFor(req.UserID) {
		return nil, ErrNotOwner
	}
	now := uc.clock.Now()
	in, err := uc.policy.Validate(card.Input{
		PAN:    req.CardNumber,
		Holder: req.CardHolder,
		Expiry: req.ExpiryDate,
		ZIP:    req.ZipCode,
	}, now)
	if err != nil {
		return nil, err
	}
	sealed, err := uc.sealer.Seal(in.PAN)
	if err != nil {
		return nil, err
	}

	saved := card.NewSavedCard(in, sealed, now)
	err = uc.mutateWallet(ctx, req.UserID, func(w *card.Wallet) error {
		return w.Add(saved)
	})
	if err != nil {
		return nil, err
	}
	return queries.NewCardView(saved), nil
}

func (uc *cardUseCaseImpl) Update(ctx context.Context, actor user.Actor, req UpdateCardRequest) (*queries.CardView, error) {
	if !actor.CanActFor(req.UserID) {
		return nil, ErrNotOwner
	}
	if strings.TrimSpace(req.CardID) == "" {
		return nil, card.ErrCardIDRequired
	}
	now := uc.clock.Now()

	var updated card.SavedCard
	err := uc.mutateWallet(ctx, req.UserID, func(w *card.Wallet) error {
		current, err := w.Find(req.CardID)
		if err != nil {
			return err
		}
		pan := ""
		if req.CardNumber == nil {
			if pan, err = uc.reveal(current); err != nil {
				return err
			}
		}
		in, err := uc.policy.Validate(card.Input{
			PAN:    orCurrent(req.CardNumber, pan),
			Holder: orCurrent(req.CardHolder, current.Holder),
			Expiry: orCurrent(req.ExpiryDate, current.Expiry),
			ZIP:    orCurrent(req.ZipCode, current.ZIP),
		}, now)
		if err != nil {
			return err
		}
		sealed, err := uc.sealer.Seal(in.PAN)
		if err != nil {
			return err
		}
		next := card.NewSavedCard(in, sealed, now)
		next.ID = current.ID
		if err := w.Replace(next); err != nil {
			return err
		}
		updated, _ = w.Find(current.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return queries.NewCardView(updated), nil
}

func (uc *cardUseCaseImpl) Delete(ctx context.Context, actor user.Actor, userID, cardID string) error {
	if !actor.CanActFor(userID) {
		return ErrNotOwner
	}
	if strings.TrimSpace(cardID) == "" {
		return card.ErrCardIDRequired
	}
	return uc.mutateWallet(ctx, userID, func(w *card.Wallet) error {
		return w.Remove(cardID)
	})
}

func (uc *cardUseCaseImpl) ForPayment(ctx context.Context, userID, cardID string) (card.Details, error) {
	if strings.TrimSpace(cardID) == "" {
		return card.Details{}, card.ErrCardIDRequired
	}
	w, err := uc.wallets.Load(ctx, userID)
	if err != nil {
		return card.Details{}, err
	}
	saved, err := w.Find(cardID)
	if err != nil {
		return card.Details{}, err
	}
	pan, err := uc.reveal(saved)
	if err != nil {
		return card.Details{}, err
	}
	return card.Details{
		PAN:    pan,
		Holder: saved.Holder,
		Expiry: saved.Expiry,
		ZIP:    saved.ZIP,
	}, nil
}

func (uc *cardUseCaseImpl) reveal(c card.SavedCard) (string, error) {
	pan, err := uc.sealer.Reveal(c.CipherPAN)
	if err != nil {
		uc.logger.Error("saved card could not be decrypted", "cardId", c.ID)
		return "", ErrCardUnreadable
	}
	return pan, nil
}

// mutateWallet loads the wallet, applies fn and saves it back, sealing any
// legacy plaintext entries on the way. A concurrent save restarts the cycle.
func (uc *cardUseCaseImpl) mutateWallet(ctx context.Context, userID string, fn func(w *card.Wallet) error) error {
	var err error
	for attempt := 1; attempt <= walletSaveAttempts; attempt++ {
		var w *card.Wallet
		if w, err = uc.wallets.Load(ctx, userID); err != nil {
			return err
		}
		if err = fn(w); err != nil {
			return err
		}
		if err = w.Reseal(uc.sealLegacy); err != nil {
			return err
		}
		if err = uc.wallets.Save(ctx, w); err == nil {
			return nil
		}
		if !infra.IsKind(err, infra.KindWriteConflict) {
			return err
		}
		uc.logger.Info("wallet changed concurrently, retrying", "userId", userID, "attempt", attempt)
	}
	return err
}

// orCurrent resolves a partial update field against the stored value.
func orCurrent(field *string, current string) string {
	if field != nil {
		return *field
	}
	return current
}

func (uc *cardUseCaseImpl) sealLegacy(stored string) (string, error) {
	if vault.IsSealed(stored) {
		return stored, nil
	}
	return uc.sealer.Seal(stored)
}
