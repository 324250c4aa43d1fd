//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"travel-kernel/internal/domain/card"
	"travel-kernel/internal/pkg/ptr"
	"travel-kernel/internal/pkg/vault"
	"travel-kernel/internal/usecase/commands"
	"travel-kernel/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addVisa(t *testing.T, h *harness) *queries.CardView {
	t.Helper()
	v, err := h.cards.Add(context.Background(), traveller, commands.AddCardRequest{
		UserID:     "user-1",
		CardNumber: "4111-1111-1111-1111",
		CardHolder: "  Ada Lovelace ",
		ExpiryDate: "12/27",
		ZipCode:    "94102",
	})
	require.NoError(t, err)
	return v
}

func TestCardUseCase_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the PAN sealed and returns it masked", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		v := addVisa(t, h)
		assert.Equal(t, "****-****-****-1111", v.CardNumber)
		assert.Equal(t, "Ada Lovelace", v.CardHolder)

		stored := h.wallets.Stored("user-1")
		require.Len(t, stored, 1)
		assert.True(t, vault.IsSealed(stored[0].CipherPAN))
		assert.NotContains(t, stored[0].CipherPAN, "4111111111111111")

		pan, err := h.cipher.Open(stored[0].CipherPAN)
		require.NoError(t, err)
		assert.Equal(t, "4111111111111111", pan)
	})

	t.Run("duplicate last four and expiry", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		addVisa(t, h)
		_, err := h.cards.Add(ctx, traveller, commands.AddCardRequest{
			UserID: "user-1", CardNumber: "4111111111111111", CardHolder: "Ada", ExpiryDate: "12/27",
		})
		assert.ErrorIs(t, err, card.ErrDuplicateCard)
	})

	t.Run("other user's wallet", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		_, err := h.cards.Add(ctx, other, commands.AddCardRequest{UserID: "user-1", CardNumber: "4111111111111111", CardHolder: "Ada", ExpiryDate: "12/27"})
		assert.ErrorIs(t, err, commands.ErrNotOwner)
	})

	t.Run("admin may act for a user", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		_, err := h.cards.Add(ctx, admin, commands.AddCardRequest{UserID: "user-1", CardNumber: "4111111111111111", CardHolder: "Ada", ExpiryDate: "12/27"})
		assert.NoError(t, err)
	})

	t.Run("invalid fields", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		tests := []struct {
			name string
			req  commands.AddCardRequest
			want error
		}{
			{"checksum", commands.AddCardRequest{CardNumber: "4111111111111112", CardHolder: "Ada", ExpiryDate: "12/27"}, card.ErrPANChecksum},
			{"expired", commands.AddCardRequest{CardNumber: "4111111111111111", CardHolder: "Ada", ExpiryDate: "10/24"}, card.ErrExpired},
			{"zip", commands.AddCardRequest{CardNumber: "4111111111111111", CardHolder: "Ada", ExpiryDate: "12/27", ZipCode: "941"}, card.ErrZIPFormat},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tt.req.UserID = "user-1"
				_, err := h.cards.Add(ctx, traveller, tt.req)
				assert.ErrorIs(t, err, tt.want)
			})
		}
		assert.Empty(t, h.wallets.Stored("user-1"))
	})

	t.Run("retries concurrent wallet writes", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		h.wallets.SaveConflicts = 2
		addVisa(t, h)
		assert.Len(t, h.wallets.Stored("user-1"), 1)
	})

	t.Run("gives up after repeated conflicts", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		h.wallets.SaveConflicts = 3
		_, err := h.cards.Add(ctx, traveller, commands.AddCardRequest{UserID: "user-1", CardNumber: "4111111111111111", CardHolder: "Ada", ExpiryDate: "12/27"})
		require.Error(t, err)
		assert.Empty(t, h.wallets.Stored("user-1"))
	})
}

func TestCardUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps the PAN when only the holder changes", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		v := addVisa(t, h)

		updated, err := h.cards.Update(ctx, traveller, commands.UpdateCardRequest{
			UserID:     "user-1",
			CardID:     v.CardID,
			CardHolder: ptr.Of("Augusta Ada King"),
		})
		require.NoError(t, err)
		assert.Equal(t, v.CardID, updated.CardID)
		assert.Equal(t, "Augusta Ada King", updated.CardHolder)
		assert.Equal(t, "94102", updated.ZipCode)

		details, err := h.cards.ForPayment(ctx, "user-1", v.CardID)
		require.NoError(t, err)
		assert.Equal(t, "4111111111111111", details.PAN)
	})

	t.Run("replaces the PAN", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		v := addVisa(t, h)
		updated, err := h.cards.Update(ctx, traveller, commands.UpdateCardRequest{
			UserID: "user-1", CardID: v.CardID, CardNumber: ptr.Of("5555555555554444"),
		})
		require.NoError(t, err)
		assert.Equal(t, "****-****-****-4444", updated.CardNumber)
	})

	t.Run("unknown card", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		_, err := h.cards.Update(ctx, traveller, commands.UpdateCardRequest{UserID: "user-1", CardID: "missing", CardHolder: ptr.Of("Ada")})
		assert.ErrorIs(t, err, card.ErrCardNotFound)
	})

	t.Run("card id required", func(t *testing.T) {
		h := newHarness(t, card.Policy{})
		_, err := h.cards.Update(ctx, traveller, commands.UpdateCardRequest{UserID: "user-1"})
		assert.ErrorIs(t, err, card.ErrCardIDRequired)
	})
}

func TestCardUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, card.Policy{})
	v := addVisa(t, h)

	assert.ErrorIs(t, h.cards.Delete(ctx, other, "user-1", v.CardID), commands.ErrNotOwner)
	require.NoError(t, h.cards.Delete(ctx, traveller, "user-1", v.CardID))
	assert.Empty(t, h.wallets.Stored("user-1"))
	assert.ErrorIs(t, h.cards.Delete(ctx, traveller, "user-1", v.CardID), card.ErrCardNotFound)
}

func TestCardUseCase_LegacyPlaintext(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, card.Policy{})
	h.wallets.Put("user-1", card.SavedCard{
		ID:        "legacy-1",
		CipherPAN: "378282246310005",
		Holder:    "Old Record",
		Expiry:    "11/29",
		ZIP:       "10001",
	})

	cards := queries.NewCardQueries(h.wallets, h.cipher, slog.New(slog.NewTextHandler(io.Discard, nil)))
	views, err := cards.List(ctx, traveller, "user-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "****-****-****-0005", views[0].CardNumber)

	details, err := h.cards.ForPayment(ctx, "user-1", "legacy-1")
	require.NoError(t, err)
	assert.Equal(t, "378282246310005", details.PAN)

	// any wallet write seals plaintext entries
	addVisa(t, h)
	for _, c := range h.wallets.Stored("user-1") {
		assert.True(t, vault.IsSealed(c.CipherPAN), c.ID)
	}
	details, err = h.cards.ForPayment(ctx, "user-1", "legacy-1")
	require.NoError(t, err)
	assert.Equal(t, "378282246310005", details.PAN)
}

func TestCardUseCase_UnreadableCard(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, card.Policy{})
	v := addVisa(t, h)

	foreign, err := vault.New("another-secret")
	require.NoError(t, err)
	sealed, err := foreign.Seal("5555555555554444")
	require.NoError(t, err)
	h.wallets.Put("user-1", card.SavedCard{ID: "foreign-1", CipherPAN: sealed, Holder: "Ada", Expiry: "01/28"})

	_, err = h.cards.ForPayment(ctx, "user-1", "foreign-1")
	require.ErrorIs(t, err, commands.ErrCardUnreadable)
	assert.False(t, strings.Contains(err.Error(), "5555"))

	cards := queries.NewCardQueries(h.wallets, h.cipher, slog.New(slog.NewTextHandler(io.Discard, nil)))
	views, err := cards.List(ctx, traveller, "user-1")
	require.NoError(t, err)
	require.Len(t, views, 1, "undecryptable card without last four is skipped")
	assert.Equal(t, v.CardID, views[0].CardID)
}
