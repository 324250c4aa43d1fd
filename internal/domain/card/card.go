package card

import (
	"strings"
	"time"

	"travel-kernel/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCardNotFound  = errs.Mark(errs.New("saved card not found"), errs.ErrNotFound)
	ErrDuplicateCard = errs.Mark(errs.New("a card with the same last four digits and expiry is already saved"), errs.ErrConflict)
)

// Input is a card as typed by the user. It is never persisted as-is.
type Input struct {
	PAN    string
	Holder string
	Expiry string
	ZIP    string
}

// Validate checks every field and returns the normalised input.
func (p Policy) Validate(in Input, now time.Time) (Input, error) {
	in.PAN = NormalizePAN(in.PAN)
	in.Holder = strings.TrimSpace(in.Holder)
	in.ZIP = strings.TrimSpace(in.ZIP)
	if err := p.ValidatePAN(in.PAN); err != nil {
		return in, err
	}
	if err := ValidateHolder(in.Holder); err != nil {
		return in, err
	}
	exp, err := ValidateExpiry(in.Expiry, now)
	if err != nil {
		return in, err
	}
	in.Expiry = exp.String()
	if err := ValidateZIP(in.ZIP); err != nil {
		return in, err
	}
	return in, nil
}

// Details is the decrypted card handed to the payment step. It stays in
// process memory.
type Details struct {
	PAN    string
	Holder string
	Expiry string
	ZIP    string
}

// SavedCard is one entry of a user's wallet. CipherPAN holds the sealed PAN;
// legacy records may still hold plaintext until their next save.
type SavedCard struct {
	ID        string
	CipherPAN string `json:"-"`
	Holder    string
	Expiry    string
	Last4     string
	ZIP       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSavedCard builds a wallet entry from validated input and its sealed PAN.
func NewSavedCard(in Input, sealedPAN string, now time.Time) SavedCard {
	return SavedCard{
		ID:        uuid.NewString(),
		CipherPAN: sealedPAN,
		Holder:    in.Holder,
		Expiry:    in.Expiry,
		Last4:     Last4(in.PAN),
		ZIP:       in.ZIP,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c SavedCard) Masked() string {
	return Mask(c.Last4)
}

func (c SavedCard) sameIdentity(o SavedCard) bool {
	return c.Last4 == o.Last4 && c.Expiry == o.Expiry
}

// Wallet is the set of saved cards embedded in a user record. Version is used
// for optimistic concurrency when the wallet is written back.
type Wallet struct {
	userID  string
	version int64
	cards   []SavedCard
}

func NewWallet(userID string) *Wallet {
	return &Wallet{userID: userID}
}

func ReconstructWallet(userID string, version int64, cards []SavedCard) *Wallet {
	return &Wallet{userID: userID, version: version, cards: cards}
}

func (w *Wallet) UserID() string       { return w.userID }
func (w *Wallet) Version() int64       { return w.version }
func (w *Wallet) Cards() []SavedCard   { return append([]SavedCard(nil), w.cards...) }
func (w *Wallet) Len() int             { return len(w.cards) }
func (w *Wallet) Card(i int) SavedCard { return w.cards[i] }

func (w *Wallet) Find(cardID string) (SavedCard, error) {
	for _, c := range w.cards {
		if c.ID == cardID {
			return c, nil
		}
	}
	return SavedCard{}, ErrCardNotFound
}

// Add appends a card unless one with the same last4 and expiry is present.
func (w *Wallet) Add(c SavedCard) error {
	for _, existing := range w.cards {
		if existing.sameIdentity(c) {
			return ErrDuplicateCard
		}
	}
	w.cards = append(w.cards, c)
	return nil
}

// Replace swaps the card with the same id, keeping the duplicate rule against
// every other card.
func (w *Wallet) Replace(c SavedCard) error {
	idx := -1
	for i, existing := range w.cards {
		if existing.ID == c.ID {
			idx = i
			continue
		}
		if existing.sameIdentity(c) {
			return ErrDuplicateCard
		}
	}
	if idx < 0 {
		return ErrCardNotFound
	}
	c.CreatedAt = w.cards[idx].CreatedAt
	w.cards[idx] = c
	return nil
}

func (w *Wallet) Remove(cardID string) error {
	for i, c := range w.cards {
		if c.ID == cardID {
			w.cards = append(w.cards[:i], w.cards[i+1:]...)
			return nil
		}
	}
	return ErrCardNotFound
}

// Reseal rewrites every CipherPAN through seal. Already sealed values are
// passed through unchanged by the caller-provided function.
func (w *Wallet) Reseal(seal func(stored string) (string, error)) error {
	for i := range w.cards {
		sealed, err := seal(w.cards[i].CipherPAN)
		if err != nil {
			return err
		}
		w.cards[i].CipherPAN = sealed
	}
	return nil
}
