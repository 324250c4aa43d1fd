//go:build unit || e2e

package fake

import (
	"context"
	"encoding/json"
	"sync"

	"travel-kernel/internal/domain/card"
	"travel-kernel/internal/domain/listing"
	"travel-kernel/internal/infra"
	"travel-kernel/internal/usecase/shared"
)

type Listings struct {
	byID map[string]*listing.Listing
}

func NewListings(ls ...*listing.Listing) *Listings {
	m := make(map[string]*listing.Listing, len(ls))
	for _, l := range ls {
		m[l.ID] = l
	}
	return &Listings{byID: m}
}

func (f *Listings) Get(_ context.Context, variant listing.Variant, id string) (*listing.Listing, error) {
	l, ok := f.byID[id]
	if !ok || l.Variant != variant {
		return nil, listing.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

// Wallets keeps one versioned wallet per user.
type Wallets struct {
	mu      sync.Mutex
	cards   map[string][]card.SavedCard
	version map[string]int64

	// SaveConflicts makes the next n saves fail with a write conflict.
	SaveConflicts int
}

func NewWallets(userIDs ...string) *Wallets {
	w := &Wallets{cards: map[string][]card.SavedCard{}, version: map[string]int64{}}
	for _, id := range userIDs {
		w.cards[id] = nil
	}
	return w
}

// Put stores cards as-is, for seeding legacy records.
func (w *Wallets) Put(userID string, cards ...card.SavedCard) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cards[userID] = append(w.cards[userID], cards...)
}

func (w *Wallets) Stored(userID string) []card.SavedCard {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]card.SavedCard(nil), w.cards[userID]...)
}

func (w *Wallets) Load(_ context.Context, userID string) (*card.Wallet, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	cards, ok := w.cards[userID]
	if !ok {
		return nil, infra.RepositoryError{Kind: infra.KindNotFound}
	}
	return card.ReconstructWallet(userID, w.version[userID], append([]card.SavedCard(nil), cards...)), nil
}

func (w *Wallets) Save(_ context.Context, wallet *card.Wallet) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.SaveConflicts > 0 {
		w.SaveConflicts--
		return infra.RepositoryError{Kind: infra.KindWriteConflict}
	}
	if w.version[wallet.UserID()] != wallet.Version() {
		return infra.RepositoryError{Kind: infra.KindWriteConflict}
	}
	w.cards[wallet.UserID()] = wallet.Cards()
	w.version[wallet.UserID()]++
	return nil
}

// Cache is a map-backed view cache that records invalidated scopes. Like the
// redis cache it versions scopes, so a write carrying a generation older than
// the scope's current one is dropped.
type Cache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	gens        map[string]shared.Generation
	Invalidated []string
}

func NewCache() *Cache {
	return &Cache{entries: map[string][]byte{}, gens: map[string]shared.Generation{}}
}

func (c *Cache) Get(_ context.Context, scope, key string, dst any) (shared.Generation, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.gens[scope]
	raw, ok := c.entries[scope+"|"+key]
	if !ok {
		return gen, false, nil
	}
	return gen, true, json.Unmarshal(raw, dst)
}

func (c *Cache) Set(_ context.Context, scope, key string, gen shared.Generation, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gens[scope] {
		return nil
	}
	c.entries[scope+"|"+key] = raw
	return nil
}

func (c *Cache) Invalidate(_ context.Context, scopes ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range scopes {
		c.gens[s]++
		for k := range c.entries {
			if len(k) > len(s) && k[:len(s)+1] == s+"|" {
				delete(c.entries, k)
			}
		}
	}
	c.Invalidated = append(c.Invalidated, scopes...)
	return nil
}

func (c *Cache) WasInvalidated(scope string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.Invalidated {
		if s == scope {
			return true
		}
	}
	return false
}

// Events records every published event.
type Events struct {
	mu       sync.Mutex
	Bookings []shared.BookingEvent
	Searches []shared.SearchEvent
}

func (e *Events) PublishBooking(_ context.Context, events ...shared.BookingEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Bookings = append(e.Bookings, events...)
}

func (e *Events) PublishSearch(_ context.Context, event shared.SearchEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Searches = append(e.Searches, event)
}

func (e *Events) Types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.Bookings))
	for _, ev := range e.Bookings {
		out = append(out, ev.Type)
	}
	return out
}
