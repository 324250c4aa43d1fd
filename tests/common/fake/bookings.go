//go:build unit || e2e

// Package fake holds in-memory stand-ins for the stores, used to drive use
// case tests without Mongo or Postgres.
package fake

import (
	"context"
	"sort"
	"sync"
	"time"

	"travel-kernel/internal/domain/booking"
	"travel-kernel/internal/infra"
	"travel-kernel/internal/usecase/shared"
)

// BookingStore serialises every transaction behind one mutex and applies a
// transaction's writes only when its callback succeeds.
type BookingStore struct {
	mu   sync.Mutex
	docs map[string]*booking.Booking

	// UpdateHook, when set, runs before each transactional update and may
	// fail it.
	UpdateHook func(b *booking.Booking, from booking.Status) error
}

func NewBookingStore() *BookingStore {
	return &BookingStore{docs: map[string]*booking.Booking{}}
}

// Seed stores bookings directly, bypassing transactions.
func (s *BookingStore) Seed(bs ...*booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range bs {
		s.docs[b.ID()] = clone(b)
	}
}

// Get returns a copy of the stored booking or nil.
func (s *BookingStore) Get(id string) *booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.docs[id]; ok {
		return clone(b)
	}
	return nil
}

func (s *BookingStore) All() []*booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sorted(s.docs, func(*booking.Booking) bool { return true })
}

func (s *BookingStore) Hold(ctx context.Context, _ shared.InventoryKey, fn func(ctx context.Context, tx shared.BookingTx) error) error {
	return s.Within(ctx, fn)
}

func (s *BookingStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.BookingTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make(map[string]*booking.Booking, len(s.docs))
	for id, b := range s.docs {
		staged[id] = b
	}
	tx := &bookingTx{store: s, docs: staged}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.docs = staged
	return nil
}

func (s *BookingStore) Active(_ context.Context, listingID string, from, to time.Time) ([]*booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return active(s.docs, listingID, from, to), nil
}

func (s *BookingStore) FindByID(_ context.Context, id string) (*booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return byID(s.docs, id)
}

func (s *BookingStore) FindByIDs(_ context.Context, ids []string) ([]*booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return byIDs(s.docs, ids), nil
}

func (s *BookingStore) ListByUser(_ context.Context, userID string, filter shared.BookingFilter) ([]*booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := sorted(s.docs, func(b *booking.Booking) bool {
		return b.UserID() == userID &&
			(filter.Status == "" || b.Status() == filter.Status) &&
			(filter.BillingID == "" || b.BillingID() == filter.BillingID)
	})
	// newest first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

type bookingTx struct {
	store *BookingStore
	docs  map[string]*booking.Booking
}

func (t *bookingTx) Active(_ context.Context, listingID string, from, to time.Time) ([]*booking.Booking, error) {
	return active(t.docs, listingID, from, to), nil
}

func (t *bookingTx) FindByID(_ context.Context, id string) (*booking.Booking, error) {
	return byID(t.docs, id)
}

func (t *bookingTx) FindByIDs(_ context.Context, ids []string) ([]*booking.Booking, error) {
	return byIDs(t.docs, ids), nil
}

func (t *bookingTx) FindByBillingID(_ context.Context, billingID string) ([]*booking.Booking, error) {
	return sorted(t.docs, func(b *booking.Booking) bool { return b.BillingID() == billingID }), nil
}

func (t *bookingTx) Insert(_ context.Context, b *booking.Booking) error {
	if _, ok := t.docs[b.ID()]; ok {
		return infra.RepositoryError{Kind: infra.KindDuplicateKey}
	}
	t.docs[b.ID()] = clone(b)
	return nil
}

func (t *bookingTx) Update(_ context.Context, b *booking.Booking, from booking.Status) error {
	if t.store.UpdateHook != nil {
		if err := t.store.UpdateHook(b, from); err != nil {
			return err
		}
	}
	cur, ok := t.docs[b.ID()]
	if !ok || cur.Status() != from {
		return infra.RepositoryError{Kind: infra.KindWriteConflict}
	}
	t.docs[b.ID()] = clone(b)
	return nil
}

func (t *bookingTx) Stale(_ context.Context, cutoff time.Time, scope shared.StaleScope) ([]*booking.Booking, error) {
	return sorted(t.docs, func(b *booking.Booking) bool {
		return b.Status() == booking.StatusPending &&
			!b.CreatedAt().After(cutoff) &&
			(scope.UserID == "" || b.UserID() == scope.UserID) &&
			(scope.ListingID == "" || b.ListingID() == scope.ListingID)
	}), nil
}

func active(docs map[string]*booking.Booking, listingID string, from, to time.Time) []*booking.Booking {
	return sorted(docs, func(b *booking.Booking) bool {
		if b.ListingID() != listingID || !b.Status().HoldsInventory() {
			return false
		}
		d := b.Dates()
		if d.TravelDate != nil {
			return !d.TravelDate.Before(from) && !d.TravelDate.After(to)
		}
		return d.CheckIn != nil && d.CheckOut != nil && !d.CheckIn.After(to) && !d.CheckOut.Before(from)
	})
}

func byID(docs map[string]*booking.Booking, id string) (*booking.Booking, error) {
	b, ok := docs[id]
	if !ok {
		return nil, infra.RepositoryError{Kind: infra.KindNotFound}
	}
	return clone(b), nil
}

func byIDs(docs map[string]*booking.Booking, ids []string) []*booking.Booking {
	out := make([]*booking.Booking, 0, len(ids))
	for _, id := range ids {
		if b, ok := docs[id]; ok {
			out = append(out, clone(b))
		}
	}
	return out
}

// sorted returns matching copies ordered by creation time, then id.
func sorted(docs map[string]*booking.Booking, match func(*booking.Booking) bool) []*booking.Booking {
	out := []*booking.Booking{}
	for _, b := range docs {
		if match(b) {
			out = append(out, clone(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().Before(out[j].CreatedAt())
		}
		return out[i].ID() < out[j].ID()
	})
	return out
}

func clone(b *booking.Booking) *booking.Booking {
	return booking.ReconstructBooking(
		b.ID(), b.UserID(), b.ListingID(), b.Variant(), b.Quantity(), b.SubType(), b.Dates(),
		b.TotalAmount(), b.Status(), b.BillingID(), b.CheckoutID(),
		b.CreatedAt(), b.UpdatedAt(),
	)
}
