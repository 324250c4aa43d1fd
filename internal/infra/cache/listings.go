package cache

import (
	"context"
	"log/slog"

	"travel-kernel/internal/domain/listing"
	"travel-kernel/internal/usecase/shared"
)

// ListingReader serves listing snapshots from the view cache before asking
// the listing collaborator.
type ListingReader struct {
	next   shared.ListingReader
	cache  shared.ViewCache
	logger *slog.Logger
}

func NewListingReader(next shared.ListingReader, cache shared.ViewCache, logger *slog.Logger) *ListingReader {
	return &ListingReader{next: next, cache: cache, logger: logger}
}

func (r *ListingReader) Get(ctx context.Context, variant listing.Variant, id string) (*listing.Listing, error) {
	scope := shared.ListingScope(id)
	key := "snapshot:" + string(variant)

	var cached listing.Listing
	gen, hit, cacheErr := r.cache.Get(ctx, scope, key, &cached)
	if cacheErr != nil {
		r.logger.Warn("listing cache read failed", "listing_id", id, "error", cacheErr.Error())
	}
	if hit {
		return &cached, nil
	}

	l, err := r.next.Get(ctx, variant, id)
	if err != nil {
		return nil, err
	}
	if cacheErr != nil {
		return l, nil
	}
	if err := r.cache.Set(ctx, scope, key, gen, l); err != nil {
		r.logger.Warn("listing cache write failed", "listing_id", id, "error", err.Error())
	}
	return l, nil
}
