package store

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/kinderhq/petnames-core/internal/domain"
)

const (
	keyCatalogCached   = "catalog:cached"
	keyCatalogLastSync = "catalog:last_sync"
)

// GetCachedCatalog retrieves the server-synced catalog snapshot.
// Returns (nil, nil) when no cached snapshot exists. A snapshot that exists
// but fails to decode is discarded so the bundled fallback takes over and the
// next sync starts from a clean key.
func (s *Store) GetCachedCatalog(ctx context.Context) (*domain.CatalogSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snapshot domain.CatalogSnapshot
	err := s.get([]byte(keyCatalogCached), &snapshot)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Cached catalog is unreadable, discarding and falling back to bundled", "error", err)
		}
		if delErr := s.delete([]byte(keyCatalogCached)); delErr != nil && s.logger != nil {
			s.logger.Warn("Failed to discard corrupt cached catalog", "error", delErr)
		}
		return nil, nil
	}
	return &snapshot, nil
}

// PutCachedCatalog replaces the cached catalog snapshot wholesale. The write
// is a single synced transaction, so a crash leaves either the old snapshot
// or the new one, never a mix.
func (s *Store) PutCachedCatalog(ctx context.Context, snapshot *domain.CatalogSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set([]byte(keyCatalogCached), snapshot)
}

// DeleteCachedCatalog removes the cached snapshot, reverting queries to the
// bundled catalog.
func (s *Store) DeleteCachedCatalog(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.delete([]byte(keyCatalogCached))
}

// GetLastSyncTime retrieves when the catalog last synced successfully.
// Returns the zero time when no sync has completed, which makes the first
// sync always due.
func (s *Store) GetLastSyncTime(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	var ts time.Time
	err := s.get([]byte(keyCatalogLastSync), &ts)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return ts, nil
}

// PutLastSyncTime records a successful catalog sync.
func (s *Store) PutLastSyncTime(ctx context.Context, ts time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set([]byte(keyCatalogLastSync), ts)
}
