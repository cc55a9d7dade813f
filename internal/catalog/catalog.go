// Package catalog owns the two catalog snapshots: the immutable bundled
// document shipped with the app and the server-synced cache that overrides it.
package catalog

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/kinderhq/petnames-core/internal/domain"
	apperrors "github.com/kinderhq/petnames-core/internal/errors"
	"github.com/kinderhq/petnames-core/internal/store"
)

// Service resolves which catalog snapshot is authoritative. The bundled
// snapshot is loaded once at startup and never mutated; the cached snapshot
// lives in the store and is replaced wholesale by sync.
type Service struct {
	logger      *slog.Logger
	store       *store.Store
	bundledPath string

	mu      sync.RWMutex
	bundled *domain.CatalogSnapshot
}

// New loads and validates the bundled catalog document. A missing or corrupt
// bundled document is a startup failure; there is nothing to serve without it.
func New(logger *slog.Logger, st *store.Store, bundledPath string) (*Service, error) {
	bundled, err := LoadBundled(bundledPath)
	if err != nil {
		return nil, err
	}

	logger.Info("Bundled catalog loaded",
		"path", bundledPath,
		"version", bundled.Version,
		"sets", len(bundled.NameSets),
		"entries", bundled.EntryCount())

	return &Service{
		logger:      logger,
		store:       st,
		bundledPath: bundledPath,
		bundled:     bundled,
	}, nil
}

// LoadBundled reads and validates a catalog document from disk.
func LoadBundled(path string) (*domain.CatalogSnapshot, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- Catalog path comes from config
	if err != nil {
		return nil, fmt.Errorf("read bundled catalog: %w", err)
	}

	var snapshot domain.CatalogSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse bundled catalog: %w", err)
	}

	if err := Validate(&snapshot); err != nil {
		return nil, fmt.Errorf("invalid bundled catalog: %w", err)
	}

	return &snapshot, nil
}

// Validate checks the structural invariants every snapshot must hold.
func Validate(snapshot *domain.CatalogSnapshot) error {
	if snapshot.Version < 1 {
		return apperrors.Validationf("catalog version must be at least 1, got %d", snapshot.Version)
	}
	if len(snapshot.NameSets) == 0 {
		return apperrors.Validation("catalog has no name sets")
	}
	for _, set := range snapshot.NameSets {
		if set.Slug == "" {
			return apperrors.Validationf("catalog set %q has no slug", set.Title)
		}
	}
	return nil
}

// Bundled returns the current bundled snapshot.
func (s *Service) Bundled() *domain.CatalogSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundled
}

// ReloadBundled re-reads the bundled document from disk. Used by the
// development file watcher; a document that fails validation is ignored and
// the previous snapshot keeps serving.
func (s *Service) ReloadBundled() error {
	bundled, err := LoadBundled(s.bundledPath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.bundled = bundled
	s.mu.Unlock()

	s.logger.Info("Bundled catalog reloaded",
		"version", bundled.Version,
		"sets", len(bundled.NameSets),
		"entries", bundled.EntryCount())
	return nil
}

// Authoritative returns the snapshot that should serve queries: the cached
// one when present and readable, the bundled one otherwise.
func (s *Service) Authoritative(ctx context.Context) (*domain.CatalogSnapshot, domain.CatalogSource, error) {
	cached, err := s.store.GetCachedCatalog(ctx)
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.CodeInternal, "load cached catalog")
	}
	if cached != nil {
		return cached, domain.SourceCached, nil
	}
	return s.Bundled(), domain.SourceBundled, nil
}

// Replace installs a new cached snapshot. The incoming version must be
// strictly greater than the current authoritative version; sync constructs
// snapshots that way and anything else indicates a replay or a bug.
func (s *Service) Replace(ctx context.Context, snapshot *domain.CatalogSnapshot) error {
	if err := Validate(snapshot); err != nil {
		return err
	}

	current, _, err := s.Authoritative(ctx)
	if err != nil {
		return err
	}
	if snapshot.Version <= current.Version {
		return apperrors.Conflict(fmt.Sprintf(
			"catalog version %d does not advance current version %d",
			snapshot.Version, current.Version))
	}

	if err := s.store.PutCachedCatalog(ctx, snapshot); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "persist cached catalog")
	}

	s.logger.Info("Cached catalog replaced",
		"version", snapshot.Version,
		"sets", len(snapshot.NameSets),
		"entries", snapshot.EntryCount())
	return nil
}

// ClearCache drops the cached snapshot, reverting to the bundled catalog.
func (s *Service) ClearCache(ctx context.Context) error {
	if err := s.store.DeleteCachedCatalog(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "clear cached catalog")
	}
	s.logger.Info("Cached catalog cleared, serving bundled",
		"version", s.Bundled().Version)
	return nil
}

// Status describes the catalog currently serving queries.
type Status struct {
	Source   domain.CatalogSource `json:"source"`
	Version  int                  `json:"version"`
	Sets     int                  `json:"sets"`
	Entries  int                  `json:"entries"`
	LastSync time.Time            `json:"last_sync"`
}

// CurrentStatus reports which snapshot is active and when it last synced.
func (s *Service) CurrentStatus(ctx context.Context) (*Status, error) {
	snapshot, source, err := s.Authoritative(ctx)
	if err != nil {
		return nil, err
	}

	lastSync, err := s.store.GetLastSyncTime(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "load last sync time")
	}

	return &Status{
		Source:   source,
		Version:  snapshot.Version,
		Sets:     len(snapshot.NameSets),
		Entries:  snapshot.EntryCount(),
		LastSync: lastSync,
	}, nil
}
