package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kinderhq/petnames-core/internal/catalog"
	"github.com/kinderhq/petnames-core/internal/config"
	"github.com/kinderhq/petnames-core/internal/domain"
	apperrors "github.com/kinderhq/petnames-core/internal/errors"
	"github.com/kinderhq/petnames-core/internal/store"
)

// SyncRemote is the remote surface catalog sync needs.
type SyncRemote interface {
	FetchNameSets(ctx context.Context) ([]domain.NameSet, error)
	FetchNames(ctx context.Context, setIDs []uuid.UUID) ([]domain.ServerName, error)
}

// SyncService refreshes the cached catalog from the remote store. A sync is
// all or nothing: the cache is only replaced once a complete snapshot has
// been assembled, so a failed sync leaves the previous catalog serving.
type SyncService struct {
	logger   *slog.Logger
	catalog  *catalog.Service
	names    *NamesService
	store    *store.Store
	remote   SyncRemote
	interval time.Duration
	check    time.Duration
}

// NewSyncService creates the sync service. remote may be nil, in which case
// Sync reports unavailable and Run exits immediately.
func NewSyncService(logger *slog.Logger, cat *catalog.Service, names *NamesService, st *store.Store, remote SyncRemote, cfg config.SyncConfig) *SyncService {
	return &SyncService{
		logger:   logger,
		catalog:  cat,
		names:    names,
		store:    st,
		remote:   remote,
		interval: cfg.Interval,
		check:    cfg.CheckEvery,
	}
}

// ShouldSync reports whether the cache is stale. A device that has never
// synced is always due.
func (s *SyncService) ShouldSync(ctx context.Context) (bool, error) {
	last, err := s.store.GetLastSyncTime(ctx)
	if err != nil {
		return false, err
	}
	if last.IsZero() {
		return true, nil
	}
	return time.Since(last) >= s.interval, nil
}

// Sync fetches the full remote catalog, assembles a snapshot, and installs it
// as the cache. Sets that cannot be classified into a language and style are
// skipped. Nothing is written until the whole snapshot is ready.
func (s *SyncService) Sync(ctx context.Context) error {
	if s.remote == nil {
		return apperrors.Unavailable("no remote configured, running offline")
	}

	started := time.Now()
	sets, err := s.remote.FetchNameSets(ctx)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "fetch name sets")
	}

	type classifiedSet struct {
		set domain.NameSet
		c   catalog.Classification
	}
	classified := make([]classifiedSet, 0, len(sets))
	setIDs := make([]uuid.UUID, 0, len(sets))
	for _, set := range sets {
		c, ok := catalog.Classify(set)
		if !ok {
			s.logger.Warn("Skipping unclassifiable name set", "slug", set.Slug)
			continue
		}
		classified = append(classified, classifiedSet{set: set, c: c})
		setIDs = append(setIDs, set.ID)
	}
	if len(classified) == 0 {
		return apperrors.Unavailable("remote catalog has no classifiable sets")
	}

	names, err := s.remote.FetchNames(ctx, setIDs)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "fetch names")
	}

	namesBySet := make(map[uuid.UUID][]domain.CatalogName)
	for _, n := range names {
		namesBySet[n.SetID] = append(namesBySet[n.SetID], domain.CatalogName{
			Name:   n.Name,
			Gender: n.Gender,
		})
	}

	current, _, err := s.catalog.Authoritative(ctx)
	if err != nil {
		return err
	}

	snapshot := &domain.CatalogSnapshot{
		Version:     current.Version + 1,
		LastUpdated: started.UTC().Format(time.RFC3339),
		NameSets:    make([]domain.CatalogSet, 0, len(classified)),
	}
	for _, cs := range classified {
		description := ""
		if cs.set.Description != nil {
			description = *cs.set.Description
		}
		snapshot.NameSets = append(snapshot.NameSets, domain.CatalogSet{
			Slug:        cs.set.Slug,
			Title:       cs.set.Title,
			Description: description,
			Language:    cs.c.Language,
			Style:       cs.c.Style,
			Names:       namesBySet[cs.set.ID],
		})
	}

	if err := s.catalog.Replace(ctx, snapshot); err != nil {
		return err
	}
	if err := s.store.PutLastSyncTime(ctx, started); err != nil {
		return err
	}
	if err := s.names.RebuildIndex(ctx); err != nil {
		return err
	}

	s.logger.Info("Catalog sync complete",
		"version", snapshot.Version,
		"sets", len(snapshot.NameSets),
		"entries", snapshot.EntryCount(),
		"duration", time.Since(started).Round(time.Millisecond))
	return nil
}

// SyncIfDue runs a sync when the staleness interval has elapsed. A failed
// sync is logged, not fatal; the device keeps serving its current catalog.
func (s *SyncService) SyncIfDue(ctx context.Context) {
	due, err := s.ShouldSync(ctx)
	if err != nil {
		s.logger.Warn("Sync staleness check failed", "error", err)
		return
	}
	if !due {
		return
	}
	if err := s.Sync(ctx); err != nil {
		s.logger.Warn("Catalog sync failed, keeping current catalog", "error", err)
	}
}

// Run periodically checks for staleness until the context is cancelled. One
// check runs immediately on startup.
func (s *SyncService) Run(ctx context.Context) {
	if s.remote == nil {
		s.logger.Debug("Sync loop disabled, no remote configured")
		return
	}

	s.SyncIfDue(ctx)

	ticker := time.NewTicker(s.check)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SyncIfDue(ctx)
		}
	}
}
