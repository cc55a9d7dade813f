package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/kinderhq/petnames-core/internal/catalog"
	"github.com/kinderhq/petnames-core/internal/config"
	"github.com/kinderhq/petnames-core/internal/logger"
	"github.com/kinderhq/petnames-core/internal/service"
)

// SyncWorkerHandle owns the background catalog sync loop.
type SyncWorkerHandle struct {
	cancel  context.CancelFunc
	started bool
}

// Shutdown implements do.Shutdownable.
func (h *SyncWorkerHandle) Shutdown() error {
	if h.started {
		h.cancel()
	}
	return nil
}

// ProvideSyncWorker starts the periodic catalog sync when a remote is configured.
func ProvideSyncWorker(i do.Injector) (*SyncWorkerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	syncService := do.MustInvoke[*service.SyncService](i)

	if !cfg.RemoteEnabled() {
		log.Info("Catalog sync worker disabled, no remote configured")
		return &SyncWorkerHandle{started: false}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	go syncService.Run(ctx)

	log.Info("Catalog sync worker started",
		"interval", cfg.Sync.Interval,
		"check_every", cfg.Sync.CheckEvery,
	)

	return &SyncWorkerHandle{cancel: cancel, started: true}, nil
}

// CatalogWatcherHandle owns the bundled catalog file watcher.
type CatalogWatcherHandle struct {
	watcher *catalog.Watcher
	cancel  context.CancelFunc
	started bool
}

// Shutdown implements do.Shutdownable.
func (h *CatalogWatcherHandle) Shutdown() error {
	if !h.started {
		return nil
	}
	h.cancel()
	return h.watcher.Close()
}

// ProvideCatalogWatcher starts the bundled catalog file watcher when enabled.
// Development convenience: edits to the bundled document rebuild the index
// without a restart.
func ProvideCatalogWatcher(i do.Injector) (*CatalogWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	cat := do.MustInvoke[*catalog.Service](i)
	names := do.MustInvoke[*service.NamesService](i)

	if !cfg.Catalog.WatchBundled {
		return &CatalogWatcherHandle{started: false}, nil
	}

	onChange := func() {
		if err := cat.ReloadBundled(); err != nil {
			log.Warn("Bundled catalog reload failed, keeping previous snapshot", "error", err)
			return
		}
		if err := names.RebuildIndex(context.Background()); err != nil {
			log.Warn("Index rebuild after catalog reload failed", "error", err)
		}
	}

	watcher, err := catalog.NewWatcher(log.Logger, cfg.Catalog.BundledPath, onChange)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go watcher.Start(ctx)

	log.Info("Bundled catalog watcher started", "path", cfg.Catalog.BundledPath)

	return &CatalogWatcherHandle{watcher: watcher, cancel: cancel, started: true}, nil
}
