package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/kinderhq/petnames-core/internal/catalog"
	"github.com/kinderhq/petnames-core/internal/config"
	"github.com/kinderhq/petnames-core/internal/ledger"
	"github.com/kinderhq/petnames-core/internal/logger"
	"github.com/kinderhq/petnames-core/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the on-device Badger store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// ProvideCatalog provides the catalog service. Loading fails when the bundled
// document is missing or corrupt; the engine cannot start without it.
func ProvideCatalog(i do.Injector) (*catalog.Service, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return catalog.New(log.Logger, storeHandle.Store, cfg.Catalog.BundledPath)
}

// ProvideLedger provides the swipe ledger, hydrated from the store.
func ProvideLedger(i do.Injector) (*ledger.Ledger, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return ledger.New(context.Background(), log.Logger, storeHandle.Store)
}
