// Package di provides dependency injection configuration for the petnames engine.
package di

import (
	"github.com/samber/do/v2"

	"github.com/kinderhq/petnames-core/internal/auth"
	"github.com/kinderhq/petnames-core/internal/catalog"
	"github.com/kinderhq/petnames-core/internal/config"
	"github.com/kinderhq/petnames-core/internal/di/providers"
	"github.com/kinderhq/petnames-core/internal/ledger"
	"github.com/kinderhq/petnames-core/internal/logger"
	"github.com/kinderhq/petnames-core/internal/notify"
	"github.com/kinderhq/petnames-core/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideLedger)

	// Remote layer
	do.Provide(injector, providers.ProvideRemoteClient)
	do.Provide(injector, providers.ProvideNotifier)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideIdentityService)
	do.Provide(injector, providers.ProvideNamesService)
	do.Provide(injector, providers.ProvideSwipesService)
	do.Provide(injector, providers.ProvideSyncService)
	do.Provide(injector, providers.ProvideHouseholdService)
	do.Provide(injector, providers.ProvideMatchesService)
	do.Provide(injector, providers.ProvidePrefsService)

	// Workers
	do.Provide(injector, providers.ProvideSyncWorker)
	do.Provide(injector, providers.ProvideCatalogWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*catalog.Service](injector)
	_ = do.MustInvoke[*ledger.Ledger](injector)
	_ = do.MustInvoke[*providers.RemoteClientHandle](injector)
	_ = do.MustInvoke[*notify.Notifier](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.IdentityService](injector)
	_ = do.MustInvoke[*service.NamesService](injector)
	_ = do.MustInvoke[*service.SwipesService](injector)
	_ = do.MustInvoke[*service.SyncService](injector)
	_ = do.MustInvoke[*service.HouseholdService](injector)
	_ = do.MustInvoke[*service.MatchesService](injector)
	_ = do.MustInvoke[*service.PrefsService](injector)

	// Workers
	_ = do.MustInvoke[*providers.SyncWorkerHandle](injector)
	_ = do.MustInvoke[*providers.CatalogWatcherHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
