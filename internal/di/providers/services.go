package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/kinderhq/petnames-core/internal/catalog"
	"github.com/kinderhq/petnames-core/internal/config"
	"github.com/kinderhq/petnames-core/internal/ledger"
	"github.com/kinderhq/petnames-core/internal/logger"
	"github.com/kinderhq/petnames-core/internal/notify"
	"github.com/kinderhq/petnames-core/internal/service"
)

// The remote interfaces below must stay nil when no client is configured.
// Wrapping a nil *remote.Client in an interface value would defeat the
// services' offline checks.

// ProvideIdentityService provides the device identity service.
func ProvideIdentityService(i do.Injector) (*service.IdentityService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	remoteHandle := do.MustInvoke[*RemoteClientHandle](i)

	var authRemote service.AuthRemote
	if remoteHandle.Client != nil {
		authRemote = remoteHandle.Client
	}

	return service.NewIdentityService(log.Logger, storeHandle.Store, authRemote), nil
}

// ProvideNamesService provides the name serving service with its index built.
func ProvideNamesService(i do.Injector) (*service.NamesService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	cat := do.MustInvoke[*catalog.Service](i)
	led := do.MustInvoke[*ledger.Ledger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	identity := do.MustInvoke[*service.IdentityService](i)
	remoteHandle := do.MustInvoke[*RemoteClientHandle](i)

	var namesRemote service.NamesRemote
	if remoteHandle.Client != nil {
		namesRemote = remoteHandle.Client
	}

	return service.NewNamesService(context.Background(), log.Logger, cat, led, storeHandle.Store, identity, namesRemote)
}

// ProvideSwipesService provides the swipe recording service.
func ProvideSwipesService(i do.Injector) (*service.SwipesService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	led := do.MustInvoke[*ledger.Ledger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	identity := do.MustInvoke[*service.IdentityService](i)
	remoteHandle := do.MustInvoke[*RemoteClientHandle](i)
	notifier := do.MustInvoke[*notify.Notifier](i)

	var swipesRemote service.SwipesRemote
	if remoteHandle.Client != nil {
		swipesRemote = remoteHandle.Client
	}

	return service.NewSwipesService(log.Logger, led, storeHandle.Store, identity, swipesRemote, notifier), nil
}

// ProvideSyncService provides the catalog sync coordinator.
func ProvideSyncService(i do.Injector) (*service.SyncService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	cat := do.MustInvoke[*catalog.Service](i)
	names := do.MustInvoke[*service.NamesService](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	remoteHandle := do.MustInvoke[*RemoteClientHandle](i)

	var syncRemote service.SyncRemote
	if remoteHandle.Client != nil {
		syncRemote = remoteHandle.Client
	}

	return service.NewSyncService(log.Logger, cat, names, storeHandle.Store, syncRemote, cfg.Sync), nil
}

// ProvideHouseholdService provides the household membership service.
func ProvideHouseholdService(i do.Injector) (*service.HouseholdService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	identity := do.MustInvoke[*service.IdentityService](i)
	remoteHandle := do.MustInvoke[*RemoteClientHandle](i)
	notifier := do.MustInvoke[*notify.Notifier](i)

	var householdRemote service.HouseholdRemote
	if remoteHandle.Client != nil {
		householdRemote = remoteHandle.Client
	}

	return service.NewHouseholdService(log.Logger, identity, householdRemote, notifier), nil
}

// ProvideMatchesService provides the match listing service.
func ProvideMatchesService(i do.Injector) (*service.MatchesService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	identity := do.MustInvoke[*service.IdentityService](i)
	remoteHandle := do.MustInvoke[*RemoteClientHandle](i)

	var matchesRemote service.MatchesRemote
	if remoteHandle.Client != nil {
		matchesRemote = remoteHandle.Client
	}

	return service.NewMatchesService(log.Logger, identity, matchesRemote), nil
}

// ProvidePrefsService provides the preferences service.
func ProvidePrefsService(i do.Injector) (*service.PrefsService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewPrefsService(log.Logger, storeHandle.Store), nil
}
