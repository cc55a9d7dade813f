package api

import (
	"github.com/kinderhq/petnames-core/internal/auth"
	"github.com/kinderhq/petnames-core/internal/catalog"
	"github.com/kinderhq/petnames-core/internal/service"
)

// Services groups the business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Token     *auth.TokenService
	Identity  *service.IdentityService
	Names     *service.NamesService
	Swipes    *service.SwipesService
	Sync      *service.SyncService
	Household *service.HouseholdService
	Matches   *service.MatchesService
	Prefs     *service.PrefsService
	Catalog   *catalog.Service
}
