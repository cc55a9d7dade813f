package providers

import (
	"context"
	"net"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/kinderhq/petnames-core/internal/api"
	"github.com/kinderhq/petnames-core/internal/auth"
	"github.com/kinderhq/petnames-core/internal/catalog"
	"github.com/kinderhq/petnames-core/internal/config"
	"github.com/kinderhq/petnames-core/internal/logger"
	"github.com/kinderhq/petnames-core/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	services := &api.Services{
		Token:     do.MustInvoke[*auth.TokenService](i),
		Identity:  do.MustInvoke[*service.IdentityService](i),
		Names:     do.MustInvoke[*service.NamesService](i),
		Swipes:    do.MustInvoke[*service.SwipesService](i),
		Sync:      do.MustInvoke[*service.SyncService](i),
		Household: do.MustInvoke[*service.HouseholdService](i),
		Matches:   do.MustInvoke[*service.MatchesService](i),
		Prefs:     do.MustInvoke[*service.PrefsService](i),
		Catalog:   do.MustInvoke[*catalog.Service](i),
	}

	handler := api.NewServer(cfg.Server.Name, storeHandle.Store, services, log.Logger)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
