// Package api provides the HTTP API server and handlers for the petnames
// core engine.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kinderhq/petnames-core/internal/store"
	"github.com/kinderhq/petnames-core/internal/validation"
)

// apiVersion is reported in the OpenAPI document.
const apiVersion = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           *store.Store
	services        *Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	validator       *validation.Validator
	pairRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(serverName string, st *store.Store, services *Services, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(RateLimitMiddleware(NewRateLimiter(300, time.Minute, 100), logger))

	humaConfig := huma.DefaultConfig(serverName, apiVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:     st,
		services:  services,
		router:    router,
		api:       api,
		logger:    logger,
		validator: validation.New(),
		// Pairing is the unauthenticated surface; keep it slow.
		pairRateLimiter: NewRateLimiter(10, time.Minute, 5),
	}

	s.registerHealthRoutes()
	s.registerDeviceRoutes()
	s.registerNameRoutes()
	s.registerSwipeRoutes()
	s.registerMatchRoutes()
	s.registerHouseholdRoutes()
	s.registerPrefsRoutes()
	s.registerCatalogRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
