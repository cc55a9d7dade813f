package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalogStatus",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/status",
		Summary:     "Get catalog status",
		Description: "Returns which catalog snapshot is serving queries and when it last synced",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCatalogStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "triggerCatalogSync",
		Method:      http.MethodPost,
		Path:        "/api/v1/catalog/sync",
		Summary:     "Trigger catalog sync",
		Description: "Fetches the remote catalog and replaces the cache",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleTriggerCatalogSync)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearCatalogCache",
		Method:      http.MethodDelete,
		Path:        "/api/v1/catalog/cache",
		Summary:     "Clear catalog cache",
		Description: "Drops the synced cache and reverts to the bundled catalog",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleClearCatalogCache)
}

// === DTOs ===

// CatalogStatusInput contains parameters for reading catalog status.
type CatalogStatusInput struct {
	Authorization string `header:"Authorization"`
}

// CatalogStatusResponse describes the catalog serving queries.
type CatalogStatusResponse struct {
	Source   string    `json:"source" doc:"bundled or cached"`
	Version  int       `json:"version" doc:"Snapshot version"`
	Sets     int       `json:"sets" doc:"Name sets in the snapshot"`
	Entries  int       `json:"entries" doc:"Names in the snapshot, before deduplication"`
	Indexed  int       `json:"indexed" doc:"Deduplicated entries in the active index"`
	LastSync time.Time `json:"last_sync" doc:"Zero when the device has never synced"`
}

// CatalogStatusOutput wraps the status response for Huma.
type CatalogStatusOutput struct {
	Body CatalogStatusResponse
}

// === Handlers ===

func (s *Server) handleGetCatalogStatus(ctx context.Context, input *CatalogStatusInput) (*CatalogStatusOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	status, err := s.services.Catalog.CurrentStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &CatalogStatusOutput{
		Body: CatalogStatusResponse{
			Source:   string(status.Source),
			Version:  status.Version,
			Sets:     status.Sets,
			Entries:  status.Entries,
			Indexed:  s.services.Names.Index().Len(),
			LastSync: status.LastSync,
		},
	}, nil
}

func (s *Server) handleTriggerCatalogSync(ctx context.Context, input *CatalogStatusInput) (*CatalogStatusOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Sync.Sync(ctx); err != nil {
		return nil, err
	}

	return s.handleGetCatalogStatus(ctx, input)
}

func (s *Server) handleClearCatalogCache(ctx context.Context, input *CatalogStatusInput) (*CatalogStatusOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Catalog.ClearCache(ctx); err != nil {
		return nil, err
	}
	if err := s.services.Names.RebuildIndex(ctx); err != nil {
		return nil, err
	}

	return s.handleGetCatalogStatus(ctx, input)
}
