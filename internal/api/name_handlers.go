package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kinderhq/petnames-core/internal/domain"
)

func (s *Server) registerNameRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getNextNames",
		Method:      http.MethodGet,
		Path:        "/api/v1/names/next",
		Summary:     "Get next names",
		Description: "Returns the next swipe candidates under the active filters and preferences",
		Tags:        []string{"Names"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetNextNames)
}

// === DTOs ===

// NextNamesInput contains parameters for fetching swipe candidates.
type NextNamesInput struct {
	Authorization string   `header:"Authorization"`
	Limit         int      `query:"limit" doc:"Maximum number of cards (default 10)"`
	Exclude       []string `query:"exclude" doc:"Names currently on screen, never dealt again"`
}

// CardResponse is one swipe candidate.
type CardResponse struct {
	ID       string `json:"name_id" doc:"Card identifier"`
	Name     string `json:"name" doc:"Candidate name"`
	Gender   string `json:"gender" doc:"Name gender"`
	SetTitle string `json:"set_title" doc:"Source set title"`
	IsLocal  bool   `json:"is_local" doc:"Served from the on-device index"`
}

// NextNamesResponse contains the dealt cards.
type NextNamesResponse struct {
	Cards []CardResponse `json:"cards" doc:"Swipe candidates"`
}

// NextNamesOutput wraps the next names response for Huma.
type NextNamesOutput struct {
	Body NextNamesResponse
}

// === Handlers ===

func (s *Server) handleGetNextNames(ctx context.Context, input *NextNamesInput) (*NextNamesOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	cards, err := s.services.Names.NextNames(ctx, input.Limit, input.Exclude)
	if err != nil {
		return nil, err
	}

	return &NextNamesOutput{Body: NextNamesResponse{Cards: toCardResponses(cards)}}, nil
}

func toCardResponses(cards []domain.Card) []CardResponse {
	resp := make([]CardResponse, len(cards))
	for i, c := range cards {
		resp[i] = CardResponse{
			ID:       c.ID,
			Name:     c.Name,
			Gender:   string(c.Gender),
			SetTitle: c.SetTitle,
			IsLocal:  c.IsLocal,
		}
	}
	return resp
}
