package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

func (s *Server) registerMatchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMatches",
		Method:      http.MethodGet,
		Path:        "/api/v1/matches",
		Summary:     "List matches",
		Description: "Returns names liked by at least two household members, most liked first",
		Tags:        []string{"Matches"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListMatches)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMatchLikers",
		Method:      http.MethodGet,
		Path:        "/api/v1/matches/{id}/likers",
		Summary:     "Get match likers",
		Description: "Returns display labels of members who liked a matched name",
		Tags:        []string{"Matches"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetMatchLikers)
}

// === DTOs ===

// ListMatchesInput contains parameters for listing matches.
type ListMatchesInput struct {
	Authorization string `header:"Authorization"`
}

// MatchResponse is one matched name.
type MatchResponse struct {
	NameID     string `json:"name_id" doc:"Server name ID"`
	Name       string `json:"name" doc:"Matched name"`
	Gender     string `json:"gender" doc:"Name gender"`
	LikesCount int    `json:"likes_count" doc:"Household members who liked it"`
}

// ListMatchesResponse contains the household's matches.
type ListMatchesResponse struct {
	Matches []MatchResponse `json:"matches" doc:"Matched names, most liked first"`
}

// ListMatchesOutput wraps the matches response for Huma.
type ListMatchesOutput struct {
	Body ListMatchesResponse
}

// MatchLikersInput contains parameters for listing a match's likers.
type MatchLikersInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" format:"uuid" doc:"Server name ID"`
}

// MatchLikersResponse contains the likers of a matched name.
type MatchLikersResponse struct {
	Likers []string `json:"likers" doc:"Display labels of members who liked the name"`
}

// MatchLikersOutput wraps the likers response for Huma.
type MatchLikersOutput struct {
	Body MatchLikersResponse
}

// === Handlers ===

func (s *Server) handleListMatches(ctx context.Context, input *ListMatchesInput) (*ListMatchesOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	matches, err := s.services.Matches.Matches(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]MatchResponse, len(matches))
	for i, m := range matches {
		resp[i] = MatchResponse{
			NameID:     m.NameID.String(),
			Name:       m.Name,
			Gender:     string(m.Gender),
			LikesCount: m.LikesCount,
		}
	}

	return &ListMatchesOutput{Body: ListMatchesResponse{Matches: resp}}, nil
}

func (s *Server) handleGetMatchLikers(ctx context.Context, input *MatchLikersInput) (*MatchLikersOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	nameID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid name ID")
	}

	likers, err := s.services.Matches.Likers(ctx, nameID)
	if err != nil {
		return nil, err
	}

	return &MatchLikersOutput{Body: MatchLikersResponse{Likers: likers}}, nil
}
