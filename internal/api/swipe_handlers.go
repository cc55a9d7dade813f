package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kinderhq/petnames-core/internal/domain"
	"github.com/kinderhq/petnames-core/internal/service"
)

func (s *Server) registerSwipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "recordSwipe",
		Method:      http.MethodPost,
		Path:        "/api/v1/swipes",
		Summary:     "Record swipe",
		Description: "Records a like or dismiss decision on a name",
		Tags:        []string{"Swipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRecordSwipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "undoSwipe",
		Method:      http.MethodDelete,
		Path:        "/api/v1/swipes/{name}",
		Summary:     "Undo swipe",
		Description: "Reverses the decision on a name so it can be served again",
		Tags:        []string{"Swipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUndoSwipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSwipeCounts",
		Method:      http.MethodGet,
		Path:        "/api/v1/swipes/counts",
		Summary:     "Get swipe counts",
		Description: "Returns like and dismiss tallies across local and remote stores",
		Tags:        []string{"Swipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetSwipeCounts)

	huma.Register(s.api, huma.Operation{
		OperationID: "listLikes",
		Method:      http.MethodGet,
		Path:        "/api/v1/likes",
		Summary:     "List likes",
		Description: "Returns liked names, device-local likes first",
		Tags:        []string{"Swipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListLikes)
}

// === DTOs ===

// SwipeRequest is the request body for recording a swipe.
type SwipeRequest struct {
	Name     string `json:"name" validate:"required,max=100" doc:"Name being decided on"`
	Gender   string `json:"gender,omitempty" validate:"omitempty,oneof=male female neutral unspecified" doc:"Name gender"`
	SetTitle string `json:"set_title,omitempty" doc:"Source set title"`
	Decision string `json:"decision" validate:"required,oneof=like dismiss" doc:"like or dismiss"`
}

// SwipeInput wraps the swipe request for Huma.
type SwipeInput struct {
	Authorization string `header:"Authorization"`
	Body          SwipeRequest
}

// SwipeResponse reports what the swipe did.
type SwipeResponse struct {
	Recorded bool `json:"recorded" doc:"False when the name was already decided on"`
	Match    bool `json:"match" doc:"True when another household member also liked it"`
}

// SwipeOutput wraps the swipe response for Huma.
type SwipeOutput struct {
	Body SwipeResponse
}

// UndoSwipeInput contains parameters for undoing a swipe.
type UndoSwipeInput struct {
	Authorization string `header:"Authorization"`
	Name          string `path:"name" doc:"Name whose decision is reversed"`
}

// SwipeCountsInput contains parameters for reading swipe counts.
type SwipeCountsInput struct {
	Authorization string `header:"Authorization"`
}

// SwipeCountsResponse contains like and dismiss tallies.
type SwipeCountsResponse struct {
	Likes     int `json:"likes" doc:"Total likes"`
	Dismisses int `json:"dismisses" doc:"Total dismisses"`
}

// SwipeCountsOutput wraps the counts response for Huma.
type SwipeCountsOutput struct {
	Body SwipeCountsResponse
}

// LikedNameResponse is one entry in the likes list.
type LikedNameResponse struct {
	NameID   string `json:"name_id" doc:"Server UUID or device-generated ID"`
	Name     string `json:"name" doc:"Liked name"`
	Gender   string `json:"gender" doc:"Name gender"`
	SetTitle string `json:"set_title" doc:"Source set title"`
}

// ListLikesResponse contains the likes list.
type ListLikesResponse struct {
	Likes []LikedNameResponse `json:"likes" doc:"Liked names, newest local likes first"`
}

// ListLikesOutput wraps the likes response for Huma.
type ListLikesOutput struct {
	Body ListLikesResponse
}

// === Handlers ===

func (s *Server) handleRecordSwipe(ctx context.Context, input *SwipeInput) (*SwipeOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	result, err := s.services.Swipes.Swipe(ctx, service.SwipeRequest{
		Name:     input.Body.Name,
		Gender:   domain.ParseGender(input.Body.Gender),
		SetTitle: input.Body.SetTitle,
		Decision: domain.Decision(input.Body.Decision),
	})
	if err != nil {
		return nil, err
	}

	return &SwipeOutput{
		Body: SwipeResponse{
			Recorded: result.Recorded,
			Match:    result.Match,
		},
	}, nil
}

func (s *Server) handleUndoSwipe(ctx context.Context, input *UndoSwipeInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Swipes.Undo(ctx, input.Name); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Swipe undone"}}, nil
}

func (s *Server) handleGetSwipeCounts(ctx context.Context, input *SwipeCountsInput) (*SwipeCountsOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	counts, err := s.services.Swipes.Counts(ctx)
	if err != nil {
		return nil, err
	}

	return &SwipeCountsOutput{
		Body: SwipeCountsResponse{
			Likes:     counts.Likes,
			Dismisses: counts.Dismisses,
		},
	}, nil
}

func (s *Server) handleListLikes(ctx context.Context, input *SwipeCountsInput) (*ListLikesOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	likes, err := s.services.Swipes.Likes(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]LikedNameResponse, len(likes))
	for i, l := range likes {
		resp[i] = LikedNameResponse{
			NameID:   l.NameID,
			Name:     l.Name,
			Gender:   string(l.Gender),
			SetTitle: l.SetTitle,
		}
	}

	return &ListLikesOutput{Body: ListLikesResponse{Likes: resp}}, nil
}
