package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kinderhq/petnames-core/internal/domain"
)

func (s *Server) registerPrefsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getFilters",
		Method:      http.MethodGet,
		Path:        "/api/v1/prefs/filters",
		Summary:     "Get filters",
		Description: "Returns the active card filters",
		Tags:        []string{"Preferences"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetFilters)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateFilters",
		Method:      http.MethodPut,
		Path:        "/api/v1/prefs/filters",
		Summary:     "Update filters",
		Description: "Replaces the active card filters",
		Tags:        []string{"Preferences"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateFilters)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLanguages",
		Method:      http.MethodGet,
		Path:        "/api/v1/prefs/languages",
		Summary:     "Get languages",
		Description: "Returns the preferred catalog languages",
		Tags:        []string{"Preferences"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetLanguages)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateLanguages",
		Method:      http.MethodPut,
		Path:        "/api/v1/prefs/languages",
		Summary:     "Update languages",
		Description: "Replaces the preferred catalog languages",
		Tags:        []string{"Preferences"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateLanguages)

	huma.Register(s.api, huma.Operation{
		OperationID: "getStyles",
		Method:      http.MethodGet,
		Path:        "/api/v1/prefs/styles",
		Summary:     "Get styles",
		Description: "Returns the preferred name set styles",
		Tags:        []string{"Preferences"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetStyles)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateStyles",
		Method:      http.MethodPut,
		Path:        "/api/v1/prefs/styles",
		Summary:     "Update styles",
		Description: "Replaces the preferred name set styles",
		Tags:        []string{"Preferences"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateStyles)
}

// === DTOs ===

// PrefsInput contains parameters for reading preferences.
type PrefsInput struct {
	Authorization string `header:"Authorization"`
}

// FiltersBody is the card filter set as sent and received over the API.
type FiltersBody struct {
	Gender     string `json:"gender" validate:"required,oneof=any male female neutral" doc:"Gender filter, any passes everything"`
	StartsWith string `json:"starts_with" doc:"Prefix filter, any passes everything"`
	MaxLength  int    `json:"max_length" validate:"gte=0,lte=50" doc:"Maximum name length in characters, 0 is unbounded"`
}

// FiltersOutput wraps the filters response for Huma.
type FiltersOutput struct {
	Body FiltersBody
}

// UpdateFiltersInput wraps the filters update for Huma.
type UpdateFiltersInput struct {
	Authorization string `header:"Authorization"`
	Body          FiltersBody
}

// StringListBody carries a list preference (languages or styles).
type StringListBody struct {
	Values []string `json:"values" validate:"required,min=1" doc:"Preference values"`
}

// StringListOutput wraps a list preference response for Huma.
type StringListOutput struct {
	Body StringListBody
}

// UpdateStringListInput wraps a list preference update for Huma.
type UpdateStringListInput struct {
	Authorization string `header:"Authorization"`
	Body          StringListBody
}

// === Handlers ===

func (s *Server) handleGetFilters(ctx context.Context, input *PrefsInput) (*FiltersOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	filters, err := s.services.Prefs.Filters(ctx)
	if err != nil {
		return nil, err
	}

	return &FiltersOutput{
		Body: FiltersBody{
			Gender:     filters.Gender,
			StartsWith: filters.StartsWith,
			MaxLength:  filters.MaxLength,
		},
	}, nil
}

func (s *Server) handleUpdateFilters(ctx context.Context, input *UpdateFiltersInput) (*FiltersOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	filters := domain.Filters{
		Gender:     input.Body.Gender,
		StartsWith: input.Body.StartsWith,
		MaxLength:  input.Body.MaxLength,
	}
	if err := s.services.Prefs.SetFilters(ctx, filters); err != nil {
		return nil, err
	}

	return &FiltersOutput{Body: input.Body}, nil
}

func (s *Server) handleGetLanguages(ctx context.Context, input *PrefsInput) (*StringListOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	langs, err := s.services.Prefs.Languages(ctx)
	if err != nil {
		return nil, err
	}

	return &StringListOutput{Body: StringListBody{Values: langs}}, nil
}

func (s *Server) handleUpdateLanguages(ctx context.Context, input *UpdateStringListInput) (*StringListOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	if err := s.services.Prefs.SetLanguages(ctx, input.Body.Values); err != nil {
		return nil, err
	}

	langs, err := s.services.Prefs.Languages(ctx)
	if err != nil {
		return nil, err
	}

	return &StringListOutput{Body: StringListBody{Values: langs}}, nil
}

func (s *Server) handleGetStyles(ctx context.Context, input *PrefsInput) (*StringListOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	styles, err := s.services.Prefs.Styles(ctx)
	if err != nil {
		return nil, err
	}

	return &StringListOutput{Body: StringListBody{Values: styles}}, nil
}

func (s *Server) handleUpdateStyles(ctx context.Context, input *UpdateStringListInput) (*StringListOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	if err := s.services.Prefs.SetStyles(ctx, input.Body.Values); err != nil {
		return nil, err
	}

	styles, err := s.services.Prefs.Styles(ctx)
	if err != nil {
		return nil, err
	}

	return &StringListOutput{Body: StringListBody{Values: styles}}, nil
}
