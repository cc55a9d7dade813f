package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kinderhq/petnames-core/internal/domain"
	apperrors "github.com/kinderhq/petnames-core/internal/errors"
	"github.com/kinderhq/petnames-core/internal/normalize"
	"github.com/kinderhq/petnames-core/internal/store"
)

// PrefsService manages the card filters and the language and style
// preferences that scope the deck.
type PrefsService struct {
	logger *slog.Logger
	store  *store.Store
}

// NewPrefsService creates the preferences service.
func NewPrefsService(logger *slog.Logger, st *store.Store) *PrefsService {
	return &PrefsService{logger: logger, store: st}
}

// Filters returns the active card filters.
func (s *PrefsService) Filters(ctx context.Context) (domain.Filters, error) {
	return s.store.GetFilters(ctx)
}

// SetFilters validates and stores the card filters.
func (s *PrefsService) SetFilters(ctx context.Context, filters domain.Filters) error {
	switch filters.Gender {
	case domain.FilterAny, string(domain.GenderMale), string(domain.GenderFemale), string(domain.GenderNeutral):
	default:
		return apperrors.Validationf("unknown gender filter %q", filters.Gender)
	}
	if filters.MaxLength < 0 {
		return apperrors.Validation("max length cannot be negative")
	}
	filters.StartsWith = strings.TrimSpace(filters.StartsWith)
	return s.store.PutFilters(ctx, filters)
}

// Languages returns the preferred catalog languages.
func (s *PrefsService) Languages(ctx context.Context) ([]string, error) {
	return s.store.GetLanguages(ctx)
}

// SetLanguages stores the preferred catalog languages, normalized to
// two-letter codes. At least one language must remain.
func (s *PrefsService) SetLanguages(ctx context.Context, langs []string) error {
	normalized := make([]string, 0, len(langs))
	seen := map[string]bool{}
	for _, l := range langs {
		code := normalize.LanguageCode(l)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		normalized = append(normalized, code)
	}
	if len(normalized) == 0 {
		return apperrors.Validation("at least one language is required")
	}
	return s.store.PutLanguages(ctx, normalized)
}

// Styles returns the preferred name set styles.
func (s *PrefsService) Styles(ctx context.Context) ([]string, error) {
	return s.store.GetStyles(ctx)
}

// SetStyles stores the preferred name set styles. Unknown styles are
// rejected; at least one must remain.
func (s *PrefsService) SetStyles(ctx context.Context, styles []string) error {
	valid := make(map[string]bool, len(domain.AllStyles))
	for _, st := range domain.AllStyles {
		valid[st] = true
	}

	normalized := make([]string, 0, len(styles))
	seen := map[string]bool{}
	for _, raw := range styles {
		st := strings.ToLower(strings.TrimSpace(raw))
		if st == "" || seen[st] {
			continue
		}
		if !valid[st] {
			return apperrors.Validationf("unknown style %q", raw)
		}
		seen[st] = true
		normalized = append(normalized, st)
	}
	if len(normalized) == 0 {
		return apperrors.Validation("at least one style is required")
	}
	return s.store.PutStyles(ctx, normalized)
}
