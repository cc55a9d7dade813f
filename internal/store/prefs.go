package store

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/kinderhq/petnames-core/internal/domain"
)

const (
	keyFilters   = "prefs:filters"
	keyLanguages = "prefs:languages"
	keyStyles    = "prefs:styles"
)

// GetFilters retrieves the active card filters, falling back to defaults
// when none are stored.
func (s *Store) GetFilters(ctx context.Context) (domain.Filters, error) {
	if err := ctx.Err(); err != nil {
		return domain.Filters{}, err
	}

	var filters domain.Filters
	err := s.get([]byte(keyFilters), &filters)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.DefaultFilters(), nil
	}
	if err != nil {
		return domain.Filters{}, err
	}
	return filters, nil
}

// PutFilters stores the active card filters.
func (s *Store) PutFilters(ctx context.Context, filters domain.Filters) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set([]byte(keyFilters), filters)
}

// GetLanguages retrieves the preferred catalog languages, falling back to
// the defaults when none are stored.
func (s *Store) GetLanguages(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var langs []string
	err := s.get([]byte(keyLanguages), &langs)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return append([]string(nil), domain.DefaultLanguages...), nil
	}
	if err != nil {
		return nil, err
	}
	return langs, nil
}

// PutLanguages stores the preferred catalog languages.
func (s *Store) PutLanguages(ctx context.Context, langs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set([]byte(keyLanguages), langs)
}

// GetStyles retrieves the preferred catalog styles, falling back to every
// style when none are stored.
func (s *Store) GetStyles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var styles []string
	err := s.get([]byte(keyStyles), &styles)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return append([]string(nil), domain.AllStyles...), nil
	}
	if err != nil {
		return nil, err
	}
	return styles, nil
}

// PutStyles stores the preferred catalog styles.
func (s *Store) PutStyles(ctx context.Context, styles []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set([]byte(keyStyles), styles)
}
