package store

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/kinderhq/petnames-core/internal/domain"
)

const (
	keySwipedNames = "swipe:names"
	keyLocalLikes  = "likes:local"
)

// GetSwipedNames retrieves the set of canonical names the user has already
// swiped on. Returns an empty set when none exist.
func (s *Store) GetSwipedNames(ctx context.Context) (map[string]bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var names []string
	err := s.get([]byte(keySwipedNames), &names)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set, nil
}

// PutSwipedNames replaces the swiped-name set. Stored as a plain slice;
// ordering is not significant.
func (s *Store) PutSwipedNames(ctx context.Context, names []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set([]byte(keySwipedNames), names)
}

// GetLocalLikes retrieves the device-local likes list, newest first.
// Returns an empty slice when none exist.
func (s *Store) GetLocalLikes(ctx context.Context) ([]domain.LikedName, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var likes []domain.LikedName
	err := s.get([]byte(keyLocalLikes), &likes)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []domain.LikedName{}, nil
	}
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// PutLocalLikes replaces the device-local likes list.
func (s *Store) PutLocalLikes(ctx context.Context, likes []domain.LikedName) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set([]byte(keyLocalLikes), likes)
}
