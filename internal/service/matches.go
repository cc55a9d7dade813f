package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kinderhq/petnames-core/internal/domain"
	apperrors "github.com/kinderhq/petnames-core/internal/errors"
)

// MatchesRemote is the remote surface match listing needs.
type MatchesRemote interface {
	FetchMatches(ctx context.Context, token string, householdID uuid.UUID) ([]domain.MatchRow, error)
	FetchLikers(ctx context.Context, token string, householdID, nameID uuid.UUID) ([]string, error)
}

// MatchesService lists names the household agreed on. Matches are derived
// entirely by the remote store; without connectivity there is nothing to show.
type MatchesService struct {
	logger   *slog.Logger
	identity *IdentityService
	remote   MatchesRemote
}

// NewMatchesService creates the matches service. remote may be nil.
func NewMatchesService(logger *slog.Logger, identity *IdentityService, remote MatchesRemote) *MatchesService {
	return &MatchesService{
		logger:   logger,
		identity: identity,
		remote:   remote,
	}
}

// Matches returns the household's matched names, most liked first.
func (s *MatchesService) Matches(ctx context.Context) ([]domain.MatchRow, error) {
	identity, household, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return s.remote.FetchMatches(ctx, identity.AccessToken, household)
}

// Likers returns the display labels of members who liked a matched name.
func (s *MatchesService) Likers(ctx context.Context, nameID uuid.UUID) ([]string, error) {
	identity, household, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return s.remote.FetchLikers(ctx, identity.AccessToken, household, nameID)
}

func (s *MatchesService) session(ctx context.Context) (*domain.DeviceIdentity, uuid.UUID, error) {
	if s.remote == nil {
		return nil, uuid.Nil, apperrors.Unavailable("matches need a remote store")
	}
	identity, household, found, err := s.identity.session(ctx)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if !found {
		return nil, uuid.Nil, apperrors.NotFound("not a member of any household")
	}
	return identity, household, nil
}
