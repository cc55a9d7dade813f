// Package service implements the application's use cases on top of the
// catalog, index, ledger, and remote layers.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kinderhq/petnames-core/internal/domain"
	apperrors "github.com/kinderhq/petnames-core/internal/errors"
	"github.com/kinderhq/petnames-core/internal/store"
)

// AuthRemote is the remote surface identity management needs.
type AuthRemote interface {
	SignInAnonymously(ctx context.Context) (*domain.DeviceIdentity, error)
}

// IdentityService owns the device's anonymous remote identity and household
// membership. A nil remote means the engine runs fully offline and identity
// operations report unavailable.
type IdentityService struct {
	logger *slog.Logger
	store  *store.Store
	remote AuthRemote
}

// NewIdentityService creates an identity service. remote may be nil.
func NewIdentityService(logger *slog.Logger, st *store.Store, remote AuthRemote) *IdentityService {
	return &IdentityService{
		logger: logger,
		store:  st,
		remote: remote,
	}
}

// Current returns the stored identity, or nil when the device has never
// signed in.
func (s *IdentityService) Current(ctx context.Context) (*domain.DeviceIdentity, error) {
	return s.store.GetDeviceIdentity(ctx)
}

// Ensure returns the device identity, signing in anonymously on first use.
// The identity is persisted before being returned; losing it would orphan
// the user's remote swipes.
func (s *IdentityService) Ensure(ctx context.Context) (*domain.DeviceIdentity, error) {
	identity, err := s.store.GetDeviceIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if identity != nil {
		return identity, nil
	}

	if s.remote == nil {
		return nil, apperrors.Unavailable("no remote configured, running offline")
	}

	identity, err = s.remote.SignInAnonymously(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.PutDeviceIdentity(ctx, identity); err != nil {
		return nil, err
	}

	s.logger.Info("Device identity established", "user_id", identity.UserID)
	return identity, nil
}

// Household returns the household this device belongs to, uuid.Nil when none.
func (s *IdentityService) Household(ctx context.Context) (uuid.UUID, error) {
	return s.store.GetCurrentHousehold(ctx)
}

// SetHousehold records household membership after a create or join.
func (s *IdentityService) SetHousehold(ctx context.Context, id uuid.UUID) error {
	return s.store.PutCurrentHousehold(ctx, id)
}

// session returns the identity and household when both exist. found is false
// when the device has no identity or no household yet; remote swipe traffic
// is skipped in that case.
func (s *IdentityService) session(ctx context.Context) (identity *domain.DeviceIdentity, household uuid.UUID, found bool, err error) {
	identity, err = s.store.GetDeviceIdentity(ctx)
	if err != nil || identity == nil {
		return nil, uuid.Nil, false, err
	}
	household, err = s.store.GetCurrentHousehold(ctx)
	if err != nil || household == uuid.Nil {
		return nil, uuid.Nil, false, err
	}
	return identity, household, true, nil
}
