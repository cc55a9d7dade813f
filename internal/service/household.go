package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/kinderhq/petnames-core/internal/domain"
	apperrors "github.com/kinderhq/petnames-core/internal/errors"
	"github.com/kinderhq/petnames-core/internal/notify"
)

// HouseholdRemote is the remote surface household membership needs.
type HouseholdRemote interface {
	CreateHousehold(ctx context.Context, token string, displayName *string) (*domain.CreateHouseholdResult, error)
	JoinHousehold(ctx context.Context, token, inviteCode string) (*domain.JoinHouseholdResult, error)
	FetchInviteCode(ctx context.Context, token string, householdID uuid.UUID) (string, error)
	FetchHouseholdMembers(ctx context.Context, token string, householdID uuid.UUID) ([]domain.HouseholdMember, error)
	UpdateDisplayName(ctx context.Context, token string, userID uuid.UUID, displayName string) error
}

// HouseholdService manages the device's household membership. Households are
// inherently a remote concept; every operation here needs connectivity and
// reports unavailable without it.
type HouseholdService struct {
	logger   *slog.Logger
	identity *IdentityService
	remote   HouseholdRemote
	notifier *notify.Notifier
}

// NewHouseholdService creates the household service. remote may be nil.
func NewHouseholdService(logger *slog.Logger, identity *IdentityService, remote HouseholdRemote, notifier *notify.Notifier) *HouseholdService {
	return &HouseholdService{
		logger:   logger,
		identity: identity,
		remote:   remote,
		notifier: notifier,
	}
}

// Create makes a new household owned by this device's user, signing in first
// when needed, and records the membership locally.
func (s *HouseholdService) Create(ctx context.Context, displayName *string) (*domain.CreateHouseholdResult, error) {
	if s.remote == nil {
		return nil, apperrors.Unavailable("households need a remote store")
	}

	identity, err := s.identity.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.remote.CreateHousehold(ctx, identity.AccessToken, displayName)
	if err != nil {
		return nil, err
	}
	if err := s.identity.SetHousehold(ctx, result.HouseholdID); err != nil {
		return nil, err
	}

	s.logger.Info("Household created", "household_id", result.HouseholdID)
	return result, nil
}

// Join adds this device's user to the household behind an invite code and
// records the membership locally. The other members get a push.
func (s *HouseholdService) Join(ctx context.Context, inviteCode string, displayName *string) (*domain.JoinHouseholdResult, error) {
	if s.remote == nil {
		return nil, apperrors.Unavailable("households need a remote store")
	}

	code := strings.ToUpper(strings.TrimSpace(inviteCode))
	if len(code) != 6 {
		return nil, apperrors.Validation("invite code must be 6 characters")
	}

	identity, err := s.identity.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	if displayName != nil && *displayName != "" {
		if err := s.remote.UpdateDisplayName(ctx, identity.AccessToken, identity.UserID, *displayName); err != nil {
			s.logger.Warn("Failed to set display name", "error", err)
		}
	}

	result, err := s.remote.JoinHousehold(ctx, identity.AccessToken, code)
	if err != nil {
		return nil, err
	}
	if err := s.identity.SetHousehold(ctx, result.HouseholdID); err != nil {
		return nil, err
	}

	memberName := "A new member"
	if displayName != nil && *displayName != "" {
		memberName = *displayName
	}
	s.notifier.MemberJoined(ctx, result.HouseholdID, identity.UserID, memberName)

	s.logger.Info("Joined household", "household_id", result.HouseholdID)
	return result, nil
}

// InviteCode returns the code other people join this device's household with.
func (s *HouseholdService) InviteCode(ctx context.Context) (string, error) {
	identity, household, err := s.requireMembership(ctx)
	if err != nil {
		return "", err
	}
	return s.remote.FetchInviteCode(ctx, identity.AccessToken, household)
}

// Members lists the household's members, oldest first.
func (s *HouseholdService) Members(ctx context.Context) ([]domain.HouseholdMember, error) {
	identity, household, err := s.requireMembership(ctx)
	if err != nil {
		return nil, err
	}
	return s.remote.FetchHouseholdMembers(ctx, identity.AccessToken, household)
}

// SetDisplayName updates how this device's user appears to other members.
func (s *HouseholdService) SetDisplayName(ctx context.Context, displayName string) error {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return apperrors.Validation("display name is required")
	}

	if s.remote == nil {
		return apperrors.Unavailable("households need a remote store")
	}
	identity, err := s.identity.Ensure(ctx)
	if err != nil {
		return err
	}
	return s.remote.UpdateDisplayName(ctx, identity.AccessToken, identity.UserID, name)
}

// requireMembership resolves the signed-in identity and joined household, or
// fails: unlike swipe traffic, household operations cannot degrade gracefully.
func (s *HouseholdService) requireMembership(ctx context.Context) (*domain.DeviceIdentity, uuid.UUID, error) {
	if s.remote == nil {
		return nil, uuid.Nil, apperrors.Unavailable("households need a remote store")
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
