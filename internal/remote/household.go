package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/kinderhq/petnames-core/internal/domain"
	apperrors "github.com/kinderhq/petnames-core/internal/errors"
)

// CreateHousehold creates a household owned by the acting user and returns
// its ID plus the invite code others join with.
func (c *Client) CreateHousehold(ctx context.Context, token string, displayName *string) (*domain.CreateHouseholdResult, error) {
	body := map[string]any{"display_name": displayName}
	req, err := c.newRequest(ctx, http.MethodPost, c.restURL("rpc/create_household", nil), token, body)
	if err != nil {
		return nil, err
	}

	var result domain.CreateHouseholdResult
	if err := c.doJSON(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// JoinHousehold adds the acting user to the household behind an invite code.
func (c *Client) JoinHousehold(ctx context.Context, token, inviteCode string) (*domain.JoinHouseholdResult, error) {
	body := map[string]any{"invite_code": inviteCode}
	req, err := c.newRequest(ctx, http.MethodPost, c.restURL("rpc/join_household", nil), token, body)
	if err != nil {
		return nil, err
	}

	var result domain.JoinHouseholdResult
	if err := c.doJSON(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchInviteCode retrieves the invite code for a household.
func (c *Client) FetchInviteCode(ctx context.Context, token string, householdID uuid.UUID) (string, error) {
	query := url.Values{}
	query.Set("select", "id,invite_code")
	query.Set("id", "eq."+householdID.String())
	query.Set("limit", "1")

	req, err := c.newRequest(ctx, http.MethodGet, c.restURL("households", query), token, nil)
	if err != nil {
		return "", err
	}

	var rows []domain.Household
	if err := c.doJSON(req, &rows); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", apperrors.NotFound("household not found")
	}
	return rows[0].InviteCode, nil
}

// FetchHouseholdMembers retrieves all member profiles, oldest first.
func (c *Client) FetchHouseholdMembers(ctx context.Context, token string, householdID uuid.UUID) ([]domain.HouseholdMember, error) {
	query := url.Values{}
	query.Set("select", "id,display_name,created_at")
	query.Set("household_id", "eq."+householdID.String())
	query.Set("order", "created_at.asc")

	req, err := c.newRequest(ctx, http.MethodGet, c.restURL("profiles", query), token, nil)
	if err != nil {
		return nil, err
	}

	var members []domain.HouseholdMember
	if err := c.doJSON(req, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateDisplayName sets the acting user's display name on their profile.
func (c *Client) UpdateDisplayName(ctx context.Context, token string, userID uuid.UUID, displayName string) error {
	query := url.Values{}
	query.Set("id", "eq."+userID.String())

	body := map[string]string{"display_name": displayName}
	req, err := c.newRequest(ctx, http.MethodPatch, c.restURL("profiles", query), token, body)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}
