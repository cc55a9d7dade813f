package remote

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/kinderhq/petnames-core/internal/domain"
	apperrors "github.com/kinderhq/petnames-core/internal/errors"
)

// SignInAnonymously creates an anonymous user on the auth backend and returns
// the identity this device acts as from then on.
func (c *Client) SignInAnonymously(ctx context.Context) (*domain.DeviceIdentity, error) {
	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/auth/v1/signup", "", map[string]any{})
	if err != nil {
		return nil, err
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
	}
	if err := c.doJSON(req, &resp); err != nil {
		return nil, err
	}

	if resp.AccessToken == "" || resp.User.ID == uuid.Nil {
		return nil, apperrors.Unavailable("anonymous sign-in returned no identity")
	}

	c.logger.Info("Signed in anonymously", "user_id", resp.User.ID)
	return &domain.DeviceIdentity{
		UserID:      resp.User.ID,
		AccessToken: resp.AccessToken,
	}, nil
}
