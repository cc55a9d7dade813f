package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/kinderhq/petnames-core/internal/id"
)

func (s *Server) registerDeviceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "pairDevice",
		Method:      http.MethodPost,
		Path:        "/api/v1/device/pair",
		Summary:     "Pair device",
		Description: "Issues a device token for a client. The only unauthenticated write endpoint.",
		Tags:        []string{"Device"},
	}, s.handlePairDevice)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/api/v1/device/session",
		Summary:     "Get session",
		Description: "Returns the device's remote identity and household membership",
		Tags:        []string{"Device"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "ensureIdentity",
		Method:      http.MethodPost,
		Path:        "/api/v1/device/identity",
		Summary:     "Ensure identity",
		Description: "Signs in anonymously with the remote store if the device has no identity yet",
		Tags:        []string{"Device"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleEnsureIdentity)
}

// === DTOs ===

// PairDeviceRequest is the request body for pairing a device.
type PairDeviceRequest struct {
	DeviceName string `json:"device_name" validate:"required,min=1,max=100" doc:"Display name for this client"`
}

// PairDeviceInput wraps the pair request for Huma.
type PairDeviceInput struct {
	Body PairDeviceRequest
}

// PairDeviceResponse contains the issued device token.
type PairDeviceResponse struct {
	DeviceID  string    `json:"device_id" doc:"Assigned device ID"`
	Token     string    `json:"token" doc:"PASETO device token"`
	ExpiresAt time.Time `json:"expires_at" doc:"Token expiry"`
}

// PairDeviceOutput wraps the pair response for Huma.
type PairDeviceOutput struct {
	Body PairDeviceResponse
}

// SessionInput contains parameters for reading the session.
type SessionInput struct {
	Authorization string `header:"Authorization"`
}

// SessionResponse describes the device's remote identity state.
type SessionResponse struct {
	SignedIn    bool   `json:"signed_in" doc:"Whether the device has a remote identity"`
	UserID      string `json:"user_id,omitempty" doc:"Remote user ID"`
	InHousehold bool   `json:"in_household" doc:"Whether the device joined a household"`
	HouseholdID string `json:"household_id,omitempty" doc:"Household ID"`
}

// SessionOutput wraps the session response for Huma.
type SessionOutput struct {
	Body SessionResponse
}

// === Handlers ===

func (s *Server) handlePairDevice(_ context.Context, input *PairDeviceInput) (*PairDeviceOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}
	if !s.pairRateLimiter.Allow(input.Body.DeviceName) {
		return nil, huma.Error429TooManyRequests("Too many pairing attempts")
	}

	deviceID, err := id.Generate("device")
	if err != nil {
		return nil, err
	}

	token, err := s.services.Token.GenerateDeviceToken(deviceID, input.Body.DeviceName)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Device paired", "device_id", deviceID, "device_name", input.Body.DeviceName)

	return &PairDeviceOutput{
		Body: PairDeviceResponse{
			DeviceID:  deviceID,
			Token:     token,
			ExpiresAt: time.Now().Add(s.services.Token.TokenDuration()),
		},
	}, nil
}

func (s *Server) handleGetSession(ctx context.Context, input *SessionInput) (*SessionOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	identity, err := s.services.Identity.Current(ctx)
	if err != nil {
		return nil, err
	}
	household, err := s.services.Identity.Household(ctx)
	if err != nil {
		return nil, err
	}

	resp := SessionResponse{
		SignedIn:    identity != nil,
		InHousehold: household != uuid.Nil,
	}
	if identity != nil {
		resp.UserID = identity.UserID.String()
	}
	if household != uuid.Nil {
		resp.HouseholdID = household.String()
	}

	return &SessionOutput{Body: resp}, nil
}

func (s *Server) handleEnsureIdentity(ctx context.Context, input *SessionInput) (*SessionOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	identity, err := s.services.Identity.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	household, err := s.services.Identity.Household(ctx)
	if err != nil {
		return nil, err
	}

	resp := SessionResponse{
		SignedIn:    true,
		UserID:      identity.UserID.String(),
		InHousehold: household != uuid.Nil,
	}
	if household != uuid.Nil {
		resp.HouseholdID = household.String()
	}

	return &SessionOutput{Body: resp}, nil
}
