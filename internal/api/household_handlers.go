package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHouseholdRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createHousehold",
		Method:      http.MethodPost,
		Path:        "/api/v1/household",
		Summary:     "Create household",
		Description: "Creates a household owned by this device's user",
		Tags:        []string{"Household"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateHousehold)

	huma.Register(s.api, huma.Operation{
		OperationID: "joinHousehold",
		Method:      http.MethodPost,
		Path:        "/api/v1/household/join",
		Summary:     "Join household",
		Description: "Joins the household behind an invite code",
		Tags:        []string{"Household"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleJoinHousehold)

	huma.Register(s.api, huma.Operation{
		OperationID: "getInviteCode",
		Method:      http.MethodGet,
		Path:        "/api/v1/household/invite-code",
		Summary:     "Get invite code",
		Description: "Returns the code other people join this household with",
		Tags:        []string{"Household"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetInviteCode)

	huma.Register(s.api, huma.Operation{
		OperationID: "listHouseholdMembers",
		Method:      http.MethodGet,
		Path:        "/api/v1/household/members",
		Summary:     "List household members",
		Description: "Returns the household's members, oldest first",
		Tags:        []string{"Household"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListHouseholdMembers)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfile",
		Method:      http.MethodPatch,
		Path:        "/api/v1/profile",
		Summary:     "Update profile",
		Description: "Updates how this device's user appears to other members",
		Tags:        []string{"Household"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateProfile)
}

// === DTOs ===

// CreateHouseholdRequest is the request body for creating a household.
type CreateHouseholdRequest struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,min=1,max=50" doc:"Display name for the creating user"`
}

// CreateHouseholdInput wraps the create request for Huma.
type CreateHouseholdInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateHouseholdRequest
}

// HouseholdResponse describes a created or joined household.
type HouseholdResponse struct {
	HouseholdID string `json:"household_id" doc:"Household ID"`
	InviteCode  string `json:"invite_code,omitempty" doc:"Code other members join with"`
}

// HouseholdOutput wraps the household response for Huma.
type HouseholdOutput struct {
	Body HouseholdResponse
}

// JoinHouseholdRequest is the request body for joining a household.
type JoinHouseholdRequest struct {
	InviteCode  string  `json:"invite_code" validate:"required,len=6,alphanum" doc:"Six character invite code"`
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,min=1,max=50" doc:"Display name for the joining user"`
}

// JoinHouseholdInput wraps the join request for Huma.
type JoinHouseholdInput struct {
	Authorization string `header:"Authorization"`
	Body          JoinHouseholdRequest
}

// InviteCodeInput contains parameters for reading the invite code.
type InviteCodeInput struct {
	Authorization string `header:"Authorization"`
}

// InviteCodeResponse contains the household invite code.
type InviteCodeResponse struct {
	InviteCode string `json:"invite_code" doc:"Six character invite code"`
}

// InviteCodeOutput wraps the invite code response for Huma.
type InviteCodeOutput struct {
	Body InviteCodeResponse
}

// MemberResponse is one household member.
type MemberResponse struct {
	ID          string     `json:"id" doc:"Member user ID"`
	DisplayName string     `json:"display_name" doc:"Display label, never empty"`
	JoinedAt    *time.Time `json:"joined_at,omitempty" doc:"When the member joined"`
}

// ListMembersResponse contains the household members.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members" doc:"Members, oldest first"`
}

// ListMembersOutput wraps the members response for Huma.
type ListMembersOutput struct {
	Body ListMembersResponse
}

// UpdateProfileRequest is the request body for updating the profile.
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=50" doc:"New display name"`
}

// UpdateProfileInput wraps the profile update for Huma.
type UpdateProfileInput struct {
	Authorization string `header:"Authorization"`
	Body          UpdateProfileRequest
}

// === Handlers ===

func (s *Server) handleCreateHousehold(ctx context.Context, input *CreateHouseholdInput) (*HouseholdOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	result, err := s.services.Household.Create(ctx, input.Body.DisplayName)
	if err != nil {
		return nil, err
	}

	return &HouseholdOutput{
		Body: HouseholdResponse{
			HouseholdID: result.HouseholdID.String(),
			InviteCode:  result.InviteCode,
		},
	}, nil
}

func (s *Server) handleJoinHousehold(ctx context.Context, input *JoinHouseholdInput) (*HouseholdOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	result, err := s.services.Household.Join(ctx, input.Body.InviteCode, input.Body.DisplayName)
	if err != nil {
		return nil, err
	}

	return &HouseholdOutput{
		Body: HouseholdResponse{
			HouseholdID: result.HouseholdID.String(),
		},
	}, nil
}

func (s *Server) handleGetInviteCode(ctx context.Context, input *InviteCodeInput) (*InviteCodeOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	code, err := s.services.Household.InviteCode(ctx)
	if err != nil {
		return nil, err
	}

	return &InviteCodeOutput{Body: InviteCodeResponse{InviteCode: code}}, nil
}

func (s *Server) handleListHouseholdMembers(ctx context.Context, input *InviteCodeInput) (*ListMembersOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	members, err := s.services.Household.Members(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]MemberResponse, len(members))
	for i := range members {
		resp[i] = MemberResponse{
			ID:          members[i].ID.String(),
			DisplayName: members[i].DisplayLabel(),
			JoinedAt:    members[i].CreatedAt,
		}
	}

	return &ListMembersOutput{Body: ListMembersResponse{Members: resp}}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, input *UpdateProfileInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	if err := s.services.Household.SetDisplayName(ctx, input.Body.DisplayName); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Profile updated"}}, nil
}
