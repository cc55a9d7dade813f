package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Household groups users who swipe toward a shared shortlist. A user belongs
// to at most one household at a time.
type Household struct {
	ID         uuid.UUID `json:"id"`
	InviteCode string    `json:"invite_code"`
}

// HouseholdMember is a single member of a household as served by the remote
// store. DisplayName is nullable there; CreatedAt comes back absent on some
// legacy rows.
type HouseholdMember struct {
	ID          uuid.UUID  `json:"id"`
	DisplayName *string    `json:"display_name"`
	CreatedAt   *time.Time `json:"created_at"`
}

// DisplayLabel returns the member's display name, falling back to a short
// identifier derived from the user ID when none is set.
func (m *HouseholdMember) DisplayLabel() string {
	if m.DisplayName != nil && *m.DisplayName != "" {
		return *m.DisplayName
	}
	return fmt.Sprintf("User %s", m.ID.String()[:8])
}

// CreateHouseholdResult is the outcome of creating a household: the new
// household ID plus the invite code other members use to join.
type CreateHouseholdResult struct {
	HouseholdID uuid.UUID `json:"household_id"`
	InviteCode  string    `json:"invite_code"`
}

// JoinHouseholdResult is the outcome of joining a household by invite code.
type JoinHouseholdResult struct {
	HouseholdID uuid.UUID `json:"household_id"`
}
