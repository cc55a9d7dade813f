package domain

import "github.com/google/uuid"

// Decision is a user's verdict on a single name.
type Decision string

// Swipe decisions.
const (
	DecisionLike    Decision = "like"
	DecisionDismiss Decision = "dismiss"
)

// Valid reports whether the decision is one of the known values.
func (d Decision) Valid() bool {
	return d == DecisionLike || d == DecisionDismiss
}

// SwipeRecord is a decision row in the remote store. Append-only there;
// removal happens only through undo.
type SwipeRecord struct {
	HouseholdID uuid.UUID `json:"household_id"`
	UserID      uuid.UUID `json:"user_id"`
	NameID      uuid.UUID `json:"name_id"`
	Decision    Decision  `json:"decision"`
}

// LikedName is an entry in the likes list. NameID is a server UUID for
// remotely resolved names or a device-generated ID for offline likes.
type LikedName struct {
	NameID   string `json:"name_id"`
	Name     string `json:"name"`
	Gender   Gender `json:"gender"`
	SetTitle string `json:"set_title"`
}

// SwipeCounts aggregates a user's decisions, combining local and remote
// tallies.
type SwipeCounts struct {
	Likes     int `json:"likes"`
	Dismisses int `json:"dismisses"`
}

// MatchRow is a matched name within a household: one liked by at least two
// distinct members. Matches are derived by the remote store, never persisted
// locally.
type MatchRow struct {
	NameID     uuid.UUID `json:"name_id"`
	Name       string    `json:"name"`
	Gender     Gender    `json:"gender"`
	LikesCount int       `json:"likes_count"`
}
