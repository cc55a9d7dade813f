// Package notify delivers push signals to household members through the
// hosted push function. Delivery is fire and forget: a failed push never
// fails the operation that triggered it.
package notify

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Notifier invokes the push edge function. A nil FunctionURL or disabled
// config turns every call into a no-op.
type Notifier struct {
	logger      *slog.Logger
	enabled     bool
	functionURL string
	anonKey     string
	httpClient  *http.Client
}

// New creates a notifier. Pushes are disabled when enabled is false or the
// URL is empty.
func New(logger *slog.Logger, enabled bool, functionURL, anonKey string) *Notifier {
	return &Notifier{
		logger:      logger,
		enabled:     enabled && functionURL != "",
		functionURL: functionURL,
		anonKey:     anonKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// pushRequest is the edge function's envelope. ExcludeUserID keeps the actor
// from being notified about their own action.
type pushRequest struct {
	Type          string         `json:"type"`
	HouseholdID   string         `json:"household_id"`
	ExcludeUserID string         `json:"exclude_user_id"`
	Payload       map[string]any `json:"payload"`
}

// MatchFound notifies the other household members that a name matched.
func (n *Notifier) MatchFound(ctx context.Context, householdID, actorID uuid.UUID, name string) {
	n.send(ctx, pushRequest{
		Type:          "match",
		HouseholdID:   householdID.String(),
		ExcludeUserID: actorID.String(),
		Payload:       map[string]any{"name": name},
	})
}

// MemberJoined notifies the household that a new member joined.
func (n *Notifier) MemberJoined(ctx context.Context, householdID, actorID uuid.UUID, memberName string) {
	n.send(ctx, pushRequest{
		Type:          "new_member",
		HouseholdID:   householdID.String(),
		ExcludeUserID: actorID.String(),
		Payload:       map[string]any{"member_name": memberName},
	})
}

func (n *Notifier) send(ctx context.Context, push pushRequest) {
	if !n.enabled {
		return
	}

	data, err := json.Marshal(push)
	if err != nil {
		n.logger.Warn("Failed to encode push request", "type", push.Type, "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.functionURL, bytes.NewReader(data))
	if err != nil {
		n.logger.Warn("Failed to build push request", "type", push.Type, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.anonKey)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.Warn("Push delivery failed", "type", push.Type, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		n.logger.Warn("Push function rejected request", "type", push.Type, "status", resp.StatusCode)
		return
	}

	n.logger.Debug("Push delivered", "type", push.Type, "household_id", push.HouseholdID)
}
