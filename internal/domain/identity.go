package domain

import "github.com/google/uuid"

// DeviceIdentity is the anonymous remote identity this device signed in as.
// Created once on first contact with the remote store and reused thereafter;
// losing it orphans the user's remote swipes.
type DeviceIdentity struct {
	UserID      uuid.UUID `json:"user_id"`
	AccessToken string    `json:"access_token"`
}
