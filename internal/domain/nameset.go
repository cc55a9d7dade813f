package domain

import "github.com/google/uuid"

// NameSet is a set row as served by the remote store. Language, style, and
// description are nullable there (legacy rows predate classification), which
// is why they are pointers here; CatalogSet is the resolved local form.
type NameSet struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	IsFree      bool      `json:"is_free"`
	Language    *string   `json:"language"`
	Style       *string   `json:"style"`
	Description *string   `json:"description"`
}

// ServerName is a name row as served by the remote store.
type ServerName struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Gender Gender    `json:"gender"`
	SetID  uuid.UUID `json:"set_id"`
}

// Card is a candidate name prepared for presentation and swiping.
// IsLocal marks entries served from the on-device index; their IDs are
// device-generated and are not submitted to the remote store as-is.
type Card struct {
	ID       string `json:"name_id"`
	Name     string `json:"name"`
	Gender   Gender `json:"gender"`
	SetTitle string `json:"set_title"`
	IsLocal  bool   `json:"is_local"`
}
