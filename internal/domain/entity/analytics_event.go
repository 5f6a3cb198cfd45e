// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventType classifies an engagement fact recorded against a listing.
type EventType string

const (
	// EventTypeView is recorded when a listing is opened in the feed.
	EventTypeView EventType = "view"
	// EventTypeWhatsAppClick is recorded when a buyer taps the contact button.
	EventTypeWhatsAppClick EventType = "whatsapp_click"
	// EventTypeShare is recorded when a listing is shared.
	EventTypeShare EventType = "share"
)

// String returns the string representation of the EventType.
func (t EventType) String() string {
	return string(t)
}

// IsValid checks if the EventType is a valid value.
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeView, EventTypeWhatsAppClick, EventTypeShare:
		return true
	default:
		return false
	}
}

// AnalyticsEvent is an append-only engagement fact. Displayed counters are
// COUNT(*) aggregates over these rows, never directly incremented integers,
// so concurrent writers cannot lose updates.
type AnalyticsEvent struct {
	ID        uuid.UUID         `json:"id"`
	EventType EventType         `json:"event_type"`
	ListingID *uuid.UUID        `json:"listing_id,omitempty"`
	UserID    *uuid.UUID        `json:"user_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
