package service

import (
	"context"
)

// EngagementEvent is the message fanned out whenever a listing records an
// engagement fact. Downstream consumers (ranking jobs, seller dashboards)
// subscribe to these instead of polling the database.
type EngagementEvent struct {
	RequestID  string `json:"request_id,omitempty"` // For distributed tracing
	EventType  string `json:"event_type"`
	ListingID  string `json:"listing_id,omitempty"`
	UserID     string `json:"user_id,omitempty"`
	OccurredAt int64  `json:"occurred_at"` // Unix seconds
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishEngagementEvent publishes an engagement event for async processing
	PublishEngagementEvent(ctx context.Context, event *EngagementEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
