package usecase

import (
	"context"

	"dezapego/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// TrackEventInput defines one engagement fact to record. UserID is nil for
// anonymous viewers.
type TrackEventInput struct {
	ListingID uuid.UUID
	EventType entity.EventType
	UserID    *uuid.UUID
	Metadata  map[string]string
}

// --- Output DTOs ---

// ToggleLikeOutput reports the resulting like state and the fresh count.
type ToggleLikeOutput struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// ListingStats aggregates the engagement counters of one listing.
type ListingStats struct {
	ViewsCount     int64 `json:"views_count"`
	LikesCount     int64 `json:"likes_count"`
	WhatsAppClicks int64 `json:"whatsapp_clicks"`
}

// EngagementUsecase defines the interface for engagement tracking operations.
type EngagementUsecase interface {
	// TrackEvent appends one engagement fact and fans it out to the event
	// bus. Publishing is best-effort; the fact is durable once appended.
	TrackEvent(ctx context.Context, input *TrackEventInput) error

	// ToggleLike likes the listing if not yet liked, or unlikes it
	// otherwise. Safe to call concurrently for the same pair.
	ToggleLike(ctx context.Context, userID, listingID uuid.UUID) (*ToggleLikeOutput, error)

	// GetListingStats returns the engagement counters of one listing.
	GetListingStats(ctx context.Context, listingID uuid.UUID) (*ListingStats, error)
}
