// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ListingStatus represents where a listing sits in its lifecycle.
type ListingStatus string

const (
	// ListingStatusActive means the listing is visible in the feed and counts
	// against its owner's quota.
	ListingStatusActive ListingStatus = "active"
	// ListingStatusSold means the seller marked the item as sold. The seller
	// may toggle the listing back to active ("un-sell") without a quota
	// re-check.
	ListingStatusSold ListingStatus = "sold"
	// ListingStatusExpired means the listing passed its expiration deadline.
	// Only an explicit renew brings it back to active.
	ListingStatusExpired ListingStatus = "expired"
	// ListingStatusRemoved means the listing was withdrawn by its owner or a
	// moderator. Terminal; there are no outgoing transitions.
	ListingStatusRemoved ListingStatus = "removed"
)

// String returns the string representation of the ListingStatus.
func (s ListingStatus) String() string {
	return string(s)
}

// IsValid checks if the ListingStatus is a valid value.
func (s ListingStatus) IsValid() bool {
	switch s {
	case ListingStatusActive, ListingStatusSold, ListingStatusExpired, ListingStatusRemoved:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the lifecycle allows moving from this
// status to the target status.
func (s ListingStatus) CanTransitionTo(target ListingStatus) bool {
	switch s {
	case ListingStatusActive:
		return target == ListingStatusSold || target == ListingStatusExpired || target == ListingStatusRemoved
	case ListingStatusSold:
		// "Un-sell" back to active is an explicit allowance, not a bug.
		return target == ListingStatusActive || target == ListingStatusRemoved
	case ListingStatusExpired:
		// Renew resurrects an expired listing.
		return target == ListingStatusActive || target == ListingStatusRemoved
	case ListingStatusRemoved:
		return false
	default:
		return false
	}
}

// Listing is a time-bounded classified ad offered by a profile. Buyers
// contact the seller over WhatsApp; the listing itself never carries chat
// state.
type Listing struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"user_id"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	Price        float64        `json:"price"`
	Category     Category       `json:"category"`
	CEP          string         `json:"cep,omitempty"`
	City         string         `json:"city,omitempty"`
	State        string         `json:"state,omitempty"`
	Neighborhood string         `json:"neighborhood,omitempty"`
	Status       ListingStatus  `json:"status"`
	ViewsCount   int64          `json:"views_count"`
	LikesCount   int64          `json:"likes_count"`
	ContactCount int64          `json:"whatsapp_clicks"`
	ExpiresAt    time.Time      `json:"expires_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Images       []ListingImage `json:"images,omitempty"`
	Owner        *PublicProfile `json:"profile,omitempty"`
}

// IsExpired reports whether the listing's deadline has passed at the given
// instant.
func (l *Listing) IsExpired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}

// EffectiveStatus computes the status as a reader should see it. Expiration
// is lazy: a listing stored as active whose deadline has passed reads as
// expired without a background sweep.
func (l *Listing) EffectiveStatus(now time.Time) ListingStatus {
	if l.Status == ListingStatusActive && l.IsExpired(now) {
		return ListingStatusExpired
	}

	return l.Status
}

// ListingImage is one photo attached to a listing, ordered by Position.
// The binary content lives in the blob store; only URLs are persisted here.
type ListingImage struct {
	ID           uuid.UUID `json:"id"`
	ListingID    uuid.UUID `json:"listing_id"`
	ImageURL     string    `json:"image_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
}

// Like is the unique join record between a profile and a listing. At most
// one Like exists per (user, listing) pair; liking is set membership, not a
// counter increment.
type Like struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ListingID uuid.UUID `json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}
