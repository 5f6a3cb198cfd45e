package usecase

import (
	"context"

	"dezapego/internal/domain/entity"
	"dezapego/internal/domain/repository"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// FeedInput defines the filters for a public feed page. ViewerID is nil for
// anonymous requests.
type FeedInput struct {
	Category *entity.Category
	OwnerID  *uuid.UUID
	City     string
	State    string
	Order    repository.FeedOrder
	Limit    int
	Offset   int
	ViewerID *uuid.UUID
}

// --- Output DTOs ---

// FeedItem is one listing as rendered in the feed, with engagement counters
// and the viewer-specific liked flag. Liked is nil for anonymous viewers, so
// anonymous pages never carry the field.
type FeedItem struct {
	Listing *entity.Listing `json:"listing"`
	Liked   *bool           `json:"liked,omitempty"`
}

// FeedOutput is a page of feed items.
type FeedOutput struct {
	Items []*FeedItem `json:"items"`
}

// FeedUsecase defines the interface for buyer-side read operations.
type FeedUsecase interface {
	// GetFeed assembles a feed page: active non-expired listings with their
	// images, owner contact info and engagement counters.
	GetFeed(ctx context.Context, input *FeedInput) (*FeedOutput, error)

	// GetListing returns one listing with counters and owner info,
	// regardless of viewer. Removed listings read as not found for
	// non-owners.
	GetListing(ctx context.Context, listingID uuid.UUID, viewerID *uuid.UUID) (*FeedItem, error)
}
