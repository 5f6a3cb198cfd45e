// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"dezapego/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for listing persistence.
var (
	// ErrListingNotFound is returned when a listing is not found.
	ErrListingNotFound = errors.New("listing not found")
	// ErrListingImageNotFound is returned when a listing image is not found.
	ErrListingImageNotFound = errors.New("listing image not found")
)

// FeedOrder selects how a feed page is sorted.
type FeedOrder string

const (
	// FeedOrderRecent sorts newest first. This is the default.
	FeedOrderRecent FeedOrder = "recent"
	// FeedOrderPopular sorts by like count, newest first among ties.
	FeedOrderPopular FeedOrder = "popular"
)

// FeedQuery carries the filters for a public feed page. Only listings that
// are active and not past their deadline at Now are returned.
type FeedQuery struct {
	Category *entity.Category // nil means all categories
	OwnerID  *uuid.UUID       // nil means all sellers
	City     string           // empty means all cities
	State    string           // empty means all states
	Order    FeedOrder
	Limit    int
	Offset   int
	Now      time.Time
}

// ListingRepository defines the standard operations for listing persistence.
type ListingRepository interface {
	// FindByID retrieves a single listing with its images, regardless of status.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)

	// FindActive retrieves a feed page of publicly visible listings with their
	// images, applying the query's filters and ordering.
	FindActive(ctx context.Context, query FeedQuery) ([]*entity.Listing, error)

	// FindByOwner retrieves all of a seller's listings, newest first,
	// including sold, expired and removed ones.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Listing, error)

	// CountActiveByOwner counts the owner's listings that are active and not
	// past their deadline at the given instant. Used for quota checks, so it
	// must run inside the same transaction as the insert it gates.
	CountActiveByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) (int64, error)

	// Create persists a new listing entity to the storage.
	Create(ctx context.Context, listing *entity.Listing) error

	// Update modifies an existing listing entity in the storage.
	Update(ctx context.Context, listing *entity.Listing) error

	// UpdateStatus changes only the lifecycle status and, when renewing, the
	// expiration deadline.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ListingStatus, expiresAt *time.Time) error

	// CreateImages persists the image records attached to a listing.
	CreateImages(ctx context.Context, images []entity.ListingImage) error

	// DeleteImages removes all image records of a listing and returns them so
	// the caller can release the stored blobs.
	DeleteImages(ctx context.Context, listingID uuid.UUID) ([]entity.ListingImage, error)
}
