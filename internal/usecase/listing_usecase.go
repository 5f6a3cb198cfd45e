package usecase

import (
	"context"
	"io"

	"dezapego/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ImageUpload is one photo submitted with a listing. The body is streamed to
// the blob store; it is never buffered whole in the use case layer.
type ImageUpload struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

// CreateListingInput defines the data required to publish a new listing.
type CreateListingInput struct {
	Title       string
	Description string
	Price       float64
	Category    entity.Category
	CEP         string
	Images      []ImageUpload
}

// UpdateListingInput defines the fields a seller may change on a listing.
// Nil pointers mean "leave unchanged".
type UpdateListingInput struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *entity.Category
}

// ListingUsecase defines the interface for seller-side listing operations.
type ListingUsecase interface {
	// CreateListing publishes a new listing, enforcing the owner's plan quota
	// atomically with the insert.
	CreateListing(ctx context.Context, ownerID uuid.UUID, input *CreateListingInput) (*entity.Listing, error)

	// UpdateListing edits an existing listing's content fields.
	UpdateListing(ctx context.Context, ownerID, listingID uuid.UUID, input *UpdateListingInput) (*entity.Listing, error)

	// ToggleSold flips a listing between active and sold. Returning from sold
	// to active does not re-check the quota.
	ToggleSold(ctx context.Context, ownerID, listingID uuid.UUID) (*entity.Listing, error)

	// RenewListing reactivates an expired (or extends an active) listing with
	// a fresh deadline, re-checking the quota.
	RenewListing(ctx context.Context, ownerID, listingID uuid.UUID) (*entity.Listing, error)

	// RemoveListing withdraws a listing permanently and releases its images.
	RemoveListing(ctx context.Context, ownerID, listingID uuid.UUID) error

	// GetMyListings returns all of the owner's listings with engagement
	// counters, newest first.
	GetMyListings(ctx context.Context, ownerID uuid.UUID) ([]*entity.Listing, error)
}
