// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"dezapego/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for like persistence.
var (
	// ErrLikeNotFound is returned when the (user, listing) like does not exist.
	ErrLikeNotFound = errors.New("like not found")
	// ErrDuplicateLike is returned when the (user, listing) pair is already liked.
	ErrDuplicateLike = errors.New("listing already liked by this user")
)

// LikeRepository defines the standard operations for like persistence. The
// unique (user, listing) constraint lives in the database; Create surfaces a
// violation as ErrDuplicateLike.
type LikeRepository interface {
	// Create persists a new like for the (user, listing) pair.
	Create(ctx context.Context, like *entity.Like) error

	// Delete removes the like for the (user, listing) pair.
	Delete(ctx context.Context, userID, listingID uuid.UUID) error

	// Exists reports whether the (user, listing) pair is liked.
	Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error)

	// CountByListing counts the likes a listing has received.
	CountByListing(ctx context.Context, listingID uuid.UUID) (int64, error)

	// CountByListings counts likes for the given listings in one grouped
	// query. Listings without likes are absent from the result.
	CountByListings(ctx context.Context, listingIDs []uuid.UUID) ([]EventCount, error)

	// FindListingIDsLikedBy returns which of the given listings the user has
	// liked. Used to decorate a feed page in one query instead of N.
	FindListingIDsLikedBy(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) ([]uuid.UUID, error)
}
