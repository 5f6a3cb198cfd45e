// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"dezapego/internal/domain/entity"
	domainerrors "dezapego/internal/domain/errors"
	"dezapego/internal/domain/repository"
	"dezapego/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// likeRepository implements the domain.LikeRepository interface using GORM.
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository is the constructor for likeRepository.
func NewLikeRepository(db *gorm.DB) repository.LikeRepository {
	return &likeRepository{db: db}
}

// Create persists a new like for the (user, listing) pair. The unique index
// on the pair turns a concurrent double-like into ErrDuplicateLike.
func (repo *likeRepository) Create(ctx context.Context, like *entity.Like) error {
	likeM := fromLikeDomain(like)

	if err := repo.db.WithContext(ctx).Create(likeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateLike
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrListingNotFound.WrapMessage("invalid listing reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create like")
	}

	like.ID = likeM.ID
	like.CreatedAt = likeM.CreatedAt

	return nil
}

// Delete removes the like for the (user, listing) pair.
func (repo *likeRepository) Delete(ctx context.Context, userID, listingID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&model.LikeModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete like")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLikeNotFound
	}

	return nil
}

// Exists reports whether the (user, listing) pair is liked.
func (repo *likeRepository) Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.LikeModel{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check like existence")
	}

	return count > 0, nil
}

// CountByListing counts the likes a listing has received.
func (repo *likeRepository) CountByListing(ctx context.Context, listingID uuid.UUID) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.LikeModel{}).
		Where("listing_id = ?", listingID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count likes by listing")
	}

	return count, nil
}

// CountByListings counts likes per listing with a single grouped query.
func (repo *likeRepository) CountByListings(ctx context.Context, listingIDs []uuid.UUID) ([]repository.EventCount, error) {
	if len(listingIDs) == 0 {
		return nil, nil
	}

	var counts []repository.EventCount
	if err := repo.db.WithContext(ctx).
		Model(&model.LikeModel{}).
		Select("listing_id, COUNT(*) AS count").
		Where("listing_id IN ?", listingIDs).
		Group("listing_id").
		Scan(&counts).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count likes by listings")
	}

	return counts, nil
}

// FindListingIDsLikedBy returns which of the given listings the user has liked.
func (repo *likeRepository) FindListingIDsLikedBy(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(listingIDs) == 0 {
		return nil, nil
	}

	var likedIDs []uuid.UUID
	if err := repo.db.WithContext(ctx).
		Model(&model.LikeModel{}).
		Where("user_id = ? AND listing_id IN ?", userID, listingIDs).
		Pluck("listing_id", &likedIDs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find liked listing ids")
	}

	return likedIDs, nil
}

// --- Mapper Functions ---

// fromLikeDomain converts a domain Like entity to a GORM LikeModel.
func fromLikeDomain(data *entity.Like) *model.LikeModel {
	if data == nil {
		return nil
	}

	return &model.LikeModel{
		ID:        data.ID,
		UserID:    data.UserID,
		ListingID: data.ListingID,
		CreatedAt: data.CreatedAt,
	}
}
