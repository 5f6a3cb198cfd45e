// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"dezapego/internal/domain/entity"
	domainerrors "dezapego/internal/domain/errors"
	"dezapego/internal/domain/repository"
	"dezapego/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// listingRepository implements the domain.ListingRepository interface using GORM.
type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository is the constructor for listingRepository.
func NewListingRepository(db *gorm.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

// FindByID retrieves a single listing with its images, regardless of status.
func (repo *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	var listingM model.ListingModel
	if err := repo.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&listingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrListingNotFound
		}

		return nil, errors.Wrap(err, "failed to find listing by id")
	}

	return toListingDomain(&listingM), nil
}

// FindActive retrieves a feed page of publicly visible listings with their images.
// A listing stored as active but past its deadline is filtered out here, which
// is what makes expiration lazy instead of sweep-based.
func (repo *listingRepository) FindActive(ctx context.Context, query repository.FeedQuery) ([]*entity.Listing, error) {
	tx := repo.db.WithContext(ctx).
		Model(&model.ListingModel{}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("status = ?", entity.ListingStatusActive.String()).
		Where("expires_at > ?", query.Now)

	if query.Category != nil {
		tx = tx.Where("category = ?", query.Category.String())
	}
	if query.OwnerID != nil {
		tx = tx.Where("user_id = ?", *query.OwnerID)
	}
	if query.City != "" {
		tx = tx.Where("city = ?", query.City)
	}
	if query.State != "" {
		tx = tx.Where("state = ?", query.State)
	}

	switch query.Order {
	case repository.FeedOrderPopular:
		// Like counts live in a separate table; aggregate them in the order
		// clause so popularity never depends on a stale counter column.
		tx = tx.Order("(SELECT COUNT(*) FROM likes WHERE likes.listing_id = listings.id) DESC").
			Order("created_at DESC")
	default:
		tx = tx.Order("created_at DESC")
	}

	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}
	if query.Offset > 0 {
		tx = tx.Offset(query.Offset)
	}

	var listingModels []model.ListingModel
	if err := tx.Find(&listingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find active listings")
	}

	listings := make([]*entity.Listing, 0, len(listingModels))
	for i := range listingModels {
		listings = append(listings, toListingDomain(&listingModels[i]))
	}

	return listings, nil
}

// FindByOwner retrieves all of a seller's listings, newest first.
func (repo *listingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Listing, error) {
	var listingModels []model.ListingModel
	if err := repo.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&listingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find listings by owner")
	}

	listings := make([]*entity.Listing, 0, len(listingModels))
	for i := range listingModels {
		listings = append(listings, toListingDomain(&listingModels[i]))
	}

	return listings, nil
}

// CountActiveByOwner counts the owner's non-expired active listings at the given instant.
func (repo *listingRepository) CountActiveByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ListingModel{}).
		Where("user_id = ?", ownerID).
		Where("status = ?", entity.ListingStatusActive.String()).
		Where("expires_at > ?", now).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count active listings by owner")
	}

	return count, nil
}

// Create persists a new listing entity, including its images, to the database.
func (repo *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	listingM := fromListingDomain(listing)

	if err := repo.db.WithContext(ctx).Create(listingM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrListingNotFound.WrapMessage("invalid owner reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required listing information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create listing")
	}

	// Update the listing entity with the generated ID and timestamps
	listing.ID = listingM.ID
	listing.CreatedAt = listingM.CreatedAt
	listing.UpdatedAt = listingM.UpdatedAt
	for i := range listingM.Images {
		listing.Images[i].ID = listingM.Images[i].ID
		listing.Images[i].ListingID = listingM.ID
	}

	return nil
}

// Update modifies an existing listing entity in the database. Images are
// managed through CreateImages/DeleteImages, not here.
func (repo *listingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	listingM := fromListingDomain(listing)
	listingM.Images = nil

	if err := repo.db.WithContext(ctx).
		Omit("Images").
		Save(listingM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required listing information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update listing")
	}

	listing.UpdatedAt = listingM.UpdatedAt

	return nil
}

// UpdateStatus changes only the lifecycle status and, when renewing, the expiration deadline.
func (repo *listingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ListingStatus, expiresAt *time.Time) error {
	updates := map[string]any{
		"status":     status.String(),
		"updated_at": time.Now(),
	}
	if expiresAt != nil {
		updates["expires_at"] = *expiresAt
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ListingModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update listing status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrListingNotFound
	}

	return nil
}

// CreateImages persists the image records attached to a listing.
func (repo *listingRepository) CreateImages(ctx context.Context, images []entity.ListingImage) error {
	if len(images) == 0 {
		return nil
	}

	imageModels := make([]model.ListingImageModel, 0, len(images))
	for i := range images {
		imageModels = append(imageModels, *fromListingImageDomain(&images[i]))
	}

	if err := repo.db.WithContext(ctx).Create(&imageModels).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrListingNotFound.WrapMessage("invalid listing reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create listing images")
	}

	for i := range imageModels {
		images[i].ID = imageModels[i].ID
	}

	return nil
}

// DeleteImages removes all image records of a listing and returns them so the
// caller can release the stored blobs.
func (repo *listingRepository) DeleteImages(ctx context.Context, listingID uuid.UUID) ([]entity.ListingImage, error) {
	var imageModels []model.ListingImageModel
	if err := repo.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Find(&imageModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load listing images")
	}

	if len(imageModels) == 0 {
		return nil, nil
	}

	if err := repo.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Delete(&model.ListingImageModel{}).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to delete listing images")
	}

	images := make([]entity.ListingImage, 0, len(imageModels))
	for i := range imageModels {
		images = append(images, *toListingImageDomain(&imageModels[i]))
	}

	return images, nil
}

// --- Mapper Functions ---

// toListingDomain converts a GORM ListingModel to a domain Listing entity.
// Engagement counters are left at zero; the use case layer fills them from
// the analytics aggregates.
func toListingDomain(data *model.ListingModel) *entity.Listing {
	if data == nil {
		return nil
	}

	images := make([]entity.ListingImage, 0, len(data.Images))
	for i := range data.Images {
		images = append(images, *toListingImageDomain(&data.Images[i]))
	}

	return &entity.Listing{
		ID:           data.ID,
		UserID:       data.UserID,
		Title:        data.Title,
		Description:  data.Description,
		Price:        data.Price,
		Category:     entity.Category(data.Category),
		CEP:          data.CEP,
		City:         data.City,
		State:        data.State,
		Neighborhood: data.Neighborhood,
		Status:       entity.ListingStatus(data.Status),
		ExpiresAt:    data.ExpiresAt,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
		Images:       images,
	}
}

// fromListingDomain converts a domain Listing entity to a GORM ListingModel for persistence.
func fromListingDomain(data *entity.Listing) *model.ListingModel {
	if data == nil {
		return nil
	}

	images := make([]model.ListingImageModel, 0, len(data.Images))
	for i := range data.Images {
		images = append(images, *fromListingImageDomain(&data.Images[i]))
	}

	return &model.ListingModel{
		ID:           data.ID,
		UserID:       data.UserID,
		Title:        data.Title,
		Description:  data.Description,
		Price:        data.Price,
		Category:     data.Category.String(),
		CEP:          data.CEP,
		City:         data.City,
		State:        data.State,
		Neighborhood: data.Neighborhood,
		Status:       data.Status.String(),
		ExpiresAt:    data.ExpiresAt,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
		Images:       images,
	}
}

// toListingImageDomain converts a GORM ListingImageModel to a domain ListingImage entity.
func toListingImageDomain(data *model.ListingImageModel) *entity.ListingImage {
	if data == nil {
		return nil
	}

	return &entity.ListingImage{
		ID:           data.ID,
		ListingID:    data.ListingID,
		ImageURL:     data.ImageURL,
		ThumbnailURL: data.ThumbnailURL,
		Position:     data.Position,
		CreatedAt:    data.CreatedAt,
	}
}

// fromListingImageDomain converts a domain ListingImage entity to a GORM ListingImageModel.
func fromListingImageDomain(data *entity.ListingImage) *model.ListingImageModel {
	if data == nil {
		return nil
	}

	return &model.ListingImageModel{
		ID:           data.ID,
		ListingID:    data.ListingID,
		ImageURL:     data.ImageURL,
		ThumbnailURL: data.ThumbnailURL,
		Position:     data.Position,
		CreatedAt:    data.CreatedAt,
	}
}
