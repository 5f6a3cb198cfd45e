// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"

	"dezapego/internal/domain/entity"
	domainerrors "dezapego/internal/domain/errors"
	"dezapego/internal/domain/repository"
	"dezapego/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// analyticsRepository implements the domain.AnalyticsRepository interface using GORM.
type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository is the constructor for analyticsRepository.
func NewAnalyticsRepository(db *gorm.DB) repository.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// AppendEvent persists one engagement fact.
func (repo *analyticsRepository) AppendEvent(ctx context.Context, event *entity.AnalyticsEvent) error {
	eventM, err := fromAnalyticsEventDomain(event)
	if err != nil {
		return errors.Wrap(err, "failed to encode event metadata")
	}

	if err := repo.db.WithContext(ctx).Create(eventM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrListingNotFound.WrapMessage("invalid listing reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to append analytics event")
	}

	event.ID = eventM.ID
	event.CreatedAt = eventM.CreatedAt

	return nil
}

// CountByListingAndType counts events of one type for a single listing.
func (repo *analyticsRepository) CountByListingAndType(ctx context.Context, listingID uuid.UUID, eventType entity.EventType) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.AnalyticsEventModel{}).
		Where("listing_id = ? AND event_type = ?", listingID, eventType.String()).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count analytics events")
	}

	return count, nil
}

// CountByListingsAndType counts events of one type for each of the given listings.
func (repo *analyticsRepository) CountByListingsAndType(ctx context.Context, listingIDs []uuid.UUID, eventType entity.EventType) ([]repository.EventCount, error) {
	if len(listingIDs) == 0 {
		return nil, nil
	}

	var counts []repository.EventCount
	if err := repo.db.WithContext(ctx).
		Model(&model.AnalyticsEventModel{}).
		Select("listing_id, COUNT(*) AS count").
		Where("listing_id IN ? AND event_type = ?", listingIDs, eventType.String()).
		Group("listing_id").
		Scan(&counts).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count analytics events by listings")
	}

	return counts, nil
}

// --- Mapper Functions ---

// fromAnalyticsEventDomain converts a domain AnalyticsEvent to a GORM AnalyticsEventModel.
func fromAnalyticsEventDomain(data *entity.AnalyticsEvent) (*model.AnalyticsEventModel, error) {
	if data == nil {
		return nil, nil
	}

	var metadata []byte
	if len(data.Metadata) > 0 {
		encoded, err := json.Marshal(data.Metadata)
		if err != nil {
			return nil, err
		}
		metadata = encoded
	}

	return &model.AnalyticsEventModel{
		ID:        data.ID,
		EventType: data.EventType.String(),
		ListingID: data.ListingID,
		UserID:    data.UserID,
		Metadata:  metadata,
		CreatedAt: data.CreatedAt,
	}, nil
}
