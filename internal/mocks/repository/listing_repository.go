package repository

import (
	"context"
	"testing"
	"time"

	"dezapego/internal/domain/entity"
	"dezapego/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockListingRepository is a testify mock of repository.ListingRepository.
type MockListingRepository struct {
	mock.Mock
}

// NewMockListingRepository creates a new mock bound to the test lifecycle.
func NewMockListingRepository(t *testing.T) *MockListingRepository {
	m := &MockListingRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockListingRepository) FindActive(ctx context.Context, query repository.FeedQuery) ([]*entity.Listing, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Listing, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Listing), args.Error(1)
}

func (m *MockListingRepository) CountActiveByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, ownerID, now)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	return m.Called(ctx, listing).Error(0)
}

func (m *MockListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	return m.Called(ctx, listing).Error(0)
}

func (m *MockListingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ListingStatus, expiresAt *time.Time) error {
	return m.Called(ctx, id, status, expiresAt).Error(0)
}

func (m *MockListingRepository) CreateImages(ctx context.Context, images []entity.ListingImage) error {
	return m.Called(ctx, images).Error(0)
}

func (m *MockListingRepository) DeleteImages(ctx context.Context, listingID uuid.UUID) ([]entity.ListingImage, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]entity.ListingImage), args.Error(1)
}
