package repository

import (
	"context"
	"testing"

	"dezapego/internal/domain/entity"
	"dezapego/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockLikeRepository is a testify mock of repository.LikeRepository.
type MockLikeRepository struct {
	mock.Mock
}

// NewMockLikeRepository creates a new mock bound to the test lifecycle.
func NewMockLikeRepository(t *testing.T) *MockLikeRepository {
	m := &MockLikeRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockLikeRepository) Create(ctx context.Context, like *entity.Like) error {
	return m.Called(ctx, like).Error(0)
}

func (m *MockLikeRepository) Delete(ctx context.Context, userID, listingID uuid.UUID) error {
	return m.Called(ctx, userID, listingID).Error(0)
}

func (m *MockLikeRepository) Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, listingID)

	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) CountByListing(ctx context.Context, listingID uuid.UUID) (int64, error) {
	args := m.Called(ctx, listingID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) CountByListings(ctx context.Context, listingIDs []uuid.UUID) ([]repository.EventCount, error) {
	args := m.Called(ctx, listingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]repository.EventCount), args.Error(1)
}

func (m *MockLikeRepository) FindListingIDsLikedBy(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID, listingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]uuid.UUID), args.Error(1)
}
