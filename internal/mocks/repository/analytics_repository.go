package repository

import (
	"context"
	"testing"

	"dezapego/internal/domain/entity"
	"dezapego/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAnalyticsRepository is a testify mock of repository.AnalyticsRepository.
type MockAnalyticsRepository struct {
	mock.Mock
}

// NewMockAnalyticsRepository creates a new mock bound to the test lifecycle.
func NewMockAnalyticsRepository(t *testing.T) *MockAnalyticsRepository {
	m := &MockAnalyticsRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAnalyticsRepository) AppendEvent(ctx context.Context, event *entity.AnalyticsEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockAnalyticsRepository) CountByListingAndType(ctx context.Context, listingID uuid.UUID, eventType entity.EventType) (int64, error) {
	args := m.Called(ctx, listingID, eventType)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepository) CountByListingsAndType(ctx context.Context, listingIDs []uuid.UUID, eventType entity.EventType) ([]repository.EventCount, error) {
	args := m.Called(ctx, listingIDs, eventType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]repository.EventCount), args.Error(1)
}
