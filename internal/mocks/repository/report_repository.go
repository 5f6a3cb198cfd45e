package repository

import (
	"context"
	"testing"

	"dezapego/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockReportRepository is a testify mock of repository.ReportRepository.
type MockReportRepository struct {
	mock.Mock
}

// NewMockReportRepository creates a new mock bound to the test lifecycle.
func NewMockReportRepository(t *testing.T) *MockReportRepository {
	m := &MockReportRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockReportRepository) Create(ctx context.Context, report *entity.Report) error {
	return m.Called(ctx, report).Error(0)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Report), args.Error(1)
}

func (m *MockReportRepository) FindByReporter(ctx context.Context, reporterID uuid.UUID) ([]*entity.Report, error) {
	args := m.Called(ctx, reporterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Report), args.Error(1)
}

func (m *MockReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReportStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
