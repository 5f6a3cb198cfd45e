// Package repository provides testify mocks for the persistence interfaces.
package repository

import (
	"context"
	"testing"

	"dezapego/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager is a testify mock of repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a new mock bound to the test lifecycle.
func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	return args.Error(0)
}

// MockRepositoryFactory is a testify mock of repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

// NewMockRepositoryFactory creates a new mock bound to the test lifecycle.
func NewMockRepositoryFactory(t *testing.T) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) NewUserRepository() repository.UserRepository {
	return m.Called().Get(0).(repository.UserRepository)
}

func (m *MockRepositoryFactory) NewAuthRepository() repository.AuthRepository {
	return m.Called().Get(0).(repository.AuthRepository)
}

func (m *MockRepositoryFactory) NewRefreshTokenRepository() repository.RefreshTokenRepository {
	return m.Called().Get(0).(repository.RefreshTokenRepository)
}

func (m *MockRepositoryFactory) NewListingRepository() repository.ListingRepository {
	return m.Called().Get(0).(repository.ListingRepository)
}

func (m *MockRepositoryFactory) NewLikeRepository() repository.LikeRepository {
	return m.Called().Get(0).(repository.LikeRepository)
}

func (m *MockRepositoryFactory) NewAnalyticsRepository() repository.AnalyticsRepository {
	return m.Called().Get(0).(repository.AnalyticsRepository)
}

func (m *MockRepositoryFactory) NewReportRepository() repository.ReportRepository {
	return m.Called().Get(0).(repository.ReportRepository)
}
