// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"
	"io"
	"testing"
	"time"

	"dezapego/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a testify mock of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a new mock bound to the test lifecycle.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockTokenService is a testify mock of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a new mock bound to the test lifecycle.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateTokens(userID uuid.UUID) (string, string, error) {
	args := m.Called(userID)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockTokenService) HashToken(tokenString string) string {
	return m.Called(tokenString).String(0)
}

func (m *MockTokenService) GetRefreshTokenDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

// MockCEPLookup is a testify mock of service.CEPLookup.
type MockCEPLookup struct {
	mock.Mock
}

// NewMockCEPLookup creates a new mock bound to the test lifecycle.
func NewMockCEPLookup(t *testing.T) *MockCEPLookup {
	m := &MockCEPLookup{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCEPLookup) Lookup(ctx context.Context, cep string) (*service.CEPAddress, error) {
	args := m.Called(ctx, cep)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.CEPAddress), args.Error(1)
}

// MockImageStorage is a testify mock of service.ImageStorage.
type MockImageStorage struct {
	mock.Mock
}

// NewMockImageStorage creates a new mock bound to the test lifecycle.
func NewMockImageStorage(t *testing.T) *MockImageStorage {
	m := &MockImageStorage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockImageStorage) Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)

	return args.String(0), args.Error(1)
}

func (m *MockImageStorage) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// MockFeedCache is a testify mock of service.FeedCache.
type MockFeedCache struct {
	mock.Mock
}

// NewMockFeedCache creates a new mock bound to the test lifecycle.
func NewMockFeedCache(t *testing.T) *MockFeedCache {
	m := &MockFeedCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFeedCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFeedCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return m.Called(ctx, key, payload, ttl).Error(0)
}

func (m *MockFeedCache) InvalidateFeed(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockEventPublisher is a testify mock of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a new mock bound to the test lifecycle.
func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishEngagementEvent(ctx context.Context, event *service.EngagementEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}
