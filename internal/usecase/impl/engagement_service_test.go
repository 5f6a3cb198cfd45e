package impl

import (
	"context"
	"testing"
	"time"

	"dezapego/internal/domain/entity"
	domainerrors "dezapego/internal/domain/errors"
	"dezapego/internal/domain/repository"
	"dezapego/internal/domain/service"
	mockRepo "dezapego/internal/mocks/repository"
	mockService "dezapego/internal/mocks/service"
	"dezapego/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type engagementServiceMocks struct {
	listingRepo   *mockRepo.MockListingRepository
	likeRepo      *mockRepo.MockLikeRepository
	analyticsRepo *mockRepo.MockAnalyticsRepository
	publisher     *mockService.MockEventPublisher
}

func newEngagementService(t *testing.T) (usecase.EngagementUsecase, *engagementServiceMocks) {
	t.Helper()

	mocks := &engagementServiceMocks{
		listingRepo:   mockRepo.NewMockListingRepository(t),
		likeRepo:      mockRepo.NewMockLikeRepository(t),
		analyticsRepo: mockRepo.NewMockAnalyticsRepository(t),
		publisher:     mockService.NewMockEventPublisher(t),
	}

	svc := NewEngagementService(EngagementServiceParams{
		ListingRepo:   mocks.listingRepo,
		LikeRepo:      mocks.likeRepo,
		AnalyticsRepo: mocks.analyticsRepo,
		Publisher:     mocks.publisher,
		Logger:        newDiscardLogger(),
	})

	return svc, mocks
}

func visibleListing(listingID uuid.UUID) *entity.Listing {
	return &entity.Listing{
		ID:        listingID,
		UserID:    uuid.New(),
		Status:    entity.ListingStatusActive,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestEngagementService_TrackEvent_Success(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newEngagementService(t)

	listingID := uuid.New()
	mocks.listingRepo.On("FindByID", ctx, listingID).Return(visibleListing(listingID), nil)
	mocks.analyticsRepo.On("AppendEvent", ctx, mock.MatchedBy(func(event *entity.AnalyticsEvent) bool {
		return event.EventType == entity.EventTypeWhatsAppClick && event.ListingID != nil && *event.ListingID == listingID
	})).Return(nil)
	mocks.publisher.On("PublishEngagementEvent", ctx, mock.MatchedBy(func(event *service.EngagementEvent) bool {
		return event.EventType == "whatsapp_click" && event.ListingID == listingID.String()
	})).Return(nil)

	err := svc.TrackEvent(ctx, &usecase.TrackEventInput{
		ListingID: listingID,
		EventType: entity.EventTypeWhatsAppClick,
	})

	require.NoError(t, err)
}

func TestEngagementService_TrackEvent_UnknownType(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEngagementService(t)

	err := svc.TrackEvent(ctx, &usecase.TrackEventInput{
		ListingID: uuid.New(),
		EventType: entity.EventType("teleport"),
	})

	require.ErrorIs(t, err, domainerrors.ErrInvalidEventType)
}

func TestEngagementService_TrackEvent_PublisherFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newEngagementService(t)

	listingID := uuid.New()
	mocks.listingRepo.On("FindByID", ctx, listingID).Return(visibleListing(listingID), nil)
	mocks.analyticsRepo.On("AppendEvent", ctx, mock.Anything).Return(nil)
	mocks.publisher.On("PublishEngagementEvent", ctx, mock.Anything).Return(assert.AnError)

	err := svc.TrackEvent(ctx, &usecase.TrackEventInput{
		ListingID: listingID,
		EventType: entity.EventTypeView,
	})

	// The appended fact is the durable record; fan-out is best-effort.
	require.NoError(t, err)
}

func TestEngagementService_TrackEvent_RemovedListing(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newEngagementService(t)

	listingID := uuid.New()
	removed := visibleListing(listingID)
	removed.Status = entity.ListingStatusRemoved
	mocks.listingRepo.On("FindByID", ctx, listingID).Return(removed, nil)

	err := svc.TrackEvent(ctx, &usecase.TrackEventInput{
		ListingID: listingID,
		EventType: entity.EventTypeView,
	})

	require.ErrorIs(t, err, domainerrors.ErrListingNotFound)
	mocks.analyticsRepo.AssertNotCalled(t, "AppendEvent", mock.Anything, mock.Anything)
}

func TestEngagementService_ToggleLike_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newEngagementService(t)

	userID := uuid.New()
	listingID := uuid.New()
	mocks.listingRepo.On("FindByID", ctx, listingID).Return(visibleListing(listingID), nil)

	mocks.likeRepo.On("Exists", ctx, userID, listingID).Return(false, nil).Once()
	mocks.likeRepo.On("Create", ctx, mock.AnythingOfType("*entity.Like")).Return(nil).Once()
	mocks.likeRepo.On("CountByListing", ctx, listingID).Return(int64(1), nil).Once()

	liked, err := svc.ToggleLike(ctx, userID, listingID)
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, int64(1), liked.LikesCount)

	mocks.likeRepo.On("Exists", ctx, userID, listingID).Return(true, nil).Once()
	mocks.likeRepo.On("Delete", ctx, userID, listingID).Return(nil).Once()
	mocks.likeRepo.On("CountByListing", ctx, listingID).Return(int64(0), nil).Once()

	unliked, err := svc.ToggleLike(ctx, userID, listingID)
	require.NoError(t, err)
	assert.False(t, unliked.Liked)
	assert.Equal(t, int64(0), unliked.LikesCount)
}

func TestEngagementService_ToggleLike_RaceCollapsesToLiked(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newEngagementService(t)

	userID := uuid.New()
	listingID := uuid.New()
	mocks.listingRepo.On("FindByID", ctx, listingID).Return(visibleListing(listingID), nil)

	// Another request created the like between the existence check and the
	// insert; the unique constraint reports it and the toggle still lands on
	// "liked".
	mocks.likeRepo.On("Exists", ctx, userID, listingID).Return(false, nil)
	mocks.likeRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateLike)
	mocks.likeRepo.On("CountByListing", ctx, listingID).Return(int64(1), nil)

	liked, err := svc.ToggleLike(ctx, userID, listingID)

	require.NoError(t, err)
	assert.True(t, liked.Liked)
}

func TestEngagementService_GetListingStats(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newEngagementService(t)

	listingID := uuid.New()
	mocks.listingRepo.On("FindByID", ctx, listingID).Return(visibleListing(listingID), nil)
	mocks.analyticsRepo.On("CountByListingAndType", ctx, listingID, entity.EventTypeView).Return(int64(10), nil)
	mocks.analyticsRepo.On("CountByListingAndType", ctx, listingID, entity.EventTypeWhatsAppClick).Return(int64(2), nil)
	mocks.likeRepo.On("CountByListing", ctx, listingID).Return(int64(4), nil)

	stats, err := svc.GetListingStats(ctx, listingID)

	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.ViewsCount)
	assert.Equal(t, int64(2), stats.WhatsAppClicks)
	assert.Equal(t, int64(4), stats.LikesCount)
}
