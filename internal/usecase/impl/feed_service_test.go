package impl

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"dezapego/config"
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

type feedServiceMocks struct {
	listingRepo   *mockRepo.MockListingRepository
	userRepo      *mockRepo.MockUserRepository
	likeRepo      *mockRepo.MockLikeRepository
	analyticsRepo *mockRepo.MockAnalyticsRepository
	feedCache     *mockService.MockFeedCache
}

func newFeedService(t *testing.T) (usecase.FeedUsecase, *feedServiceMocks) {
	t.Helper()

	mocks := &feedServiceMocks{
		listingRepo:   mockRepo.NewMockListingRepository(t),
		userRepo:      mockRepo.NewMockUserRepository(t),
		likeRepo:      mockRepo.NewMockLikeRepository(t),
		analyticsRepo: mockRepo.NewMockAnalyticsRepository(t),
		feedCache:     mockService.NewMockFeedCache(t),
	}

	service := NewFeedService(FeedServiceParams{
		ListingRepo:   mocks.listingRepo,
		UserRepo:      mocks.userRepo,
		LikeRepo:      mocks.likeRepo,
		AnalyticsRepo: mocks.analyticsRepo,
		FeedCache:     mocks.feedCache,
		Config:        &config.Config{Redis: &config.RedisConfig{FeedTTL: time.Minute}},
		Logger:        newDiscardLogger(),
	})

	return service, mocks
}

func activeFeedListing(ownerID uuid.UUID) *entity.Listing {
	return &entity.Listing{
		ID:        uuid.New(),
		UserID:    ownerID,
		Title:     "Violão de nylon",
		Price:     250,
		Category:  entity.CategoryMusicaHobbies,
		Status:    entity.ListingStatusActive,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func expectCounters(ctx context.Context, mocks *feedServiceMocks) {
	mocks.analyticsRepo.On("CountByListingsAndType", ctx, mock.Anything, entity.EventTypeView).Return([]repository.EventCount{}, nil)
	mocks.analyticsRepo.On("CountByListingsAndType", ctx, mock.Anything, entity.EventTypeWhatsAppClick).Return([]repository.EventCount{}, nil)
	mocks.likeRepo.On("CountByListings", ctx, mock.Anything).Return([]repository.EventCount{}, nil)
}

func TestFeedService_GetFeed_AnonymousCacheMiss(t *testing.T) {
	ctx := context.Background()
	feedSvc, mocks := newFeedService(t)

	ownerID := uuid.New()
	listing := activeFeedListing(ownerID)

	mocks.feedCache.On("Get", ctx, mock.AnythingOfType("string")).Return(nil, service.ErrCacheMiss)
	mocks.listingRepo.On("FindActive", ctx, mock.MatchedBy(func(query repository.FeedQuery) bool {
		return query.Limit == defaultFeedLimit && query.Order == repository.FeedOrderRecent
	})).Return([]*entity.Listing{listing}, nil)
	expectCounters(ctx, mocks)
	mocks.userRepo.On("FindByIDs", ctx, []uuid.UUID{ownerID}).Return([]*entity.User{
		{ID: ownerID, Username: "ana", Phone: "+5541999990000", Status: entity.UserStatusActive},
	}, nil)
	mocks.feedCache.On("Set", ctx, mock.AnythingOfType("string"), mock.Anything, time.Minute).Return(nil)

	output, err := feedSvc.GetFeed(ctx, &usecase.FeedInput{})

	require.NoError(t, err)
	require.Len(t, output.Items, 1)
	assert.Nil(t, output.Items[0].Liked)
	require.NotNil(t, output.Items[0].Listing.Owner)
	assert.Equal(t, "ana", output.Items[0].Listing.Owner.Username)
}

func TestFeedService_GetFeed_AnonymousItemsCarryNoLikedFlag(t *testing.T) {
	ctx := context.Background()
	feedSvc, mocks := newFeedService(t)

	ownerID := uuid.New()
	listing := activeFeedListing(ownerID)

	var cachedPage []byte
	mocks.feedCache.On("Get", ctx, mock.AnythingOfType("string")).Return(nil, service.ErrCacheMiss)
	mocks.listingRepo.On("FindActive", ctx, mock.Anything).Return([]*entity.Listing{listing}, nil)
	expectCounters(ctx, mocks)
	mocks.userRepo.On("FindByIDs", ctx, []uuid.UUID{ownerID}).Return([]*entity.User{{ID: ownerID, Username: "ana"}}, nil)
	mocks.feedCache.On("Set", ctx, mock.AnythingOfType("string"), mock.Anything, time.Minute).
		Run(func(args mock.Arguments) {
			cachedPage = args.Get(2).([]byte)
		}).
		Return(nil)

	output, err := feedSvc.GetFeed(ctx, &usecase.FeedInput{})

	require.NoError(t, err)
	require.Len(t, output.Items, 1)

	// Neither the response nor the cached page may mention the flag, or every
	// anonymous viewer would inherit it from the cache.
	page, err := json.Marshal(output)
	require.NoError(t, err)
	assert.NotContains(t, string(page), `"liked"`)
	assert.NotContains(t, string(cachedPage), `"liked"`)
	mocks.likeRepo.AssertNotCalled(t, "FindListingIDsLikedBy", mock.Anything, mock.Anything, mock.Anything)
}

func TestFeedService_GetFeed_AnonymousCacheHit(t *testing.T) {
	ctx := context.Background()
	feedSvc, mocks := newFeedService(t)

	cached := &usecase.FeedOutput{Items: []*usecase.FeedItem{
		{Listing: activeFeedListing(uuid.New())},
	}}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	mocks.feedCache.On("Get", ctx, mock.AnythingOfType("string")).Return(payload, nil)

	output, err := feedSvc.GetFeed(ctx, &usecase.FeedInput{})

	require.NoError(t, err)
	assert.Len(t, output.Items, 1)
	mocks.listingRepo.AssertNotCalled(t, "FindActive", mock.Anything, mock.Anything)
}

func TestFeedService_GetFeed_AuthenticatedSkipsCache(t *testing.T) {
	ctx := context.Background()
	feedSvc, mocks := newFeedService(t)

	viewerID := uuid.New()
	ownerID := uuid.New()
	listing := activeFeedListing(ownerID)

	mocks.listingRepo.On("FindActive", ctx, mock.Anything).Return([]*entity.Listing{listing}, nil)
	expectCounters(ctx, mocks)
	mocks.userRepo.On("FindByIDs", ctx, []uuid.UUID{ownerID}).Return([]*entity.User{{ID: ownerID, Username: "ana"}}, nil)
	mocks.likeRepo.On("FindListingIDsLikedBy", ctx, viewerID, []uuid.UUID{listing.ID}).
		Return([]uuid.UUID{listing.ID}, nil)

	output, err := feedSvc.GetFeed(ctx, &usecase.FeedInput{ViewerID: &viewerID})

	require.NoError(t, err)
	require.Len(t, output.Items, 1)
	require.NotNil(t, output.Items[0].Liked)
	assert.True(t, *output.Items[0].Liked)
	mocks.feedCache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	mocks.feedCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFeedService_GetListing_RemovedHiddenFromStrangers(t *testing.T) {
	ctx := context.Background()
	feedSvc, mocks := newFeedService(t)

	ownerID := uuid.New()
	listing := activeFeedListing(ownerID)
	listing.Status = entity.ListingStatusRemoved

	mocks.listingRepo.On("FindByID", ctx, listing.ID).Return(listing, nil)

	_, err := feedSvc.GetListing(ctx, listing.ID, nil)

	require.ErrorIs(t, err, domainerrors.ErrListingNotFound)
}

func TestFeedService_GetListing_RemovedVisibleToOwner(t *testing.T) {
	ctx := context.Background()
	feedSvc, mocks := newFeedService(t)

	ownerID := uuid.New()
	listing := activeFeedListing(ownerID)
	listing.Status = entity.ListingStatusRemoved

	mocks.listingRepo.On("FindByID", ctx, listing.ID).Return(listing, nil)
	expectCounters(ctx, mocks)
	mocks.userRepo.On("FindByIDs", ctx, []uuid.UUID{ownerID}).Return([]*entity.User{{ID: ownerID, Username: "ana"}}, nil)
	mocks.likeRepo.On("FindListingIDsLikedBy", ctx, ownerID, []uuid.UUID{listing.ID}).Return([]uuid.UUID{}, nil)

	item, err := feedSvc.GetListing(ctx, listing.ID, &ownerID)

	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusRemoved, item.Listing.Status)
}

func TestFeedService_GetListing_LazyExpiry(t *testing.T) {
	ctx := context.Background()
	feedSvc, mocks := newFeedService(t)

	ownerID := uuid.New()
	listing := activeFeedListing(ownerID)
	listing.ExpiresAt = time.Now().Add(-time.Minute)

	mocks.listingRepo.On("FindByID", ctx, listing.ID).Return(listing, nil)
	expectCounters(ctx, mocks)
	mocks.userRepo.On("FindByIDs", ctx, []uuid.UUID{ownerID}).Return([]*entity.User{{ID: ownerID, Username: "ana"}}, nil)

	item, err := feedSvc.GetListing(ctx, listing.ID, nil)

	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusExpired, item.Listing.Status)
}
