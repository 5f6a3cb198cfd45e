package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"dezapego/config"
	"dezapego/internal/domain/entity"
	domainerrors "dezapego/internal/domain/errors"
	"dezapego/internal/domain/repository"
	mockRepo "dezapego/internal/mocks/repository"
	mockService "dezapego/internal/mocks/service"
	"dezapego/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newListingTestConfig() *config.Config {
	return &config.Config{
		Storage: &config.StorageConfig{
			PublicBaseURL:       "https://cdn.test",
			MaxImageBytes:       1 << 20,
			MaxImagesPerListing: 3,
		},
	}
}

func newListingService(t *testing.T, factory repository.RepositoryFactory) (usecase.ListingUsecase, *mockRepo.MockListingRepository, *mockRepo.MockUserRepository, *mockService.MockImageStorage, *mockService.MockFeedCache) {
	t.Helper()

	listingRepo := mockRepo.NewMockListingRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	analyticsRepo := mockRepo.NewMockAnalyticsRepository(t)
	likeRepo := mockRepo.NewMockLikeRepository(t)
	imageStorage := mockService.NewMockImageStorage(t)
	feedCache := mockService.NewMockFeedCache(t)
	cepLookup := mockService.NewMockCEPLookup(t)

	service := NewListingService(ListingServiceParams{
		TxManager:     &passthroughTxManager{factory: factory},
		ListingRepo:   listingRepo,
		UserRepo:      userRepo,
		AnalyticsRepo: analyticsRepo,
		LikeRepo:      likeRepo,
		ImageStorage:  imageStorage,
		FeedCache:     feedCache,
		CEPLookup:     cepLookup,
		Config:        newListingTestConfig(),
		Logger:        newDiscardLogger(),
	})

	return service, listingRepo, userRepo, imageStorage, feedCache
}

func TestListingService_CreateListing_Success(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	factory := mockRepo.NewMockRepositoryFactory(t)
	txListingRepo := mockRepo.NewMockListingRepository(t)
	factory.On("NewListingRepository").Return(txListingRepo)

	service, _, userRepo, imageStorage, feedCache := newListingService(t, factory)
	factory.On("NewUserRepository").Return(userRepo)

	owner := &entity.User{
		ID:     ownerID,
		Plan:   entity.PlanFree,
		Status: entity.UserStatusActive,
		City:   "Curitiba",
		State:  "PR",
	}
	userRepo.On("FindByID", ctx, ownerID).Return(owner, nil)
	userRepo.On("FindByIDForUpdate", ctx, ownerID).Return(owner, nil)

	imageStorage.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "listings/")
	}), "image/jpeg", mock.Anything).Return("https://cdn.test/listings/x/y", nil)

	txListingRepo.On("CountActiveByOwner", ctx, ownerID, mock.AnythingOfType("time.Time")).Return(int64(1), nil)
	txListingRepo.On("Create", ctx, mock.AnythingOfType("*entity.Listing")).Return(nil)
	txListingRepo.On("CreateImages", ctx, mock.AnythingOfType("[]entity.ListingImage")).Return(nil)
	feedCache.On("InvalidateFeed", ctx).Return(nil)

	listing, err := service.CreateListing(ctx, ownerID, &usecase.CreateListingInput{
		Title:    "Bicicleta aro 29",
		Price:    450,
		Category: entity.CategoryEsportes,
		Images: []usecase.ImageUpload{
			{ContentType: "image/jpeg", Size: 1024, Body: strings.NewReader("jpeg-bytes")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusActive, listing.Status)
	assert.Equal(t, "Curitiba", listing.City)
	assert.Len(t, listing.Images, 1)
	assert.NotNil(t, listing.Owner)
	assert.WithinDuration(t, time.Now().Add(entity.PlanFree.ListingDuration()), listing.ExpiresAt, 5*time.Second)
}

func TestListingService_CreateListing_QuotaExceeded(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	factory := mockRepo.NewMockRepositoryFactory(t)
	txListingRepo := mockRepo.NewMockListingRepository(t)
	factory.On("NewListingRepository").Return(txListingRepo)

	service, _, userRepo, _, _ := newListingService(t, factory)
	factory.On("NewUserRepository").Return(userRepo)

	owner := &entity.User{ID: ownerID, Plan: entity.PlanFree, Status: entity.UserStatusActive}
	userRepo.On("FindByID", ctx, ownerID).Return(owner, nil)
	userRepo.On("FindByIDForUpdate", ctx, ownerID).Return(owner, nil)

	// Free plan allows 3 active listings; the owner already holds all 3.
	txListingRepo.On("CountActiveByOwner", ctx, ownerID, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	listing, err := service.CreateListing(ctx, ownerID, &usecase.CreateListingInput{
		Title:    "Sofá 3 lugares",
		Price:    300,
		Category: entity.CategoryMoveis,
	})

	require.Error(t, err)
	assert.Nil(t, listing)

	var quotaErr *domainerrors.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, int64(3), quotaErr.Current)
	assert.Equal(t, int64(3), quotaErr.Limit)
	txListingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListingService_CreateListing_BlockedAccount(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	factory := mockRepo.NewMockRepositoryFactory(t)

	service, _, userRepo, _, _ := newListingService(t, factory)

	owner := &entity.User{ID: ownerID, Plan: entity.PlanFree, Status: entity.UserStatusSuspended}
	userRepo.On("FindByID", ctx, ownerID).Return(owner, nil)

	_, err := service.CreateListing(ctx, ownerID, &usecase.CreateListingInput{
		Title:    "Mesa de jantar",
		Price:    100,
		Category: entity.CategoryMoveis,
	})

	require.ErrorIs(t, err, domainerrors.ErrAccountBlocked)
}

func TestListingService_CreateListing_RejectsInvalidContent(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	tests := []struct {
		name  string
		input *usecase.CreateListingInput
	}{
		{
			name:  "title too short",
			input: &usecase.CreateListingInput{Title: "Mesa", Price: 100, Category: entity.CategoryMoveis},
		},
		{
			name:  "title too long",
			input: &usecase.CreateListingInput{Title: strings.Repeat("a", 81), Price: 100, Category: entity.CategoryMoveis},
		},
		{
			name: "description too long",
			input: &usecase.CreateListingInput{
				Title:       "Mesa de jantar",
				Description: strings.Repeat("x", 501),
				Price:       100,
				Category:    entity.CategoryMoveis,
			},
		},
		{
			name:  "zero price",
			input: &usecase.CreateListingInput{Title: "Mesa de jantar", Price: 0, Category: entity.CategoryMoveis},
		},
		{
			name:  "negative price",
			input: &usecase.CreateListingInput{Title: "Mesa de jantar", Price: -10, Category: entity.CategoryMoveis},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := mockRepo.NewMockRepositoryFactory(t)
			service, _, userRepo, _, _ := newListingService(t, factory)

			_, err := service.CreateListing(ctx, ownerID, tt.input)

			require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		})
	}
}

func TestListingService_CreateListing_QuotaUsesLockedPlan(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	factory := mockRepo.NewMockRepositoryFactory(t)
	txListingRepo := mockRepo.NewMockListingRepository(t)
	factory.On("NewListingRepository").Return(txListingRepo)

	service, _, userRepo, _, feedCache := newListingService(t, factory)
	factory.On("NewUserRepository").Return(userRepo)

	// The plan changed between the initial read and the transaction; the
	// locked read decides both the limit and the deadline.
	userRepo.On("FindByID", ctx, ownerID).
		Return(&entity.User{ID: ownerID, Plan: entity.PlanFree, Status: entity.UserStatusActive}, nil)
	userRepo.On("FindByIDForUpdate", ctx, ownerID).
		Return(&entity.User{ID: ownerID, Plan: entity.PlanBasic, Status: entity.UserStatusActive}, nil)

	txListingRepo.On("CountActiveByOwner", ctx, ownerID, mock.AnythingOfType("time.Time")).Return(int64(5), nil)
	txListingRepo.On("Create", ctx, mock.AnythingOfType("*entity.Listing")).Return(nil)
	feedCache.On("InvalidateFeed", ctx).Return(nil)

	listing, err := service.CreateListing(ctx, ownerID, &usecase.CreateListingInput{
		Title:    "Cadeira de escritório",
		Price:    200,
		Category: entity.CategoryMoveis,
	})

	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(entity.PlanBasic.ListingDuration()), listing.ExpiresAt, 5*time.Second)
}

func TestListingService_UpdateListing_RejectsNonPositivePrice(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	listingID := uuid.New()
	factory := mockRepo.NewMockRepositoryFactory(t)
	txListingRepo := mockRepo.NewMockListingRepository(t)

	service, _, _, _, _ := newListingService(t, factory)

	price := 0.0
	_, err := service.UpdateListing(ctx, ownerID, listingID, &usecase.UpdateListingInput{Price: &price})

	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	txListingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestListingService_CreateListing_TooManyImages(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	factory := mockRepo.NewMockRepositoryFactory(t)

	service, _, _, _, _ := newListingService(t, factory)

	uploads := make([]usecase.ImageUpload, 4)
	for i := range uploads {
		uploads[i] = usecase.ImageUpload{ContentType: "image/jpeg", Size: 10, Body: strings.NewReader("x")}
	}

	_, err := service.CreateListing(ctx, ownerID, &usecase.CreateListingInput{
		Title:    "Guarda-roupa",
		Price:    900,
		Category: entity.CategoryMoveis,
		Images:   uploads,
	})

	require.ErrorIs(t, err, domainerrors.ErrImageLimitExceeded)
}

func TestListingService_ToggleSold_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	listingID := uuid.New()
	factory := mockRepo.NewMockRepositoryFactory(t)
	txListingRepo := mockRepo.NewMockListingRepository(t)
	factory.On("NewListingRepository").Return(txListingRepo)

	service, _, _, _, feedCache := newListingService(t, factory)
	feedCache.On("InvalidateFeed", ctx).Return(nil)

	active := &entity.Listing{
		ID:        listingID,
		UserID:    ownerID,
		Status:    entity.ListingStatusActive,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	txListingRepo.On("FindByID", ctx, listingID).Return(active, nil).Once()
	txListingRepo.On("UpdateStatus", ctx, listingID, entity.ListingStatusSold, (*time.Time)(nil)).Return(nil).Once()

	sold, err := service.ToggleSold(ctx, ownerID, listingID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusSold, sold.Status)

	// Un-sell goes straight back to active without touching the quota.
	soldCopy := *sold
	txListingRepo.On("FindByID", ctx, listingID).Return(&soldCopy, nil).Once()
	txListingRepo.On("UpdateStatus", ctx, listingID, entity.ListingStatusActive, (*time.Time)(nil)).Return(nil).Once()

	unsold, err := service.ToggleSold(ctx, ownerID, listingID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusActive, unsold.Status)
	txListingRepo.AssertNotCalled(t, "CountActiveByOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestListingService_ToggleSold_OwnershipViolation(t *testing.T) {
	ctx := context.Background()
	listingID := uuid.New()
	factory := mockRepo.NewMockRepositoryFactory(t)
	txListingRepo := mockRepo.NewMockListingRepository(t)
	factory.On("NewListingRepository").Return(txListingRepo)

	service, _, _, _, _ := newListingService(t, factory)

	listing := &entity.Listing{ID: listingID, UserID: uuid.New(), Status: entity.ListingStatusActive, ExpiresAt: time.Now().Add(time.Hour)}
	txListingRepo.On("FindByID", ctx, listingID).Return(listing, nil)

	_, err := service.ToggleSold(ctx, uuid.New(), listingID)

	require.ErrorIs(t, err, domainerrors.ErrListingOwnershipViolation)
}

func TestListingService_RenewListing_ExpiredChecksQuota(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	listingID := uuid.New()
	factory := mockRepo.NewMockRepositoryFactory(t)
	txListingRepo := mockRepo.NewMockListingRepository(t)
	factory.On("NewListingRepository").Return(txListingRepo)

	service, _, userRepo, _, feedCache := newListingService(t, factory)
	factory.On("NewUserRepository").Return(userRepo)

	owner := &entity.User{ID: ownerID, Plan: entity.PlanBasic, Status: entity.UserStatusActive}
	userRepo.On("FindByIDForUpdate", ctx, ownerID).Return(owner, nil)

	expired := &entity.Listing{
		ID:        listingID,
		UserID:    ownerID,
		Status:    entity.ListingStatusActive,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	txListingRepo.On("FindByID", ctx, listingID).Return(expired, nil)
	txListingRepo.On("CountActiveByOwner", ctx, ownerID, mock.AnythingOfType("time.Time")).Return(int64(2), nil)
	txListingRepo.On("UpdateStatus", ctx, listingID, entity.ListingStatusActive, mock.AnythingOfType("*time.Time")).Return(nil)
	feedCache.On("InvalidateFeed", ctx).Return(nil)

	renewed, err := service.RenewListing(ctx, ownerID, listingID)

	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusActive, renewed.Status)
	assert.WithinDuration(t, time.Now().Add(entity.PlanBasic.ListingDuration()), renewed.ExpiresAt, 5*time.Second)
}

func TestListingService_RenewListing_QuotaFull(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	listingID := uuid.New()
	factory := mockRepo.NewMockRepositoryFactory(t)
	txListingRepo := mockRepo.NewMockListingRepository(t)
	factory.On("NewListingRepository").Return(txListingRepo)

	service, _, userRepo, _, _ := newListingService(t, factory)
	factory.On("NewUserRepository").Return(userRepo)

	owner := &entity.User{ID: ownerID, Plan: entity.PlanFree, Status: entity.UserStatusActive}
	userRepo.On("FindByIDForUpdate", ctx, ownerID).Return(owner, nil)

	expired := &entity.Listing{
		ID:        listingID,
		UserID:    ownerID,
		Status:    entity.ListingStatusExpired,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	txListingRepo.On("FindByID", ctx, listingID).Return(expired, nil)
	txListingRepo.On("CountActiveByOwner", ctx, ownerID, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	_, err := service.RenewListing(ctx, ownerID, listingID)

	var quotaErr *domainerrors.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	txListingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListingService_RemoveListing_ReleasesBlobs(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	listingID := uuid.New()
	factory := mockRepo.NewMockRepositoryFactory(t)
	txListingRepo := mockRepo.NewMockListingRepository(t)
	factory.On("NewListingRepository").Return(txListingRepo)

	service, _, _, imageStorage, feedCache := newListingService(t, factory)

	listing := &entity.Listing{ID: listingID, UserID: ownerID, Status: entity.ListingStatusActive, ExpiresAt: time.Now().Add(time.Hour)}
	txListingRepo.On("FindByID", ctx, listingID).Return(listing, nil)
	txListingRepo.On("UpdateStatus", ctx, listingID, entity.ListingStatusRemoved, (*time.Time)(nil)).Return(nil)
	txListingRepo.On("DeleteImages", ctx, listingID).Return([]entity.ListingImage{
		{ListingID: listingID, ImageURL: "https://cdn.test/listings/a/b"},
	}, nil)
	imageStorage.On("Remove", ctx, "listings/a/b").Return(nil)
	feedCache.On("InvalidateFeed", ctx).Return(nil)

	err := service.RemoveListing(ctx, ownerID, listingID)

	require.NoError(t, err)
}

func TestListingService_GetMyListings_LazyExpiry(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	factory := mockRepo.NewMockRepositoryFactory(t)

	listingRepo := mockRepo.NewMockListingRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	analyticsRepo := mockRepo.NewMockAnalyticsRepository(t)
	likeRepo := mockRepo.NewMockLikeRepository(t)

	service := NewListingService(ListingServiceParams{
		TxManager:     &passthroughTxManager{factory: factory},
		ListingRepo:   listingRepo,
		UserRepo:      userRepo,
		AnalyticsRepo: analyticsRepo,
		LikeRepo:      likeRepo,
		ImageStorage:  mockService.NewMockImageStorage(t),
		FeedCache:     mockService.NewMockFeedCache(t),
		CEPLookup:     mockService.NewMockCEPLookup(t),
		Config:        newListingTestConfig(),
		Logger:        newDiscardLogger(),
	})

	overdue := &entity.Listing{ID: uuid.New(), UserID: ownerID, Status: entity.ListingStatusActive, ExpiresAt: time.Now().Add(-time.Minute)}
	current := &entity.Listing{ID: uuid.New(), UserID: ownerID, Status: entity.ListingStatusActive, ExpiresAt: time.Now().Add(time.Hour)}

	listingRepo.On("FindByOwner", ctx, ownerID).Return([]*entity.Listing{overdue, current}, nil)
	analyticsRepo.On("CountByListingsAndType", ctx, mock.Anything, entity.EventTypeView).Return([]repository.EventCount{
		{ListingID: current.ID, Count: 7},
	}, nil)
	analyticsRepo.On("CountByListingsAndType", ctx, mock.Anything, entity.EventTypeWhatsAppClick).Return([]repository.EventCount{}, nil)
	likeRepo.On("CountByListings", ctx, []uuid.UUID{overdue.ID, current.ID}).Return([]repository.EventCount{
		{ListingID: current.ID, Count: 2},
	}, nil)

	listings, err := service.GetMyListings(ctx, ownerID)

	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, entity.ListingStatusExpired, listings[0].Status)
	assert.Equal(t, entity.ListingStatusActive, listings[1].Status)
	assert.Equal(t, int64(7), listings[1].ViewsCount)
	assert.Equal(t, int64(2), listings[1].LikesCount)
}
