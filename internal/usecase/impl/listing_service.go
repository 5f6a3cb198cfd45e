package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"dezapego/config"
	deliverycontext "dezapego/internal/delivery/context"
	"dezapego/internal/domain/entity"
	domainerrors "dezapego/internal/domain/errors"
	"dezapego/internal/domain/repository"
	"dezapego/internal/domain/service"
	"dezapego/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultMaxImagesPerListing = 8
	defaultMaxImageBytes       = 5 << 20

	minTitleLength       = 5
	maxTitleLength       = 80
	maxDescriptionLength = 500
)

// listingService implements the ListingUsecase interface.
type listingService struct {
	txManager     repository.TransactionManager
	listingRepo   repository.ListingRepository
	userRepo      repository.UserRepository
	analyticsRepo repository.AnalyticsRepository
	likeRepo      repository.LikeRepository
	imageStorage  service.ImageStorage
	feedCache     service.FeedCache
	cepLookup     service.CEPLookup
	maxImages     int
	maxImageBytes int64
	publicBaseURL string
	logger        *slog.Logger
}

// ListingServiceParams holds dependencies for ListingService, injected by Fx.
type ListingServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	ListingRepo   repository.ListingRepository
	UserRepo      repository.UserRepository
	AnalyticsRepo repository.AnalyticsRepository
	LikeRepo      repository.LikeRepository
	ImageStorage  service.ImageStorage
	FeedCache     service.FeedCache
	CEPLookup     service.CEPLookup
	Config        *config.Config
	Logger        *slog.Logger
}

// NewListingService is the constructor for listingService.
func NewListingService(params ListingServiceParams) usecase.ListingUsecase {
	maxImages := defaultMaxImagesPerListing
	maxImageBytes := int64(defaultMaxImageBytes)
	publicBaseURL := ""
	if params.Config != nil && params.Config.Storage != nil {
		if params.Config.Storage.MaxImagesPerListing > 0 {
			maxImages = params.Config.Storage.MaxImagesPerListing
		}
		if params.Config.Storage.MaxImageBytes > 0 {
			maxImageBytes = params.Config.Storage.MaxImageBytes
		}
		publicBaseURL = strings.TrimSuffix(params.Config.Storage.PublicBaseURL, "/")
	}

	return &listingService{
		txManager:     params.TxManager,
		listingRepo:   params.ListingRepo,
		userRepo:      params.UserRepo,
		analyticsRepo: params.AnalyticsRepo,
		likeRepo:      params.LikeRepo,
		imageStorage:  params.ImageStorage,
		feedCache:     params.FeedCache,
		cepLookup:     params.CEPLookup,
		maxImages:     maxImages,
		maxImageBytes: maxImageBytes,
		publicBaseURL: publicBaseURL,
		logger:        params.Logger,
	}
}

func (srv *listingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateListing publishes a new listing. The plan quota is checked inside the
// same transaction as the insert, so two concurrent publishes cannot both
// slip under the limit.
func (srv *listingService) CreateListing(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateListingInput) (*entity.Listing, error) {
	srv.log(ctx).Info("Creating listing", slog.Any("ownerID", ownerID), slog.String("category", input.Category.String()))

	if !input.Category.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown category")
	}
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}
	if len(input.Images) > srv.maxImages {
		return nil, errors.Wrapf(domainerrors.ErrImageLimitExceeded, "got %d images, limit is %d", len(input.Images), srv.maxImages)
	}
	for _, img := range input.Images {
		if img.Size > srv.maxImageBytes {
			return nil, errors.Wrapf(domainerrors.ErrValidationFailed, "image exceeds %d bytes", srv.maxImageBytes)
		}
	}

	owner, err := srv.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "owner not found")
		}

		return nil, errors.Wrap(err, "failed to find owner")
	}
	if !owner.Status.CanPublish() {
		return nil, errors.Wrap(domainerrors.ErrAccountBlocked, "blocked account cannot publish")
	}

	newListing := &entity.Listing{
		ID:          uuid.New(),
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		City:        owner.City,
		State:       owner.State,
		Status:      entity.ListingStatusActive,
	}

	if input.CEP != "" {
		address, err := srv.cepLookup.Lookup(ctx, input.CEP)
		if err != nil {
			if errors.Is(err, service.ErrCEPNotFound) {
				return nil, errors.Wrap(domainerrors.ErrCEPNotFound, "listing cep lookup failed")
			}

			return nil, errors.Wrap(domainerrors.ErrCEPLookupFailed, "listing cep lookup failed")
		}
		newListing.CEP = address.CEP
		newListing.City = address.City
		newListing.State = address.State
		newListing.Neighborhood = address.Neighborhood
	}

	// Blob uploads happen before the transaction; a failed insert cleans the
	// orphaned blobs up best-effort afterwards.
	images, err := srv.uploadImages(ctx, newListing.ID, input.Images)
	if err != nil {
		return nil, err
	}
	newListing.Images = images

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		listingRepo := repoFactory.NewListingRepository()
		userRepo := repoFactory.NewUserRepository()

		// The quota check reads the owner again under a row lock: the count
		// and the insert must see the same plan, and concurrent publishes by
		// the same owner must line up behind the lock instead of both passing
		// the count.
		lockedOwner, err := userRepo.FindByIDForUpdate(ctx, ownerID)
		if err != nil {
			return errors.Wrap(err, "failed to lock owner row for quota check")
		}
		if !lockedOwner.Status.CanPublish() {
			return errors.Wrap(domainerrors.ErrAccountBlocked, "blocked account cannot publish")
		}

		now := time.Now()
		activeCount, err := listingRepo.CountActiveByOwner(ctx, ownerID, now)
		if err != nil {
			return errors.Wrap(err, "failed to count active listings")
		}
		limit := int64(lockedOwner.Plan.MaxActiveListings())
		if activeCount >= limit {
			return domainerrors.NewQuotaExceededError(lockedOwner.Plan.String(), activeCount, limit)
		}

		newListing.ExpiresAt = now.Add(lockedOwner.Plan.ListingDuration())
		if err := listingRepo.Create(ctx, newListing); err != nil {
			return errors.Wrap(err, "failed to create listing")
		}
		if len(newListing.Images) > 0 {
			if err := listingRepo.CreateImages(ctx, newListing.Images); err != nil {
				return errors.Wrap(err, "failed to create listing images")
			}
		}

		return nil
	})
	if err != nil {
		srv.removeBlobs(ctx, newListing.Images)
		srv.log(ctx).Error("Failed to execute listing creation transaction", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute listing creation transaction")
	}

	newListing.Owner = owner.Public()
	srv.invalidateFeed(ctx)

	return newListing, nil
}

// UpdateListing edits the content fields of an owned listing.
func (srv *listingService) UpdateListing(ctx context.Context, ownerID, listingID uuid.UUID, input *usecase.UpdateListingInput) (*entity.Listing, error) {
	if input.Category != nil && !input.Category.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown category")
	}
	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
	}
	if input.Price != nil {
		if err := validatePrice(*input.Price); err != nil {
			return nil, err
		}
	}

	var updated *entity.Listing
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		listingRepo := repoFactory.NewListingRepository()

		listing, err := srv.requireOwnedListing(ctx, listingRepo, ownerID, listingID)
		if err != nil {
			return err
		}
		if listing.Status == entity.ListingStatusRemoved {
			return errors.Wrap(domainerrors.ErrListingStatusConflict, "removed listing cannot be edited")
		}

		if input.Title != nil {
			listing.Title = *input.Title
		}
		if input.Description != nil {
			listing.Description = *input.Description
		}
		if input.Price != nil {
			listing.Price = *input.Price
		}
		if input.Category != nil {
			listing.Category = *input.Category
		}

		if err := listingRepo.Update(ctx, listing); err != nil {
			return errors.Wrap(err, "failed to update listing")
		}
		updated = listing

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute listing update transaction")
	}

	srv.invalidateFeed(ctx)

	return updated, nil
}

// ToggleSold flips an owned listing between active and sold. The sold to
// active direction deliberately skips the quota check: the slot was already
// paid for when the listing was published.
func (srv *listingService) ToggleSold(ctx context.Context, ownerID, listingID uuid.UUID) (*entity.Listing, error) {
	var toggled *entity.Listing
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		listingRepo := repoFactory.NewListingRepository()

		listing, err := srv.requireOwnedListing(ctx, listingRepo, ownerID, listingID)
		if err != nil {
			return err
		}

		var target entity.ListingStatus
		switch listing.EffectiveStatus(time.Now()) {
		case entity.ListingStatusActive:
			target = entity.ListingStatusSold
		case entity.ListingStatusSold:
			target = entity.ListingStatusActive
		default:
			return errors.Wrapf(domainerrors.ErrListingStatusConflict, "cannot toggle sold from status %s", listing.Status)
		}

		if err := listingRepo.UpdateStatus(ctx, listingID, target, nil); err != nil {
			return errors.Wrap(err, "failed to update listing status")
		}
		listing.Status = target
		toggled = listing

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute sold toggle transaction")
	}

	srv.invalidateFeed(ctx)

	return toggled, nil
}

// RenewListing gives a listing a fresh deadline. Bringing an expired listing
// back re-checks the quota because the listing re-enters the active pool.
func (srv *listingService) RenewListing(ctx context.Context, ownerID, listingID uuid.UUID) (*entity.Listing, error) {
	var renewed *entity.Listing
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		listingRepo := repoFactory.NewListingRepository()
		userRepo := repoFactory.NewUserRepository()

		// Same locking discipline as CreateListing: the owner row anchors the
		// quota check for the duration of the transaction.
		owner, err := userRepo.FindByIDForUpdate(ctx, ownerID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "owner not found")
			}

			return errors.Wrap(err, "failed to lock owner row for quota check")
		}
		if !owner.Status.CanPublish() {
			return errors.Wrap(domainerrors.ErrAccountBlocked, "blocked account cannot renew")
		}

		listing, err := srv.requireOwnedListing(ctx, listingRepo, ownerID, listingID)
		if err != nil {
			return err
		}

		now := time.Now()
		status := listing.EffectiveStatus(now)
		if status != entity.ListingStatusActive && status != entity.ListingStatusExpired {
			return errors.Wrapf(domainerrors.ErrListingStatusConflict, "cannot renew from status %s", status)
		}

		// A currently active listing already holds its quota slot; only a
		// resurrection competes for a free one.
		if status == entity.ListingStatusExpired {
			activeCount, err := listingRepo.CountActiveByOwner(ctx, ownerID, now)
			if err != nil {
				return errors.Wrap(err, "failed to count active listings")
			}
			limit := int64(owner.Plan.MaxActiveListings())
			if activeCount >= limit {
				return domainerrors.NewQuotaExceededError(owner.Plan.String(), activeCount, limit)
			}
		}

		expiresAt := now.Add(owner.Plan.ListingDuration())
		if err := listingRepo.UpdateStatus(ctx, listingID, entity.ListingStatusActive, &expiresAt); err != nil {
			return errors.Wrap(err, "failed to renew listing")
		}
		listing.Status = entity.ListingStatusActive
		listing.ExpiresAt = expiresAt
		renewed = listing

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute listing renewal transaction")
	}

	srv.invalidateFeed(ctx)

	return renewed, nil
}

// RemoveListing withdraws an owned listing and releases its image blobs.
// Removing an already removed listing is a no-op.
func (srv *listingService) RemoveListing(ctx context.Context, ownerID, listingID uuid.UUID) error {
	var removedImages []entity.ListingImage
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		listingRepo := repoFactory.NewListingRepository()

		listing, err := srv.requireOwnedListing(ctx, listingRepo, ownerID, listingID)
		if err != nil {
			return err
		}
		if listing.Status == entity.ListingStatusRemoved {
			return nil
		}

		if err := listingRepo.UpdateStatus(ctx, listingID, entity.ListingStatusRemoved, nil); err != nil {
			return errors.Wrap(err, "failed to remove listing")
		}

		images, err := listingRepo.DeleteImages(ctx, listingID)
		if err != nil {
			return errors.Wrap(err, "failed to delete listing images")
		}
		removedImages = images

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute listing removal transaction")
	}

	// Blob deletion is best-effort; a leaked object costs storage, a failed
	// removal request should not.
	srv.removeBlobs(ctx, removedImages)
	srv.invalidateFeed(ctx)

	return nil
}

// GetMyListings returns all of the owner's listings, newest first, with their
// engagement counters and lazily computed status.
func (srv *listingService) GetMyListings(ctx context.Context, ownerID uuid.UUID) ([]*entity.Listing, error) {
	listings, err := srv.listingRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find listings by owner")
	}

	if err := decorateListingCounters(ctx, srv.analyticsRepo, srv.likeRepo, listings); err != nil {
		return nil, errors.Wrap(err, "failed to decorate listing counters")
	}

	now := time.Now()
	for _, listing := range listings {
		listing.Status = listing.EffectiveStatus(now)
	}

	return listings, nil
}

func validateTitle(title string) error {
	length := utf8.RuneCountInString(strings.TrimSpace(title))
	if length < minTitleLength || length > maxTitleLength {
		return errors.Wrapf(domainerrors.ErrValidationFailed, "title must have between %d and %d characters", minTitleLength, maxTitleLength)
	}

	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return errors.Wrapf(domainerrors.ErrValidationFailed, "description must have at most %d characters", maxDescriptionLength)
	}

	return nil
}

func validatePrice(price float64) error {
	if price <= 0 {
		return errors.Wrap(domainerrors.ErrValidationFailed, "price must be greater than zero")
	}

	return nil
}

// requireOwnedListing loads a listing and verifies the caller owns it.
func (srv *listingService) requireOwnedListing(ctx context.Context, listingRepo repository.ListingRepository, ownerID, listingID uuid.UUID) (*entity.Listing, error) {
	listing, err := listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, errors.Wrap(domainerrors.ErrListingNotFound, "listing not found")
		}

		return nil, errors.Wrap(err, "failed to find listing")
	}
	if listing.UserID != ownerID {
		srv.log(ctx).Warn("Ownership violation", slog.Any("ownerID", ownerID), slog.Any("listingID", listingID))

		return nil, errors.Wrap(domainerrors.ErrListingOwnershipViolation, "listing belongs to another user")
	}

	return listing, nil
}

// uploadImages streams the submitted photos into the blob store and returns
// the image records to persist. On failure the already uploaded blobs are
// cleaned up before returning.
func (srv *listingService) uploadImages(ctx context.Context, listingID uuid.UUID, uploads []usecase.ImageUpload) ([]entity.ListingImage, error) {
	images := make([]entity.ListingImage, 0, len(uploads))
	for position, upload := range uploads {
		key := fmt.Sprintf("listings/%s/%s", listingID, uuid.New())
		url, err := srv.imageStorage.Upload(ctx, key, upload.ContentType, upload.Body)
		if err != nil {
			srv.removeBlobs(ctx, images)
			srv.log(ctx).Error("Failed to upload listing image", slog.Any("listingID", listingID), slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrImageUploadFailed, "failed to upload listing image")
		}

		images = append(images, entity.ListingImage{
			ID:        uuid.New(),
			ListingID: listingID,
			ImageURL:  url,
			Position:  position,
		})
	}

	return images, nil
}

// removeBlobs deletes the blobs backing the given image records, logging
// failures instead of propagating them.
func (srv *listingService) removeBlobs(ctx context.Context, images []entity.ListingImage) {
	for _, image := range images {
		key := srv.blobKeyFromURL(image.ImageURL)
		if key == "" {
			continue
		}
		if err := srv.imageStorage.Remove(ctx, key); err != nil {
			srv.log(ctx).Warn("Failed to remove image blob", slog.String("key", key), slog.Any("error", err))
		}
	}
}

// blobKeyFromURL recovers the bucket key from a public image URL. Returns ""
// for URLs outside the configured public base.
func (srv *listingService) blobKeyFromURL(url string) string {
	prefix := srv.publicBaseURL + "/"
	if srv.publicBaseURL == "" || !strings.HasPrefix(url, prefix) {
		return ""
	}

	return strings.TrimPrefix(url, prefix)
}

// invalidateFeed drops cached feed pages after a write. Cache failures only
// delay freshness, so they are logged and swallowed.
func (srv *listingService) invalidateFeed(ctx context.Context) {
	if err := srv.feedCache.InvalidateFeed(ctx); err != nil {
		srv.log(ctx).Warn("Failed to invalidate feed cache", slog.Any("error", err))
	}
}
