package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

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
	defaultFeedLimit = 50
	maxFeedLimit     = 100

	defaultFeedTTL = 30 * time.Second
)

// feedService implements the FeedUsecase interface.
type feedService struct {
	listingRepo   repository.ListingRepository
	userRepo      repository.UserRepository
	likeRepo      repository.LikeRepository
	analyticsRepo repository.AnalyticsRepository
	feedCache     service.FeedCache
	feedTTL       time.Duration
	logger        *slog.Logger
}

// FeedServiceParams holds dependencies for FeedService, injected by Fx.
type FeedServiceParams struct {
	fx.In

	ListingRepo   repository.ListingRepository
	UserRepo      repository.UserRepository
	LikeRepo      repository.LikeRepository
	AnalyticsRepo repository.AnalyticsRepository
	FeedCache     service.FeedCache
	Config        *config.Config
	Logger        *slog.Logger
}

// NewFeedService is the constructor for feedService.
func NewFeedService(params FeedServiceParams) usecase.FeedUsecase {
	feedTTL := defaultFeedTTL
	if params.Config != nil && params.Config.Redis != nil && params.Config.Redis.FeedTTL > 0 {
		feedTTL = params.Config.Redis.FeedTTL
	}

	return &feedService{
		listingRepo:   params.ListingRepo,
		userRepo:      params.UserRepo,
		likeRepo:      params.LikeRepo,
		analyticsRepo: params.AnalyticsRepo,
		feedCache:     params.FeedCache,
		feedTTL:       feedTTL,
		logger:        params.Logger,
	}
}

func (srv *feedService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetFeed assembles one feed page. Anonymous pages are served from the cache
// when possible; authenticated pages carry viewer-specific liked flags and
// always hit the database.
func (srv *feedService) GetFeed(ctx context.Context, input *usecase.FeedInput) (*usecase.FeedOutput, error) {
	query := srv.buildQuery(input)

	anonymous := input.ViewerID == nil
	cacheKey := feedCacheKey(query)

	if anonymous {
		if payload, err := srv.feedCache.Get(ctx, cacheKey); err == nil {
			var output usecase.FeedOutput
			if err := json.Unmarshal(payload, &output); err == nil {
				return &output, nil
			}
			srv.log(ctx).Warn("Discarding unreadable feed cache entry", slog.String("key", cacheKey))
		} else if !errors.Is(err, service.ErrCacheMiss) {
			srv.log(ctx).Warn("Feed cache read failed", slog.Any("error", err))
		}
	}

	listings, err := srv.listingRepo.FindActive(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find active listings")
	}

	if err := decorateListingCounters(ctx, srv.analyticsRepo, srv.likeRepo, listings); err != nil {
		return nil, errors.Wrap(err, "failed to decorate listing counters")
	}
	if err := srv.attachOwners(ctx, listings); err != nil {
		return nil, err
	}

	liked, err := srv.likedSet(ctx, input.ViewerID, listings)
	if err != nil {
		return nil, err
	}

	items := make([]*usecase.FeedItem, 0, len(listings))
	for _, listing := range listings {
		items = append(items, newFeedItem(listing, input.ViewerID, liked))
	}
	output := &usecase.FeedOutput{Items: items}

	if anonymous {
		if payload, err := json.Marshal(output); err == nil {
			if err := srv.feedCache.Set(ctx, cacheKey, payload, srv.feedTTL); err != nil {
				srv.log(ctx).Warn("Feed cache write failed", slog.Any("error", err))
			}
		}
	}

	return output, nil
}

// GetListing returns one listing with counters and owner info. A removed
// listing is only visible to its owner.
func (srv *feedService) GetListing(ctx context.Context, listingID uuid.UUID, viewerID *uuid.UUID) (*usecase.FeedItem, error) {
	listing, err := srv.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, errors.Wrap(domainerrors.ErrListingNotFound, "listing not found")
		}

		return nil, errors.Wrap(err, "failed to find listing")
	}

	if listing.Status == entity.ListingStatusRemoved {
		if viewerID == nil || *viewerID != listing.UserID {
			return nil, errors.Wrap(domainerrors.ErrListingNotFound, "removed listing hidden")
		}
	}

	listings := []*entity.Listing{listing}
	if err := decorateListingCounters(ctx, srv.analyticsRepo, srv.likeRepo, listings); err != nil {
		return nil, errors.Wrap(err, "failed to decorate listing counters")
	}
	if err := srv.attachOwners(ctx, listings); err != nil {
		return nil, err
	}

	liked, err := srv.likedSet(ctx, viewerID, listings)
	if err != nil {
		return nil, err
	}

	listing.Status = listing.EffectiveStatus(time.Now())

	return newFeedItem(listing, viewerID, liked), nil
}

// newFeedItem renders a listing as a feed item. The liked flag is only set
// for identified viewers; anonymous items carry no flag at all.
func newFeedItem(listing *entity.Listing, viewerID *uuid.UUID, liked map[uuid.UUID]bool) *usecase.FeedItem {
	item := &usecase.FeedItem{Listing: listing}
	if viewerID != nil {
		isLiked := liked[listing.ID]
		item.Liked = &isLiked
	}

	return item
}

func (srv *feedService) buildQuery(input *usecase.FeedInput) repository.FeedQuery {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	order := input.Order
	if order != repository.FeedOrderPopular {
		order = repository.FeedOrderRecent
	}

	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	return repository.FeedQuery{
		Category: input.Category,
		OwnerID:  input.OwnerID,
		City:     input.City,
		State:    input.State,
		Order:    order,
		Limit:    limit,
		Offset:   offset,
		Now:      time.Now(),
	}
}

// attachOwners loads the sellers of the given listings in one batch and
// embeds their public profiles.
func (srv *feedService) attachOwners(ctx context.Context, listings []*entity.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]struct{}, len(listings))
	ids := make([]uuid.UUID, 0, len(listings))
	for _, listing := range listings {
		if _, ok := seen[listing.UserID]; ok {
			continue
		}
		seen[listing.UserID] = struct{}{}
		ids = append(ids, listing.UserID)
	}

	owners, err := srv.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return errors.Wrap(err, "failed to find listing owners")
	}

	byID := make(map[uuid.UUID]*entity.PublicProfile, len(owners))
	for _, owner := range owners {
		byID[owner.ID] = owner.Public()
	}
	for _, listing := range listings {
		listing.Owner = byID[listing.UserID]
	}

	return nil
}

// likedSet returns which of the given listings the viewer has liked. Returns
// an empty set for anonymous viewers.
func (srv *feedService) likedSet(ctx context.Context, viewerID *uuid.UUID, listings []*entity.Listing) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool)
	if viewerID == nil || len(listings) == 0 {
		return liked, nil
	}

	ids := make([]uuid.UUID, 0, len(listings))
	for _, listing := range listings {
		ids = append(ids, listing.ID)
	}

	likedIDs, err := srv.likeRepo.FindListingIDsLikedBy(ctx, *viewerID, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find liked listings")
	}
	for _, id := range likedIDs {
		liked[id] = true
	}

	return liked, nil
}

// feedCacheKey renders a deterministic cache key from the query filters.
func feedCacheKey(query repository.FeedQuery) string {
	category := ""
	if query.Category != nil {
		category = query.Category.String()
	}
	owner := ""
	if query.OwnerID != nil {
		owner = query.OwnerID.String()
	}

	return fmt.Sprintf("%s:%s:%s:%s:%s:%d:%d", category, owner, query.City, query.State, query.Order, query.Limit, query.Offset)
}
