package impl

import (
	"context"
	"log/slog"
	"time"

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

// engagementService implements the EngagementUsecase interface.
type engagementService struct {
	listingRepo   repository.ListingRepository
	likeRepo      repository.LikeRepository
	analyticsRepo repository.AnalyticsRepository
	publisher     service.EventPublisher
	logger        *slog.Logger
}

// EngagementServiceParams holds dependencies for EngagementService, injected by Fx.
type EngagementServiceParams struct {
	fx.In

	ListingRepo   repository.ListingRepository
	LikeRepo      repository.LikeRepository
	AnalyticsRepo repository.AnalyticsRepository
	Publisher     service.EventPublisher
	Logger        *slog.Logger
}

// NewEngagementService is the constructor for engagementService.
func NewEngagementService(params EngagementServiceParams) usecase.EngagementUsecase {
	return &engagementService{
		listingRepo:   params.ListingRepo,
		likeRepo:      params.LikeRepo,
		analyticsRepo: params.AnalyticsRepo,
		publisher:     params.Publisher,
		logger:        params.Logger,
	}
}

func (srv *engagementService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// TrackEvent appends one engagement fact to the log. The fact is durable once
// appended; fan-out to the event bus is best-effort and never fails the
// request.
func (srv *engagementService) TrackEvent(ctx context.Context, input *usecase.TrackEventInput) error {
	if !input.EventType.IsValid() {
		return errors.Wrapf(domainerrors.ErrInvalidEventType, "unknown event type %q", input.EventType)
	}

	if err := srv.requireVisibleListing(ctx, input.ListingID); err != nil {
		return err
	}

	listingID := input.ListingID
	event := &entity.AnalyticsEvent{
		EventType: input.EventType,
		ListingID: &listingID,
		UserID:    input.UserID,
		Metadata:  input.Metadata,
	}
	if err := srv.analyticsRepo.AppendEvent(ctx, event); err != nil {
		return errors.Wrap(err, "failed to append engagement event")
	}

	srv.publish(ctx, event)

	return nil
}

// ToggleLike likes the listing if the viewer has not liked it yet, and
// unlikes it otherwise. The unique (user, listing) constraint makes the
// concurrent double-like collapse into a single row.
func (srv *engagementService) ToggleLike(ctx context.Context, userID, listingID uuid.UUID) (*usecase.ToggleLikeOutput, error) {
	if err := srv.requireVisibleListing(ctx, listingID); err != nil {
		return nil, err
	}

	exists, err := srv.likeRepo.Exists(ctx, userID, listingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check like state")
	}

	liked := false
	if exists {
		if err := srv.likeRepo.Delete(ctx, userID, listingID); err != nil && !errors.Is(err, repository.ErrLikeNotFound) {
			return nil, errors.Wrap(err, "failed to delete like")
		}
	} else {
		like := &entity.Like{
			UserID:    userID,
			ListingID: listingID,
		}
		if err := srv.likeRepo.Create(ctx, like); err != nil {
			// A concurrent toggle won the race; the pair is liked either way.
			if !errors.Is(err, repository.ErrDuplicateLike) {
				return nil, errors.Wrap(err, "failed to create like")
			}
		}
		liked = true
	}

	count, err := srv.likeRepo.CountByListing(ctx, listingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count likes")
	}

	srv.log(ctx).Debug("Like toggled", slog.Any("userID", userID), slog.Any("listingID", listingID), slog.Bool("liked", liked))

	return &usecase.ToggleLikeOutput{
		Liked:      liked,
		LikesCount: count,
	}, nil
}

// GetListingStats returns the aggregated engagement counters of one listing.
func (srv *engagementService) GetListingStats(ctx context.Context, listingID uuid.UUID) (*usecase.ListingStats, error) {
	if _, err := srv.listingRepo.FindByID(ctx, listingID); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, errors.Wrap(domainerrors.ErrListingNotFound, "listing not found")
		}

		return nil, errors.Wrap(err, "failed to find listing")
	}

	views, err := srv.analyticsRepo.CountByListingAndType(ctx, listingID, entity.EventTypeView)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count views")
	}
	contacts, err := srv.analyticsRepo.CountByListingAndType(ctx, listingID, entity.EventTypeWhatsAppClick)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count whatsapp clicks")
	}
	likes, err := srv.likeRepo.CountByListing(ctx, listingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count likes")
	}

	return &usecase.ListingStats{
		ViewsCount:     views,
		LikesCount:     likes,
		WhatsAppClicks: contacts,
	}, nil
}

// requireVisibleListing verifies the target listing exists and was not
// removed. Expired and sold listings still accept events: their detail pages
// remain reachable.
func (srv *engagementService) requireVisibleListing(ctx context.Context, listingID uuid.UUID) error {
	listing, err := srv.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return errors.Wrap(domainerrors.ErrListingNotFound, "listing not found")
		}

		return errors.Wrap(err, "failed to find listing")
	}
	if listing.Status == entity.ListingStatusRemoved {
		return errors.Wrap(domainerrors.ErrListingNotFound, "removed listing hidden")
	}

	return nil
}

// publish fans the event out to the message bus, logging failures instead of
// propagating them.
func (srv *engagementService) publish(ctx context.Context, event *entity.AnalyticsEvent) {
	message := &service.EngagementEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventType:  event.EventType.String(),
		OccurredAt: time.Now().Unix(),
	}
	if event.ListingID != nil {
		message.ListingID = event.ListingID.String()
	}
	if event.UserID != nil {
		message.UserID = event.UserID.String()
	}

	if err := srv.publisher.PublishEngagementEvent(ctx, message); err != nil {
		srv.log(ctx).Warn("Failed to publish engagement event", slog.Any("error", err))
	}
}
