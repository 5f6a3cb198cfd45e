package impl

import (
	"context"

	"dezapego/internal/domain/entity"
	"dezapego/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// decorateListingCounters fills ViewsCount, LikesCount and ContactCount on the
// given listings using grouped queries, one per counter, instead of one query
// per listing. Counters are always aggregated from the engagement log and the
// likes table; they are never stored on the listing row.
func decorateListingCounters(
	ctx context.Context,
	analyticsRepo repository.AnalyticsRepository,
	likeRepo repository.LikeRepository,
	listings []*entity.Listing,
) error {
	if len(listings) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(listings))
	byID := make(map[uuid.UUID]*entity.Listing, len(listings))
	for _, listing := range listings {
		ids = append(ids, listing.ID)
		byID[listing.ID] = listing
	}

	views, err := analyticsRepo.CountByListingsAndType(ctx, ids, entity.EventTypeView)
	if err != nil {
		return errors.Wrap(err, "failed to count views")
	}
	for _, count := range views {
		if listing, ok := byID[count.ListingID]; ok {
			listing.ViewsCount = count.Count
		}
	}

	contacts, err := analyticsRepo.CountByListingsAndType(ctx, ids, entity.EventTypeWhatsAppClick)
	if err != nil {
		return errors.Wrap(err, "failed to count whatsapp clicks")
	}
	for _, count := range contacts {
		if listing, ok := byID[count.ListingID]; ok {
			listing.ContactCount = count.Count
		}
	}

	likes, err := likeRepo.CountByListings(ctx, ids)
	if err != nil {
		return errors.Wrap(err, "failed to count likes")
	}
	for _, count := range likes {
		if listing, ok := byID[count.ListingID]; ok {
			listing.LikesCount = count.Count
		}
	}

	return nil
}
