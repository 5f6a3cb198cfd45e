// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"dezapego/internal/domain/entity"

	"github.com/google/uuid"
)

// EventCount pairs a listing with how many events of one type it received.
type EventCount struct {
	ListingID uuid.UUID
	Count     int64
}

// AnalyticsRepository defines the operations over the append-only engagement
// log. There is deliberately no update or delete: counters are aggregates.
type AnalyticsRepository interface {
	// AppendEvent persists one engagement fact.
	AppendEvent(ctx context.Context, event *entity.AnalyticsEvent) error

	// CountByListingAndType counts events of one type for a single listing.
	CountByListingAndType(ctx context.Context, listingID uuid.UUID, eventType entity.EventType) (int64, error)

	// CountByListingsAndType counts events of one type for each of the given
	// listings in a single grouped query.
	CountByListingsAndType(ctx context.Context, listingIDs []uuid.UUID, eventType entity.EventType) ([]EventCount, error)
}
