package model

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsEventModel mirrors the append-only 'analytics_events' table.
// Rows are never updated or deleted.
type AnalyticsEventModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	EventType string     `gorm:"type:varchar(30);not null;index:idx_analytics_listing_type"`
	ListingID *uuid.UUID `gorm:"type:uuid;index:idx_analytics_listing_type"`
	UserID    *uuid.UUID `gorm:"type:uuid"`
	Metadata  []byte     `gorm:"type:jsonb"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AnalyticsEventModel) TableName() string {
	return "analytics_events"
}
