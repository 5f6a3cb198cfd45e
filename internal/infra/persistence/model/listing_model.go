package model

import (
	"time"

	"github.com/google/uuid"
)

// ListingModel mirrors the 'listings' table. Engagement counters are not
// columns here; they are aggregated from the analytics and likes tables.
type ListingModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Title        string    `gorm:"type:varchar(80);not null"`
	Description  string    `gorm:"type:varchar(500)"`
	Price        float64   `gorm:"type:numeric(12,2);not null"`
	Category     string    `gorm:"type:varchar(50);not null;index"`
	CEP          string    `gorm:"type:varchar(9);column:cep"`
	City         string    `gorm:"type:varchar(100);index"`
	State        string    `gorm:"type:varchar(2)"`
	Neighborhood string    `gorm:"type:varchar(100)"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active';index"`
	ExpiresAt    time.Time `gorm:"not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Images []ListingImageModel `gorm:"foreignKey:ListingID"`
}

// TableName explicitly sets the table name for GORM.
func (ListingModel) TableName() string {
	return "listings"
}

// ListingImageModel mirrors the 'listing_images' table.
type ListingImageModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ListingID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ImageURL     string    `gorm:"type:text;not null"`
	ThumbnailURL string    `gorm:"type:text"`
	Position     int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ListingImageModel) TableName() string {
	return "listing_images"
}

// LikeModel mirrors the 'likes' table. The composite unique index is what
// makes liking idempotent at the storage level.
type LikeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_listing"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_listing;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (LikeModel) TableName() string {
	return "likes"
}
