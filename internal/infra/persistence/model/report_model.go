package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportModel mirrors the 'reports' table. A partial unique index per target
// keeps one report per (reporter, target) pair.
type ReportModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ReporterID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reports_reporter_target"`
	ListingID      *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reports_reporter_target"`
	ReportedUserID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reports_reporter_target"`
	Reason         string     `gorm:"type:varchar(50);not null"`
	Description    string     `gorm:"type:varchar(500)"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReportModel) TableName() string {
	return "reports"
}
