// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus tracks the moderation workflow of a report.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewed  ReportStatus = "reviewed"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// String returns the string representation of the ReportStatus.
func (s ReportStatus) String() string {
	return string(s)
}

// IsValid checks if the ReportStatus is a valid value.
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusPending, ReportStatusReviewed, ReportStatusResolved, ReportStatusDismissed:
		return true
	default:
		return false
	}
}

// Report is a user complaint against a listing or another profile. A report
// must target at least one of the two.
type Report struct {
	ID             uuid.UUID    `json:"id"`
	ReporterID     uuid.UUID    `json:"reporter_id"`
	ListingID      *uuid.UUID   `json:"listing_id,omitempty"`
	ReportedUserID *uuid.UUID   `json:"reported_user_id,omitempty"`
	Reason         string       `json:"reason"`
	Description    string       `json:"description,omitempty"`
	Status         ReportStatus `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
