package usecase

import (
	"context"

	"dezapego/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateReportInput defines the data required to file a report. At least one
// of ListingID and ReportedUserID must be set.
type CreateReportInput struct {
	ListingID      *uuid.UUID
	ReportedUserID *uuid.UUID
	Reason         string
	Description    string
}

// ReportUsecase defines the interface for content reporting operations.
type ReportUsecase interface {
	// CreateReport files a new report by the given user.
	CreateReport(ctx context.Context, reporterID uuid.UUID, input *CreateReportInput) (*entity.Report, error)

	// GetMyReports returns the reports filed by the user, newest first.
	GetMyReports(ctx context.Context, reporterID uuid.UUID) ([]*entity.Report, error)
}
