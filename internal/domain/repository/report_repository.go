// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"dezapego/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for report persistence.
var (
	// ErrReportNotFound is returned when a report is not found.
	ErrReportNotFound = errors.New("report not found")
	// ErrDuplicateReport is returned when the reporter already reported this target.
	ErrDuplicateReport = errors.New("target already reported by this user")
)

// ReportRepository defines the standard operations for report persistence.
type ReportRepository interface {
	// Create persists a new report.
	Create(ctx context.Context, report *entity.Report) error

	// FindByID retrieves a single report by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)

	// FindByReporter retrieves all reports filed by a user, newest first.
	FindByReporter(ctx context.Context, reporterID uuid.UUID) ([]*entity.Report, error)

	// UpdateStatus moves a report through the moderation workflow.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReportStatus) error
}
