// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"dezapego/internal/domain/entity"
	domainerrors "dezapego/internal/domain/errors"
	"dezapego/internal/domain/repository"
	"dezapego/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reportRepository implements the domain.ReportRepository interface using GORM.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository is the constructor for reportRepository.
func NewReportRepository(db *gorm.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

// Create persists a new report.
func (repo *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	reportM := fromReportDomain(report)

	if err := repo.db.WithContext(ctx).Create(reportM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateReport
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WrapMessage("invalid report target reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create report")
	}

	report.ID = reportM.ID
	report.CreatedAt = reportM.CreatedAt
	report.UpdatedAt = reportM.UpdatedAt

	return nil
}

// FindByID retrieves a single report by its unique ID.
func (repo *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	var reportM model.ReportModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&reportM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReportNotFound
		}

		return nil, errors.Wrap(err, "failed to find report by id")
	}

	return toReportDomain(&reportM), nil
}

// FindByReporter retrieves all reports filed by a user, newest first.
func (repo *reportRepository) FindByReporter(ctx context.Context, reporterID uuid.UUID) ([]*entity.Report, error) {
	var reportModels []model.ReportModel
	if err := repo.db.WithContext(ctx).
		Where("reporter_id = ?", reporterID).
		Order("created_at DESC").
		Find(&reportModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find reports by reporter")
	}

	reports := make([]*entity.Report, 0, len(reportModels))
	for i := range reportModels {
		reports = append(reports, toReportDomain(&reportModels[i]))
	}

	return reports, nil
}

// UpdateStatus moves a report through the moderation workflow.
func (repo *reportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReportStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ReportModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status.String(),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update report status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReportNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toReportDomain converts a GORM ReportModel to a domain Report entity.
func toReportDomain(data *model.ReportModel) *entity.Report {
	if data == nil {
		return nil
	}

	return &entity.Report{
		ID:             data.ID,
		ReporterID:     data.ReporterID,
		ListingID:      data.ListingID,
		ReportedUserID: data.ReportedUserID,
		Reason:         data.Reason,
		Description:    data.Description,
		Status:         entity.ReportStatus(data.Status),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromReportDomain converts a domain Report entity to a GORM ReportModel.
func fromReportDomain(data *entity.Report) *model.ReportModel {
	if data == nil {
		return nil
	}

	return &model.ReportModel{
		ID:             data.ID,
		ReporterID:     data.ReporterID,
		ListingID:      data.ListingID,
		ReportedUserID: data.ReportedUserID,
		Reason:         data.Reason,
		Description:    data.Description,
		Status:         data.Status.String(),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
