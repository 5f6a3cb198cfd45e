package impl

import (
	"context"
	"log/slog"

	deliverycontext "dezapego/internal/delivery/context"
	"dezapego/internal/domain/entity"
	domainerrors "dezapego/internal/domain/errors"
	"dezapego/internal/domain/repository"
	"dezapego/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reportService implements the ReportUsecase interface.
type reportService struct {
	reportRepo  repository.ReportRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// ReportServiceParams holds dependencies for ReportService, injected by Fx.
type ReportServiceParams struct {
	fx.In

	ReportRepo  repository.ReportRepository
	ListingRepo repository.ListingRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewReportService is the constructor for reportService.
func NewReportService(params ReportServiceParams) usecase.ReportUsecase {
	return &reportService{
		reportRepo:  params.ReportRepo,
		listingRepo: params.ListingRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

func (srv *reportService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateReport files a complaint against a listing, a profile, or both. The
// unique (reporter, target) constraint rejects repeat reports.
func (srv *reportService) CreateReport(ctx context.Context, reporterID uuid.UUID, input *usecase.CreateReportInput) (*entity.Report, error) {
	if input.ListingID == nil && input.ReportedUserID == nil {
		return nil, errors.Wrap(domainerrors.ErrReportTargetMissing, "report without target")
	}

	if input.ListingID != nil {
		if _, err := srv.listingRepo.FindByID(ctx, *input.ListingID); err != nil {
			if errors.Is(err, repository.ErrListingNotFound) {
				return nil, errors.Wrap(domainerrors.ErrListingNotFound, "reported listing not found")
			}

			return nil, errors.Wrap(err, "failed to find reported listing")
		}
	}
	if input.ReportedUserID != nil {
		if _, err := srv.userRepo.FindByID(ctx, *input.ReportedUserID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, errors.Wrap(domainerrors.ErrUserNotFound, "reported user not found")
			}

			return nil, errors.Wrap(err, "failed to find reported user")
		}
	}

	report := &entity.Report{
		ReporterID:     reporterID,
		ListingID:      input.ListingID,
		ReportedUserID: input.ReportedUserID,
		Reason:         input.Reason,
		Description:    input.Description,
		Status:         entity.ReportStatusPending,
	}

	if err := srv.reportRepo.Create(ctx, report); err != nil {
		if errors.Is(err, repository.ErrDuplicateReport) {
			return nil, errors.Wrap(domainerrors.ErrDuplicateReport, "target already reported")
		}

		return nil, errors.Wrap(err, "failed to create report")
	}

	srv.log(ctx).Info("Report filed", slog.Any("reporterID", reporterID), slog.Any("reportID", report.ID))

	return report, nil
}

// GetMyReports returns the reports filed by the user, newest first.
func (srv *reportService) GetMyReports(ctx context.Context, reporterID uuid.UUID) ([]*entity.Report, error) {
	reports, err := srv.reportRepo.FindByReporter(ctx, reporterID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find reports by reporter")
	}

	return reports, nil
}
