package impl

import (
	"context"
	"testing"
	"time"

	"dezapego/internal/domain/entity"
	domainerrors "dezapego/internal/domain/errors"
	"dezapego/internal/domain/repository"
	mockRepo "dezapego/internal/mocks/repository"
	"dezapego/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReportService(t *testing.T) (usecase.ReportUsecase, *mockRepo.MockReportRepository, *mockRepo.MockListingRepository, *mockRepo.MockUserRepository) {
	t.Helper()

	reportRepo := mockRepo.NewMockReportRepository(t)
	listingRepo := mockRepo.NewMockListingRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	service := NewReportService(ReportServiceParams{
		ReportRepo:  reportRepo,
		ListingRepo: listingRepo,
		UserRepo:    userRepo,
		Logger:      newDiscardLogger(),
	})

	return service, reportRepo, listingRepo, userRepo
}

func TestReportService_CreateReport_AgainstListing(t *testing.T) {
	ctx := context.Background()
	service, reportRepo, listingRepo, _ := newReportService(t)

	reporterID := uuid.New()
	listingID := uuid.New()
	listingRepo.On("FindByID", ctx, listingID).Return(&entity.Listing{
		ID:        listingID,
		UserID:    uuid.New(),
		Status:    entity.ListingStatusActive,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	reportRepo.On("Create", ctx, mock.MatchedBy(func(report *entity.Report) bool {
		return report.ReporterID == reporterID && report.Status == entity.ReportStatusPending
	})).Return(nil)

	report, err := service.CreateReport(ctx, reporterID, &usecase.CreateReportInput{
		ListingID: &listingID,
		Reason:    "golpe",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusPending, report.Status)
}

func TestReportService_CreateReport_MissingTarget(t *testing.T) {
	ctx := context.Background()
	service, reportRepo, _, _ := newReportService(t)

	_, err := service.CreateReport(ctx, uuid.New(), &usecase.CreateReportInput{Reason: "spam"})

	require.ErrorIs(t, err, domainerrors.ErrReportTargetMissing)
	reportRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReportService_CreateReport_Duplicate(t *testing.T) {
	ctx := context.Background()
	service, reportRepo, _, userRepo := newReportService(t)

	reporterID := uuid.New()
	reportedID := uuid.New()
	userRepo.On("FindByID", ctx, reportedID).Return(&entity.User{ID: reportedID}, nil)
	reportRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateReport)

	_, err := service.CreateReport(ctx, reporterID, &usecase.CreateReportInput{
		ReportedUserID: &reportedID,
		Reason:         "perfil falso",
	})

	require.ErrorIs(t, err, domainerrors.ErrDuplicateReport)
}

func TestReportService_GetMyReports(t *testing.T) {
	ctx := context.Background()
	service, reportRepo, _, _ := newReportService(t)

	reporterID := uuid.New()
	reportRepo.On("FindByReporter", ctx, reporterID).Return([]*entity.Report{
		{ID: uuid.New(), ReporterID: reporterID, Status: entity.ReportStatusPending},
	}, nil)

	reports, err := service.GetMyReports(ctx, reporterID)

	require.NoError(t, err)
	assert.Len(t, reports, 1)
}
