package handler

import (
	"log/slog"
	"net/http"

	"dezapego/internal/delivery/http/response"
	"dezapego/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReportHandler holds dependencies for content reporting handlers.
type ReportHandler struct {
	uc     usecase.ReportUsecase
	logger *slog.Logger
}

// NewReportHandler is the constructor for ReportHandler, injected by Fx.
func NewReportHandler(uc usecase.ReportUsecase, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		uc:     uc,
		logger: logger,
	}
}

type createReportRequest struct {
	ListingID      *string `json:"listing_id"`
	ReportedUserID *string `json:"reported_user_id"`
	Reason         string  `json:"reason" validate:"required"`
	Description    string  `json:"description" validate:"max=1000"`
}

// CreateReport files a report against a listing or a user.
func (h *ReportHandler) CreateReport(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Autenticação necessária")
	}

	var req createReportRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Dados da denúncia inválidos")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := &usecase.CreateReportInput{
		Reason:      req.Reason,
		Description: req.Description,
	}

	if req.ListingID != nil {
		listingID, err := uuid.Parse(*req.ListingID)
		if err != nil {
			return response.BindingError(c, "listing_id inválido")
		}
		input.ListingID = &listingID
	}

	if req.ReportedUserID != nil {
		reportedID, err := uuid.Parse(*req.ReportedUserID)
		if err != nil {
			return response.BindingError(c, "reported_user_id inválido")
		}
		input.ReportedUserID = &reportedID
	}

	report, err := h.uc.CreateReport(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, report)
}

// GetMyReports returns the reports filed by the authenticated user.
func (h *ReportHandler) GetMyReports(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Autenticação necessária")
	}

	reports, err := h.uc.GetMyReports(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reports)
}
