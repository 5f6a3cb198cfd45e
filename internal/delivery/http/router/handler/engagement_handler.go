package handler

import (
	"log/slog"
	"net/http"

	"dezapego/internal/delivery/http/response"
	"dezapego/internal/domain/entity"
	"dezapego/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// EngagementHandler holds dependencies for engagement tracking handlers.
type EngagementHandler struct {
	uc     usecase.EngagementUsecase
	logger *slog.Logger
}

// NewEngagementHandler is the constructor for EngagementHandler, injected by Fx.
func NewEngagementHandler(uc usecase.EngagementUsecase, logger *slog.Logger) *EngagementHandler {
	return &EngagementHandler{
		uc:     uc,
		logger: logger,
	}
}

// trackEventRequest keeps the camelCase field names the existing web client
// already sends.
type trackEventRequest struct {
	ListingID string            `json:"listingId" validate:"required"`
	Action    string            `json:"action" validate:"required"`
	Metadata  map[string]string `json:"metadata"`
}

// TrackEvent records one engagement fact (view, whatsapp click, share).
// Anonymous callers are accepted; logged-in callers are attributed.
func (h *EngagementHandler) TrackEvent(c echo.Context) error {
	var req trackEventRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Dados do evento inválidos")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return response.BindingError(c, "listingId inválido")
	}

	if err := h.uc.TrackEvent(c.Request().Context(), &usecase.TrackEventInput{
		ListingID: listingID,
		EventType: entity.EventType(req.Action),
		UserID:    viewerID(c),
		Metadata:  req.Metadata,
	}); err != nil {
		return errors.WithStack(err)
	}

	// The existing web client checks for this exact body, so the endpoint
	// answers outside the usual envelope.
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// ToggleLike likes or unlikes a listing for the authenticated user.
func (h *EngagementHandler) ToggleLike(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Autenticação necessária")
	}

	listingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.ToggleLike(c.Request().Context(), userID, listingID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// GetListingStats returns the engagement counters of one listing.
func (h *EngagementHandler) GetListingStats(c echo.Context) error {
	listingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	stats, err := h.uc.GetListingStats(c.Request().Context(), listingID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats)
}
