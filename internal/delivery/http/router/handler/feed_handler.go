package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"dezapego/internal/delivery/http/response"
	"dezapego/internal/domain/entity"
	"dezapego/internal/domain/repository"
	"dezapego/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FeedHandler holds dependencies for the public browse handlers.
type FeedHandler struct {
	uc     usecase.FeedUsecase
	logger *slog.Logger
}

// NewFeedHandler is the constructor for FeedHandler, injected by Fx.
func NewFeedHandler(uc usecase.FeedUsecase, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetFeed returns a page of active listings. Filters arrive as query
// parameters: category, userId, city, state, order, limit and offset.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	input := &usecase.FeedInput{
		City:     c.QueryParam("city"),
		State:    c.QueryParam("state"),
		Order:    repository.FeedOrder(c.QueryParam("order")),
		ViewerID: viewerID(c),
	}

	if raw := c.QueryParam("category"); raw != "" {
		category := entity.Category(raw)
		if !category.IsValid() {
			return response.BindingError(c, "Categoria desconhecida")
		}
		input.Category = &category
	}

	if raw := c.QueryParam("userId"); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			return response.BindingError(c, "userId inválido")
		}
		input.OwnerID = &ownerID
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return response.BindingError(c, "limit inválido")
		}
		input.Limit = limit
	}

	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return response.BindingError(c, "offset inválido")
		}
		input.Offset = offset
	}

	output, err := h.uc.GetFeed(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// GetListing returns one listing's detail page data.
func (h *FeedHandler) GetListing(c echo.Context) error {
	listingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	item, err := h.uc.GetListing(c.Request().Context(), listingID, viewerID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item)
}
