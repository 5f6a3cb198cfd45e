package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"dezapego/internal/delivery/http/response"
	"dezapego/internal/domain/entity"
	"dezapego/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ListingHandler holds dependencies for seller-side listing handlers.
type ListingHandler struct {
	uc     usecase.ListingUsecase
	logger *slog.Logger
}

// NewListingHandler is the constructor for ListingHandler, injected by Fx.
func NewListingHandler(uc usecase.ListingUsecase, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		uc:     uc,
		logger: logger,
	}
}

type updateListingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
}

// CreateListing publishes a new listing. The request is a multipart form with
// the text fields and up to the plan's limit of image files under "images".
func (h *ListingHandler) CreateListing(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Autenticação necessária")
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price <= 0 {
		return response.BindingError(c, "Preço inválido")
	}

	input := &usecase.CreateListingInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       price,
		Category:    entity.Category(c.FormValue("category")),
		CEP:         c.FormValue("cep"),
	}
	if input.Title == "" {
		return response.BindingError(c, "Título é obrigatório")
	}

	images, closeImages, err := openImageUploads(c)
	if err != nil {
		return response.BindingError(c, "Imagens inválidas")
	}
	defer closeImages()
	input.Images = images

	listing, err := h.uc.CreateListing(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, listing)
}

// UpdateListing edits the content fields of one of the caller's listings.
func (h *ListingHandler) UpdateListing(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Autenticação necessária")
	}

	listingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Dados do anúncio inválidos")
	}

	input := &usecase.UpdateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}
	if req.Category != nil {
		category := entity.Category(*req.Category)
		input.Category = &category
	}

	listing, err := h.uc.UpdateListing(c.Request().Context(), userID, listingID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listing)
}

// ToggleSold flips a listing between active and sold.
func (h *ListingHandler) ToggleSold(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Autenticação necessária")
	}

	listingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	listing, err := h.uc.ToggleSold(c.Request().Context(), userID, listingID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listing)
}

// RenewListing reactivates an expired listing, or extends an active one, with
// a fresh deadline.
func (h *ListingHandler) RenewListing(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Autenticação necessária")
	}

	listingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	listing, err := h.uc.RenewListing(c.Request().Context(), userID, listingID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listing)
}

// RemoveListing withdraws a listing permanently.
func (h *ListingHandler) RemoveListing(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Autenticação necessária")
	}

	listingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveListing(c.Request().Context(), userID, listingID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Anúncio removido"})
}

// GetMyListings returns every listing of the caller, including the sold,
// expired and removed ones, with engagement counters.
func (h *ListingHandler) GetMyListings(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Autenticação necessária")
	}

	listings, err := h.uc.GetMyListings(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listings)
}

// openImageUploads opens the multipart image files as streams. The returned
// closer must be called after the use case has consumed them.
func openImageUploads(c echo.Context) ([]usecase.ImageUpload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body means a listing without photos.
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, func() {}, nil
		}

		return nil, nil, errors.Wrap(err, "failed to parse multipart form")
	}

	files := form.File["images"]
	uploads := make([]usecase.ImageUpload, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			closeAll()

			return nil, nil, errors.Wrap(err, "failed to open uploaded image")
		}
		opened = append(opened, file)

		uploads = append(uploads, usecase.ImageUpload{
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Body:        file,
		})
	}

	return uploads, closeAll, nil
}
