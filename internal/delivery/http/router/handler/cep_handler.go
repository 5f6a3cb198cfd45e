package handler

import (
	"log/slog"
	"net/http"

	"dezapego/internal/delivery/http/response"
	domainerrors "dezapego/internal/domain/errors"
	"dezapego/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CEPHandler exposes the postal code lookup used by the registration and
// listing forms.
type CEPHandler struct {
	cepLookup service.CEPLookup
	logger    *slog.Logger
}

// NewCEPHandler is the constructor for CEPHandler, injected by Fx.
func NewCEPHandler(cepLookup service.CEPLookup, logger *slog.Logger) *CEPHandler {
	return &CEPHandler{
		cepLookup: cepLookup,
		logger:    logger,
	}
}

// Lookup resolves a CEP to its city, state and neighborhood.
func (h *CEPHandler) Lookup(c echo.Context) error {
	cep := c.Param("cep")
	if cep == "" {
		return response.BindingError(c, "CEP é obrigatório")
	}

	address, err := h.cepLookup.Lookup(c.Request().Context(), cep)
	if err != nil {
		if errors.Is(err, service.ErrCEPNotFound) {
			return errors.WithStack(domainerrors.ErrCEPNotFound)
		}

		return errors.WithStack(domainerrors.ErrCEPLookupFailed)
	}

	return response.Success(c, http.StatusOK, address)
}
