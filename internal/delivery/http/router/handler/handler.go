// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"dezapego/internal/delivery/http/middleware"
	"dezapego/internal/delivery/http/response"
	domainerrors "dezapego/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// currentUserID reads the authenticated user's ID set by the auth middleware.
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)

	return userID, ok
}

// viewerID reads the user ID when present, nil for anonymous requests.
func viewerID(c echo.Context) *uuid.UUID {
	if userID, ok := currentUserID(c); ok {
		return &userID
	}

	return nil
}

// pathUUID parses a UUID path parameter. On failure the returned error is
// rendered as a 400 by the error handler.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails(name + " must be a valid UUID")
	}

	return id, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
