package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/logger"
)

// messageResponse is the body of message-only replies (deletes, errors).
type messageResponse struct {
	Message string `json:"message"`
}

// mapError translates service errors to HTTP responses. Validation failures
// keep their field-specific message; anything unexpected is logged with full
// detail and surfaced as a generic 500.
func mapError(c echo.Context, err error, notFoundMsg string) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusBadRequest, verr.Message)
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFoundMsg)
	default:
		logger.ErrorLog(c.Request().Context(), "request failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "something went wrong")
	}
}
