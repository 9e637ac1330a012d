package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beadloom/storefront/internal/service"
)

// mapServiceError turns a service sentinel into the matching HTTP error and
// logs it at the right level.
func mapServiceError(l *slog.Logger, op string, err error) error {
	var status int
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrProvider):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	if status >= 500 {
		l.Error(op+"_failed", "status", status, "error", err)
		return echo.NewHTTPError(status, "internal error")
	}
	l.Warn(op+"_failed", "status", status, "error", err)
	return echo.NewHTTPError(status, err.Error())
}
