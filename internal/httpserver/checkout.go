package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beadloom/storefront/internal/logging"
	"github.com/beadloom/storefront/internal/service"
	"github.com/beadloom/storefront/internal/transport"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.create_session")

	var req transport.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_session_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.OrderID == 0 {
		l.Warn("create_session_failed", "status", 400, "reason", "order_id required")
		return echo.NewHTTPError(http.StatusBadRequest, "order_id required")
	}

	resp, err := h.Svc.CreateSession(ctx, req)
	if err != nil {
		return mapServiceError(l, "create_session", err)
	}

	l.Info("create_session_success", "order_id", req.OrderID)
	return c.JSON(http.StatusOK, resp)
}
