package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/beadloom/storefront/internal/logging"
	"github.com/beadloom/storefront/internal/service"
	"github.com/beadloom/storefront/internal/transport"
	"github.com/beadloom/storefront/internal/util"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		return mapServiceError(l, "create_order", err)
	}

	l.Info("create_order_success", "order_id", resp.OrderID, "order_number", resp.OrderNumber)
	return c.JSON(http.StatusCreated, resp)
}

func (h *OrderHTTP) GetOrderByNumber(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_by_number")

	result, err := h.Svc.GetOrderByNumber(ctx, c.Param("orderNumber"))
	if err != nil {
		return mapServiceError(l, "get_order_by_number", err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	orders, err := h.Svc.ListOrders(ctx, limit, offset)
	if err != nil {
		return mapServiceError(l, "list_orders", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		l.Warn("update_order_status_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_status_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateOrderStatus(ctx, uint(id), req); err != nil {
		return mapServiceError(l, "update_order_status", err)
	}

	l.Info("update_order_status_success", "order_id", id, "new_status", req.Status)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
