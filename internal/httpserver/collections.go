package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/beadloom/storefront/internal/logging"
	"github.com/beadloom/storefront/internal/service"
	"github.com/beadloom/storefront/internal/transport"
)

type CollectionsHTTP struct {
	Svc *service.CollectionsService
}

func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}
	return uint(id), nil
}

func (h *CollectionsHTTP) CreateCustomRequest(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "custom_requests.create")

	var req transport.CreateCustomRequestRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_custom_request_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cr, err := h.Svc.CreateCustomRequest(ctx, req)
	if err != nil {
		return mapServiceError(l, "create_custom_request", err)
	}

	l.Info("create_custom_request_success", "request_id", cr.ID)
	return c.JSON(http.StatusCreated, cr)
}

func (h *CollectionsHTTP) ListCustomRequests(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "custom_requests.list")

	reqs, err := h.Svc.ListCustomRequests(ctx)
	if err != nil {
		return mapServiceError(l, "list_custom_requests", err)
	}
	return c.JSON(http.StatusOK, reqs)
}

func (h *CollectionsHTTP) UpdateCustomRequestStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "custom_requests.update_status")

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateRequestStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_custom_request_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateCustomRequestStatus(ctx, id, req); err != nil {
		return mapServiceError(l, "update_custom_request", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *CollectionsHTTP) CreateTestimonial(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "testimonials.create")

	var req transport.CreateTestimonialRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_testimonial_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	t, err := h.Svc.CreateTestimonial(ctx, req)
	if err != nil {
		return mapServiceError(l, "create_testimonial", err)
	}

	l.Info("create_testimonial_success", "testimonial_id", t.ID)
	return c.JSON(http.StatusCreated, t)
}

func (h *CollectionsHTTP) ListPublishedTestimonials(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "testimonials.list_published")

	ts, err := h.Svc.ListPublishedTestimonials(ctx)
	if err != nil {
		return mapServiceError(l, "list_published_testimonials", err)
	}
	return c.JSON(http.StatusOK, ts)
}

func (h *CollectionsHTTP) ListAllTestimonials(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "testimonials.list_all")

	ts, err := h.Svc.ListAllTestimonials(ctx)
	if err != nil {
		return mapServiceError(l, "list_all_testimonials", err)
	}
	return c.JSON(http.StatusOK, ts)
}

func (h *CollectionsHTTP) UpdateTestimonialStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "testimonials.update_status")

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateTestimonialStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_testimonial_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateTestimonialStatus(ctx, id, req); err != nil {
		return mapServiceError(l, "update_testimonial", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *CollectionsHTTP) Subscribe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "newsletter.subscribe")

	var req transport.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("subscribe_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sub, err := h.Svc.Subscribe(ctx, req)
	if err != nil {
		return mapServiceError(l, "subscribe", err)
	}

	l.Info("subscribe_success", "subscriber_id", sub.ID)
	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

func (h *CollectionsHTTP) ListSubscribers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "newsletter.list")

	subs, err := h.Svc.ListSubscribers(ctx)
	if err != nil {
		return mapServiceError(l, "list_subscribers", err)
	}
	return c.JSON(http.StatusOK, subs)
}

func (h *CollectionsHTTP) ListPublishedGallery(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gallery.list_published")

	imgs, err := h.Svc.ListGalleryImages(ctx, true)
	if err != nil {
		return mapServiceError(l, "list_published_gallery", err)
	}
	return c.JSON(http.StatusOK, imgs)
}

func (h *CollectionsHTTP) ListAllGallery(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gallery.list_all")

	imgs, err := h.Svc.ListGalleryImages(ctx, false)
	if err != nil {
		return mapServiceError(l, "list_all_gallery", err)
	}
	return c.JSON(http.StatusOK, imgs)
}

func (h *CollectionsHTTP) CreateGalleryImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gallery.create")

	var req transport.CreateGalleryImageRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_gallery_image_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	img, err := h.Svc.CreateGalleryImage(ctx, req)
	if err != nil {
		return mapServiceError(l, "create_gallery_image", err)
	}

	l.Info("create_gallery_image_success", "image_id", img.ID)
	return c.JSON(http.StatusCreated, img)
}
