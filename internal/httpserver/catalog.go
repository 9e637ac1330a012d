package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/beadloom/storefront/internal/logging"
	"github.com/beadloom/storefront/internal/repo"
	"github.com/beadloom/storefront/internal/service"
	"github.com/beadloom/storefront/internal/transport"
	"github.com/beadloom/storefront/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_categories")

	cats, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return mapServiceError(l, "list_categories", err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		return mapServiceError(l, "create_category", err)
	}

	l.Info("create_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_products")

	var filter repo.ProductFilter
	if v := c.QueryParam("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "category_id is not an integer")
		}
		cid := uint(id)
		filter.CategoryID = &cid
	}
	if v := c.QueryParam("available"); v != "" {
		b := v == "true"
		filter.IsAvailable = &b
	}
	if v := c.QueryParam("featured"); v != "" {
		b := v == "true"
		filter.IsFeatured = &b
	}

	items, err := h.Svc.ListProducts(ctx, filter)
	if err != nil {
		return mapServiceError(l, "list_products", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	product, err := h.Svc.GetProduct(ctx, uint(id))
	if err != nil {
		return mapServiceError(l, "get_product", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetProductBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product_by_slug")

	product, err := h.Svc.GetProductBySlug(ctx, c.Param("slug"))
	if err != nil {
		return mapServiceError(l, "get_product_by_slug", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search_products")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, products, err := h.Svc.SearchProducts(ctx, q, from, size)
	if err != nil {
		l.Error("search_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return mapServiceError(l, "create_product", err)
	}

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.patch_product")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		l.Warn("patch_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.PatchProduct(ctx, uint(id), req)
	if err != nil {
		return mapServiceError(l, "patch_product", err)
	}

	l.Info("patch_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_product")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		l.Warn("delete_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteProduct(ctx, uint(id)); err != nil {
		return mapServiceError(l, "delete_product", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
