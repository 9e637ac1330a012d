package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/beadloom/storefront/internal/middleware/auth"
)

type Deps struct {
	CatalogHandler     *CatalogHTTP
	OrderHandler       *OrderHTTP
	CheckoutHandler    *CheckoutHTTP
	WebhookHandler     *WebhookHTTP
	CollectionsHandler *CollectionsHTTP
	JWTSecret          []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	// Raw-body endpoint, outside the API group: signature verification runs
	// over the exact bytes.
	e.POST("/payment/webhook", d.WebhookHandler.Handle)

	v1 := e.Group("/api/v1")

	v1.GET("/categories", d.CatalogHandler.ListCategories)

	products := v1.Group("/products")
	products.GET("", d.CatalogHandler.ListProducts)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.GET("/slug/:slug", d.CatalogHandler.GetProductBySlug)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	v1.POST("/orders", d.OrderHandler.CreateOrder)
	v1.GET("/orders/number/:orderNumber", d.OrderHandler.GetOrderByNumber)

	v1.POST("/checkout/session", d.CheckoutHandler.CreateSession)

	v1.POST("/custom-requests", d.CollectionsHandler.CreateCustomRequest)
	v1.POST("/testimonials", d.CollectionsHandler.CreateTestimonial)
	v1.GET("/testimonials", d.CollectionsHandler.ListPublishedTestimonials)
	v1.POST("/newsletter/subscribe", d.CollectionsHandler.Subscribe)
	v1.GET("/gallery", d.CollectionsHandler.ListPublishedGallery)

	mw := authmw.New(d.JWTSecret)
	admin := v1.Group("/admin", mw.RequireAdmin)

	admin.POST("/categories", d.CatalogHandler.CreateCategory)

	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.PATCH("/products/:id", d.CatalogHandler.PatchProduct)
	admin.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)

	admin.GET("/orders", d.OrderHandler.ListOrders)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateOrderStatus)

	admin.GET("/custom-requests", d.CollectionsHandler.ListCustomRequests)
	admin.PATCH("/custom-requests/:id/status", d.CollectionsHandler.UpdateCustomRequestStatus)

	admin.GET("/testimonials", d.CollectionsHandler.ListAllTestimonials)
	admin.PATCH("/testimonials/:id/status", d.CollectionsHandler.UpdateTestimonialStatus)

	admin.GET("/newsletter", d.CollectionsHandler.ListSubscribers)

	admin.GET("/gallery", d.CollectionsHandler.ListAllGallery)
	admin.POST("/gallery", d.CollectionsHandler.CreateGalleryImage)
}
