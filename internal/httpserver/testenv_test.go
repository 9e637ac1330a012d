package httpserver

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/beadloom/storefront/internal/models"
	"github.com/beadloom/storefront/internal/repo"
	"github.com/beadloom/storefront/internal/service"
	"github.com/beadloom/storefront/internal/tokens"
)

const (
	testJWTSecret     = "test-jwt-secret"
	testSigningSecret = "whsec_test_secret"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:http_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.CustomRequest{},
		&models.Testimonial{},
		&models.NewsletterSubscriber{},
		&models.GalleryImage{},
		&models.WebhookEvent{},
	))
	return repo.New(db)
}

// newTestServer wires the full route table onto real services backed by an
// in-memory database, the same shape main assembles.
func newTestServer(t *testing.T) (*echo.Echo, *repo.GormRepo) {
	t.Helper()

	r := newTestRepo(t)

	e := echo.New()
	Register(e, &Deps{
		CatalogHandler:  &CatalogHTTP{Svc: &service.CatalogService{Repo: r}},
		OrderHandler:    &OrderHTTP{Svc: &service.OrderService{Repo: r}},
		CheckoutHandler: &CheckoutHTTP{Svc: &service.CheckoutService{Repo: r}},
		WebhookHandler: &WebhookHTTP{
			Reconciler:    &service.Reconciler{Repo: r},
			SigningSecret: testSigningSecret,
		},
		CollectionsHandler: &CollectionsHTTP{Svc: &service.CollectionsService{Repo: r}},
		JWTSecret:          []byte(testJWTSecret),
	})
	return e, r
}

func seedProduct(t *testing.T, r *repo.GormRepo, slug, price string, stock int) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:          "Product " + slug,
		Slug:          slug,
		Price:         decimal.RequireFromString(price),
		Images:        models.StringList{"https://img.example/" + slug + ".jpg"},
		StockQuantity: stock,
		IsAvailable:   true,
	}
	require.NoError(t, r.CreateProduct(context.Background(), p))
	return p
}

func seedPendingOrder(t *testing.T, r *repo.GormRepo, product *models.Product, qty int) *models.Order {
	t.Helper()

	subtotal := product.Price.Mul(decimal.NewFromInt(int64(qty))).Round(2)
	order := &models.Order{
		OrderNumber:     fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), product.Slug),
		CustomerName:    "Maya Reed",
		CustomerEmail:   "maya@example.com",
		ShippingStreet:  "12 Alder Way",
		ShippingCity:    "Portland",
		ShippingState:   "OR",
		ShippingZipCode: "97201",
		TotalAmount:     subtotal,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
	}
	pid := product.ID
	items := []models.OrderItem{{
		ProductID:    &pid,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		Quantity:     qty,
		Subtotal:     subtotal,
	}}
	require.NoError(t, r.CreateOrderWithItems(context.Background(), order, items))
	return order
}

func signedCookie(t *testing.T, role string) string {
	t.Helper()

	claims := &tokens.AccessClaims{
		Role:  role,
		Email: role + "@example.com",
		Name:  "Tester",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "accessToken=" + token
}
