package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beadloom/storefront/internal/models"
	"github.com/beadloom/storefront/internal/repo"
	"github.com/beadloom/storefront/internal/transport"
)

func validProductRequest(slug string) transport.CreateProductRequest {
	return transport.CreateProductRequest{
		Name:          "Product " + slug,
		Slug:          slug,
		Price:         "12.00",
		Images:        []string{"https://img.example/" + slug + ".jpg"},
		StockQuantity: 3,
	}
}

func TestCreateProduct_RoundTripsListFields(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	pub := &recordingPublisher{}
	svc := &CatalogService{Repo: r, Producer: pub}
	ctx := context.Background()

	req := validProductRequest("macrame-keychain")
	req.Materials = []string{"cotton cord", "wooden bead"}
	req.Colors = []string{"teal"}

	created, err := svc.CreateProduct(ctx, req)
	require.NoError(t, err)
	assert.True(t, created.IsAvailable, "availability defaults on")
	assert.False(t, created.IsFeatured)

	// Read back through the store so StringList serialization is exercised.
	stored, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"cotton cord", "wooden bead"}, stored.Materials)
	assert.Equal(t, models.StringList{"teal"}, stored.Colors)
	assert.Equal(t, "12.00", stored.Price.StringFixed(2))

	bySlug, err := svc.GetProductBySlug(ctx, "macrame-keychain")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	evts := pub.all()
	require.Len(t, evts, 1)
	assert.Equal(t, "product_events", evts[0].Topic)
}

func TestCreateProduct_Validation(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*transport.CreateProductRequest)
	}{
		{"missing name", func(r *transport.CreateProductRequest) { r.Name = "" }},
		{"empty slug", func(r *transport.CreateProductRequest) { r.Slug = "" }},
		{"uppercase slug", func(r *transport.CreateProductRequest) { r.Slug = "Bad-Slug" }},
		{"slug with spaces", func(r *transport.CreateProductRequest) { r.Slug = "bad slug" }},
		{"trailing hyphen", func(r *transport.CreateProductRequest) { r.Slug = "bad-" }},
		{"no images", func(r *transport.CreateProductRequest) { r.Images = nil }},
		{"negative stock", func(r *transport.CreateProductRequest) { r.StockQuantity = -1 }},
		{"non-decimal price", func(r *transport.CreateProductRequest) { r.Price = "abc" }},
		{"negative price", func(r *transport.CreateProductRequest) { r.Price = "-1.00" }},
		{"sub-cent price", func(r *transport.CreateProductRequest) { r.Price = "1.999" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validProductRequest("ok-slug")
			tc.mutate(&req)
			_, err := svc.CreateProduct(ctx, req)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateProduct_DuplicateSlug(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, validProductRequest("twice"))
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, validProductRequest("twice"))
	require.ErrorIs(t, err, ErrConflict)
}

func TestPatchProduct(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validProductRequest("patchable"))
	require.NoError(t, err)

	price := "15.25"
	stock := 7
	off := false
	patched, err := svc.PatchProduct(ctx, created.ID, transport.PatchProductRequest{
		Price:         &price,
		StockQuantity: &stock,
		IsAvailable:   &off,
	})
	require.NoError(t, err)
	assert.Equal(t, "15.25", patched.Price.StringFixed(2))
	assert.Equal(t, 7, patched.StockQuantity)
	assert.False(t, patched.IsAvailable)

	badPrice := "9.999"
	_, err = svc.PatchProduct(ctx, created.ID, transport.PatchProductRequest{Price: &badPrice})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.PatchProduct(ctx, 9999, transport.PatchProductRequest{Price: &price})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListProducts_Filters(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	cat := &models.Category{Name: "Necklaces", Slug: "necklaces"}
	require.NoError(t, r.CreateCategory(ctx, cat))

	featured := true
	reqA := validProductRequest("prod-a")
	reqA.CategoryID = &cat.ID
	reqA.IsFeatured = &featured
	_, err := svc.CreateProduct(ctx, reqA)
	require.NoError(t, err)

	hidden := false
	reqB := validProductRequest("prod-b")
	reqB.IsAvailable = &hidden
	_, err = svc.CreateProduct(ctx, reqB)
	require.NoError(t, err)

	avail := true
	list, err := svc.ListProducts(ctx, repo.ProductFilter{IsAvailable: &avail})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "prod-a", list[0].Slug)

	list, err = svc.ListProducts(ctx, repo.ProductFilter{CategoryID: &cat.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "prod-a", list[0].Slug)

	list, err = svc.ListProducts(ctx, repo.ProductFilter{IsFeatured: &featured})
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = svc.ListProducts(ctx, repo.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validProductRequest("to-delete"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))
	require.ErrorIs(t, svc.DeleteProduct(ctx, created.ID), ErrNotFound)
	_, err = svc.GetProduct(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateCategory(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Earrings", Slug: "earrings", DisplayOrder: 2})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Bracelets", Slug: "bracelets", DisplayOrder: 1})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Dup", Slug: "earrings"})
	require.ErrorIs(t, err, ErrConflict)
	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "", Slug: "x"})
	require.ErrorIs(t, err, ErrValidation)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "bracelets", cats[0].Slug, "ordered by display order")
}
