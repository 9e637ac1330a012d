package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beadloom/storefront/internal/events"
	"github.com/beadloom/storefront/internal/logging"
	"github.com/beadloom/storefront/internal/models"
	"github.com/beadloom/storefront/internal/repo"
	"github.com/beadloom/storefront/internal/search"
	"github.com/beadloom/storefront/internal/transport"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer events.Publisher
	Search   *search.Index
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if !slugRe.MatchString(req.Slug) {
		return nil, fmt.Errorf("%w: slug must be url-safe", ErrValidation)
	}

	cat := &models.Category{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: slug already in use", ErrConflict)
		}
		return nil, err
	}
	return cat, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx, f)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	prod, err := s.Repo.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %q", ErrNotFound, slug)
		}
		return nil, err
	}
	return prod, nil
}

// parsePrice accepts a fixed 2-scale decimal string; prices never travel as
// floats.
func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price is not a decimal", ErrValidation)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if price.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("%w: price has more than 2 decimal places", ErrValidation)
	}
	return price.Round(2), nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if !slugRe.MatchString(req.Slug) {
		return nil, fmt.Errorf("%w: slug must be url-safe", ErrValidation)
	}
	if len(req.Images) == 0 {
		return nil, fmt.Errorf("%w: at least one image required", ErrValidation)
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity cannot be negative", ErrValidation)
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	prod := &models.Product{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         price,
		CategoryID:    req.CategoryID,
		Materials:     req.Materials,
		Colors:        req.Colors,
		Images:        req.Images,
		StockQuantity: req.StockQuantity,
		IsAvailable:   true,
		CreatedBy:     req.CreatedBy,
	}
	if req.IsAvailable != nil {
		prod.IsAvailable = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		prod.IsFeatured = *req.IsFeatured
	}

	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: slug already in use", ErrConflict)
		}
		return nil, err
	}

	s.afterProductChange(ctx, "product_created", prod)
	return prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, id uint, req transport.PatchProductRequest) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Slug != nil {
		if !slugRe.MatchString(*req.Slug) {
			return nil, fmt.Errorf("%w: slug must be url-safe", ErrValidation)
		}
		prod.Slug = *req.Slug
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		prod.Price = price
	}
	if req.CategoryID != nil {
		prod.CategoryID = req.CategoryID
	}
	if req.Materials != nil {
		prod.Materials = *req.Materials
	}
	if req.Colors != nil {
		prod.Colors = *req.Colors
	}
	if req.Images != nil {
		if len(*req.Images) == 0 {
			return nil, fmt.Errorf("%w: at least one image required", ErrValidation)
		}
		prod.Images = *req.Images
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, fmt.Errorf("%w: stock quantity cannot be negative", ErrValidation)
		}
		prod.StockQuantity = *req.StockQuantity
	}
	if req.IsAvailable != nil {
		prod.IsAvailable = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		prod.IsFeatured = *req.IsFeatured
	}
	if req.CreatedBy != nil {
		prod.CreatedBy = *req.CreatedBy
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: slug already in use", ErrConflict)
		}
		return nil, err
	}

	s.afterProductChange(ctx, "product_updated", prod)
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}

	l := logging.FromContext(ctx)
	if s.Producer != nil {
		event := map[string]any{"type": "product_deleted", "productID": id}
		if err := s.Producer.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(id), event); err != nil {
			l.Error("kafka publish failed", "event", "product_deleted", "error", err)
		}
	}
	if s.Search != nil {
		if err := s.Search.DeleteProduct(ctx, id); err != nil {
			l.Error("search deindex failed", "product_id", id, "error", err)
		}
	}
	return nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, q string, from, size int) (int64, []models.Product, error) {
	if s.Search == nil {
		return 0, nil, fmt.Errorf("search is not configured")
	}
	return s.Search.Search(ctx, q, from, size)
}

// afterProductChange fans the mutation out to kafka and the search index.
// Both are best-effort; the row is the source of truth.
func (s *CatalogService) afterProductChange(ctx context.Context, eventType string, prod *models.Product) {
	l := logging.FromContext(ctx)
	if s.Producer != nil {
		event := map[string]any{"type": eventType, "productID": prod.ID, "name": prod.Name}
		if err := s.Producer.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(prod.ID), event); err != nil {
			l.Error("kafka publish failed", "event", eventType, "error", err)
		}
	}
	if s.Search != nil {
		if err := s.Search.IndexProduct(ctx, prod); err != nil {
			l.Error("search index failed", "product_id", prod.ID, "error", err)
		}
	}
}
