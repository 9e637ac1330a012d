package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/beadloom/storefront/internal/models"
)

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := r.DB.WithContext(ctx).
		Order("display_order ASC, name ASC").
		Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

// ProductFilter narrows ListProducts; nil fields are ignored.
type ProductFilter struct {
	CategoryID  *uint
	IsAvailable *bool
	IsFeatured  *bool
}

func (r *GormRepo) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.IsAvailable != nil {
		q = q.Where("is_available = ?", *f.IsAvailable)
	}
	if f.IsFeatured != nil {
		q = q.Where("is_featured = ?", *f.IsFeatured)
	}

	var items []models.Product
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Save(prod).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
