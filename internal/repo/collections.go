package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/beadloom/storefront/internal/models"
)

func (r *GormRepo) CreateCustomRequest(ctx context.Context, req *models.CustomRequest) error {
	return r.DB.WithContext(ctx).Create(req).Error
}

func (r *GormRepo) ListCustomRequests(ctx context.Context) ([]models.CustomRequest, error) {
	var reqs []models.CustomRequest
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *GormRepo) UpdateCustomRequestStatus(ctx context.Context, id uint, status models.RequestStatus, adminNotes *string) error {
	updates := map[string]any{"status": status}
	if adminNotes != nil {
		updates["admin_notes"] = *adminNotes
	}

	res := r.DB.WithContext(ctx).Model(&models.CustomRequest{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CreateTestimonial(ctx context.Context, t *models.Testimonial) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) ListPublishedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	var ts []models.Testimonial
	if err := r.DB.WithContext(ctx).
		Where("is_approved = ? AND is_published = ?", true, true).
		Order("created_at DESC").
		Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

func (r *GormRepo) ListAllTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	var ts []models.Testimonial
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

func (r *GormRepo) UpdateTestimonialStatus(ctx context.Context, id uint, isApproved, isPublished bool) error {
	res := r.DB.WithContext(ctx).Model(&models.Testimonial{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_approved": isApproved, "is_published": isPublished})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CreateSubscriber(ctx context.Context, sub *models.NewsletterSubscriber) error {
	return r.DB.WithContext(ctx).Create(sub).Error
}

func (r *GormRepo) ListActiveSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	var subs []models.NewsletterSubscriber
	if err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("subscribed_at DESC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *GormRepo) CreateGalleryImage(ctx context.Context, img *models.GalleryImage) error {
	return r.DB.WithContext(ctx).Create(img).Error
}

func (r *GormRepo) ListGalleryImages(ctx context.Context, publishedOnly bool) ([]models.GalleryImage, error) {
	q := r.DB.WithContext(ctx).Model(&models.GalleryImage{})
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}

	var imgs []models.GalleryImage
	if err := q.Order("display_order ASC, created_at DESC").Find(&imgs).Error; err != nil {
		return nil, err
	}
	return imgs, nil
}
