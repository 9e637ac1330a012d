package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beadloom/storefront/internal/models"
	"github.com/beadloom/storefront/internal/repo"
	"github.com/beadloom/storefront/internal/transport"
)

// CollectionsService covers the ancillary collections: custom requests,
// testimonials, newsletter, gallery.
type CollectionsService struct {
	Repo *repo.GormRepo
}

func (s *CollectionsService) CreateCustomRequest(ctx context.Context, req transport.CreateCustomRequestRequest) (*models.CustomRequest, error) {
	if req.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name required", ErrValidation)
	}
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return nil, fmt.Errorf("%w: invalid customer email", ErrValidation)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description required", ErrValidation)
	}

	var budget *decimal.Decimal
	if req.Budget != nil && *req.Budget != "" {
		b, err := decimal.NewFromString(*req.Budget)
		if err != nil || b.IsNegative() {
			return nil, fmt.Errorf("%w: invalid budget", ErrValidation)
		}
		b = b.Round(2)
		budget = &b
	}

	cr := &models.CustomRequest{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		ItemType:      req.ItemType,
		Description:   req.Description,
		Colors:        req.Colors,
		Budget:        budget,
		Status:        models.RequestStatusPending,
	}
	if err := s.Repo.CreateCustomRequest(ctx, cr); err != nil {
		return nil, err
	}
	return cr, nil
}

func (s *CollectionsService) ListCustomRequests(ctx context.Context) ([]models.CustomRequest, error) {
	return s.Repo.ListCustomRequests(ctx)
}

func (s *CollectionsService) UpdateCustomRequestStatus(ctx context.Context, id uint, req transport.UpdateRequestStatusRequest) error {
	status := models.RequestStatus(req.Status)
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}

	if err := s.Repo.UpdateCustomRequestStatus(ctx, id, status, req.AdminNotes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: custom request %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

// CreateTestimonial always starts unapproved and unpublished; only the admin
// status update makes it visible.
func (s *CollectionsService) CreateTestimonial(ctx context.Context, req transport.CreateTestimonialRequest) (*models.Testimonial, error) {
	if req.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name required", ErrValidation)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if req.Comment == "" {
		return nil, fmt.Errorf("%w: comment required", ErrValidation)
	}
	if req.CustomerEmail != "" {
		if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
			return nil, fmt.Errorf("%w: invalid customer email", ErrValidation)
		}
	}

	t := &models.Testimonial{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Rating:        req.Rating,
		Comment:       req.Comment,
		ProductID:     req.ProductID,
		OrderID:       req.OrderID,
	}
	if err := s.Repo.CreateTestimonial(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *CollectionsService) ListPublishedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.Repo.ListPublishedTestimonials(ctx)
}

func (s *CollectionsService) ListAllTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.Repo.ListAllTestimonials(ctx)
}

func (s *CollectionsService) UpdateTestimonialStatus(ctx context.Context, id uint, req transport.UpdateTestimonialStatusRequest) error {
	if err := s.Repo.UpdateTestimonialStatus(ctx, id, req.IsApproved, req.IsPublished); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: testimonial %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *CollectionsService) Subscribe(ctx context.Context, req transport.SubscribeRequest) (*models.NewsletterSubscriber, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}

	sub := &models.NewsletterSubscriber{
		Email:    req.Email,
		Name:     req.Name,
		IsActive: true,
	}
	if err := s.Repo.CreateSubscriber(ctx, sub); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already subscribed", ErrConflict)
		}
		return nil, err
	}
	return sub, nil
}

func (s *CollectionsService) ListSubscribers(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	return s.Repo.ListActiveSubscribers(ctx)
}

func (s *CollectionsService) CreateGalleryImage(ctx context.Context, req transport.CreateGalleryImageRequest) (*models.GalleryImage, error) {
	if req.ImageURL == "" {
		return nil, fmt.Errorf("%w: image url required", ErrValidation)
	}

	img := &models.GalleryImage{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Category:     req.Category,
		DisplayOrder: req.DisplayOrder,
		IsPublished:  true,
	}
	if req.IsPublished != nil {
		img.IsPublished = *req.IsPublished
	}
	if err := s.Repo.CreateGalleryImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *CollectionsService) ListGalleryImages(ctx context.Context, publishedOnly bool) ([]models.GalleryImage, error) {
	return s.Repo.ListGalleryImages(ctx, publishedOnly)
}
