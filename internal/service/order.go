package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beadloom/storefront/internal/events"
	"github.com/beadloom/storefront/internal/logging"
	"github.com/beadloom/storefront/internal/models"
	"github.com/beadloom/storefront/internal/repo"
	"github.com/beadloom/storefront/internal/transport"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Producer events.Publisher
}

// NewOrderNumber builds the external-facing order reference. The random
// suffix keeps collisions negligible; the unique column constraint is the
// real guarantee, and an insert failure on collision surfaces as an error.
func NewOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

func validateOrderRequest(req transport.CreateOrderRequest) error {
	switch {
	case req.CustomerFirstName == "":
		return fmt.Errorf("%w: customer first name required", ErrValidation)
	case req.CustomerLastName == "":
		return fmt.Errorf("%w: customer last name required", ErrValidation)
	case req.ShippingStreet == "" || req.ShippingCity == "" || req.ShippingState == "" || req.ShippingZipCode == "":
		return fmt.Errorf("%w: shipping address incomplete", ErrValidation)
	case len(req.Items) == 0:
		return fmt.Errorf("%w: items required", ErrValidation)
	}
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return fmt.Errorf("%w: invalid customer email", ErrValidation)
	}
	for _, item := range req.Items {
		if item.ProductID == 0 {
			return fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
	}
	return nil
}

// CreateOrder prices the cart from stored product rows, never from the
// caller, and persists order plus items atomically in pending state.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*transport.CreateOrderResponse, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(req.Items))

	for _, line := range req.Items {
		product, err := s.Repo.GetProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: product %d", ErrNotFound, line.ProductID)
			}
			return nil, err
		}
		if !product.IsAvailable || product.StockQuantity < line.Quantity {
			return nil, fmt.Errorf("%w: product %q is not available in requested quantity", ErrValidation, product.Name)
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		total = total.Add(subtotal)

		productID := product.ID
		items = append(items, models.OrderItem{
			ProductID:    &productID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			Quantity:     line.Quantity,
			Subtotal:     subtotal,
		})
	}

	order := &models.Order{
		OrderNumber:     NewOrderNumber(),
		CustomerName:    req.CustomerFirstName + " " + req.CustomerLastName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingStreet:  req.ShippingStreet,
		ShippingCity:    req.ShippingCity,
		ShippingState:   req.ShippingState,
		ShippingZipCode: req.ShippingZipCode,
		TotalAmount:     total.Round(2),
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
	}

	if err := s.Repo.CreateOrderWithItems(ctx, order, items); err != nil {
		return nil, err
	}

	if s.Producer != nil {
		event := map[string]any{
			"type":        "order_created",
			"orderID":     order.ID,
			"orderNumber": order.OrderNumber,
			"total":       order.TotalAmount.String(),
		}
		if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, order.OrderNumber, event); err != nil {
			logging.FromContext(ctx).Error("kafka publish failed", "event", "order_created", "error", err)
		}
	}

	return &transport.CreateOrderResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
	}, nil
}

type OrderWithItems struct {
	Order models.Order       `json:"order"`
	Items []models.OrderItem `json:"items"`
}

func (s *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*OrderWithItems, error) {
	order, err := s.Repo.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %q", ErrNotFound, orderNumber)
		}
		return nil, err
	}

	items, err := s.Repo.GetOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &OrderWithItems{Order: *order, Items: items}, nil
}

func (s *OrderService) ListOrders(ctx context.Context, limit, offset int) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, limit, offset)
}

// UpdateOrderStatus is the single admin mutation path after creation; the
// transition table in models is the only authority on what moves are legal.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, req transport.UpdateOrderStatusRequest) error {
	next := models.OrderStatus(req.Status)
	if !next.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}

	var paymentStatus *models.PaymentStatus
	if req.PaymentStatus != nil {
		ps := models.PaymentStatus(*req.PaymentStatus)
		if !ps.Valid() {
			return fmt.Errorf("%w: unknown payment status %q", ErrValidation, *req.PaymentStatus)
		}
		paymentStatus = &ps
	}

	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return err
	}

	if err := order.Status.CanTransitionTo(next); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return s.Repo.UpdateOrderStatus(ctx, id, next, paymentStatus)
}
