package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/beadloom/storefront/internal/models"
)

// CreateOrderWithItems inserts the order and its line items in one
// transaction. A crash between the two inserts must not leave an order with
// zero items.
func (r *GormRepo) CreateOrderWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("order has no items")
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if order.ID == 0 {
			// Historically a defect class: never hand back a sentinel id.
			return fmt.Errorf("order insert yielded no id")
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus, paymentStatus *models.PaymentStatus) error {
	updates := map[string]any{"status": status}
	if paymentStatus != nil {
		updates["payment_status"] = *paymentStatus
	}

	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) SetOrderPaymentSession(ctx context.Context, id uint, sessionID string) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("payment_session", sessionID).Error
}

// SettlePayment applies a verified payment-success event. The whole
// settlement runs in one transaction:
//
//  1. record the external event id in the ledger (unique index; a redelivered
//     event aborts here and reports applied=false),
//  2. flip the order pending -> paid/succeeded, gated on the status still
//     being pending,
//  3. decrement stock per line item with a conditional update, clamping at
//     zero when stock already ran out.
//
// Returns applied=false without error when the event or the transition was
// already handled.
func (r *GormRepo) SettlePayment(ctx context.Context, orderID uint, eventID, eventType string) (applied bool, err error) {
	txErr := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ledger := models.WebhookEvent{
			EventID:   eventID,
			EventType: eventType,
			OrderID:   &orderID,
		}
		if err := tx.Create(&ledger).Error; err != nil {
			return err
		}

		gate := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
			Updates(map[string]any{
				"status":         models.OrderStatusPaid,
				"payment_status": models.PaymentStatusSucceeded,
			})
		if gate.Error != nil {
			return gate.Error
		}
		if gate.RowsAffected == 0 {
			// Order missing or already past pending. The ledger row still
			// commits so a replay of this event id stays a no-op.
			return nil
		}

		var items []models.OrderItem
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return err
		}

		for _, item := range items {
			if item.ProductID == nil {
				continue
			}
			dec := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", *item.ProductID, item.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if dec.Error != nil {
				return dec.Error
			}
			if dec.RowsAffected == 0 {
				// Oversold: floor at zero rather than going negative.
				if err := tx.Model(&models.Product{}).
					Where("id = ? AND stock_quantity > 0", *item.ProductID).
					UpdateColumn("stock_quantity", 0).Error; err != nil {
					return err
				}
			}
		}

		applied = true
		return nil
	})
	if txErr != nil {
		return false, txErr
	}
	return applied, nil
}

// RecordFailedPayment notes a payment-failure event in the ledger without
// transitioning the order.
func (r *GormRepo) RecordFailedPayment(ctx context.Context, eventID, eventType string, orderID *uint) error {
	ev := models.WebhookEvent{
		EventID:   eventID,
		EventType: eventType,
		OrderID:   orderID,
	}
	return r.DB.WithContext(ctx).Create(&ev).Error
}
