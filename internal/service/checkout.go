package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/beadloom/storefront/internal/logging"
	"github.com/beadloom/storefront/internal/repo"
	"github.com/beadloom/storefront/internal/transport"
)

// CheckoutLine is one hosted-checkout line item; UnitAmount is in cents.
type CheckoutLine struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

type SessionParams struct {
	OrderID       uint
	OrderNumber   string
	CustomerEmail string
	CustomerName  string
	Lines         []CheckoutLine
	SuccessURL    string
	CancelURL     string
}

type Session struct {
	ID  string
	URL string
}

// SessionBroker mints a hosted checkout session with the external payment
// processor. The order id and number ride along as opaque metadata so the
// webhook can resolve the order without re-parsing URLs.
type SessionBroker interface {
	CreateSession(ctx context.Context, p SessionParams) (*Session, error)
}

type CheckoutService struct {
	Repo          *repo.GormRepo
	Broker        SessionBroker
	PublicBaseURL string
}

// CreateSession builds processor line items from the STORED order items (the
// price at time of purchase, not a recomputation) and returns the hosted
// session redirect URL.
func (s *CheckoutService) CreateSession(ctx context.Context, req transport.CreateSessionRequest) (*transport.CreateSessionResponse, error) {
	order, err := s.Repo.GetOrder(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, req.OrderID)
		}
		return nil, err
	}
	if req.OrderNumber != "" && req.OrderNumber != order.OrderNumber {
		return nil, fmt.Errorf("%w: order number mismatch", ErrValidation)
	}

	items, err := s.Repo.GetOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order %d has no items", ErrValidation, order.ID)
	}

	lines := make([]CheckoutLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, CheckoutLine{
			Name:       item.ProductName,
			UnitAmount: item.ProductPrice.Shift(2).Round(0).IntPart(),
			Quantity:   int64(item.Quantity),
		})
	}

	params := SessionParams{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerEmail: order.CustomerEmail,
		CustomerName:  order.CustomerName,
		Lines:         lines,
		SuccessURL:    fmt.Sprintf("%s/order-confirmation?order=%s", s.PublicBaseURL, order.OrderNumber),
		CancelURL:     fmt.Sprintf("%s/checkout?order=%s", s.PublicBaseURL, order.OrderNumber),
	}

	session, err := s.Broker.CreateSession(ctx, params)
	if err != nil {
		// The order stays pending; session creation can be retried.
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if err := s.Repo.SetOrderPaymentSession(ctx, order.ID, session.ID); err != nil {
		logging.FromContext(ctx).Error("store payment session failed",
			"order_id", order.ID, "session_id", session.ID, "error", err)
	}

	return &transport.CreateSessionResponse{SessionURL: session.URL}, nil
}
