package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/beadloom/storefront/internal/events"
	"github.com/beadloom/storefront/internal/logging"
	"github.com/beadloom/storefront/internal/repo"
)

// Reconciler reacts to verified payment-outcome events. Signature
// verification happens at the HTTP edge; this layer assumes the event is
// authentic and concentrates on exactly-once settlement.
type Reconciler struct {
	Repo     *repo.GormRepo
	Producer events.Publisher
}

// SessionCompleted settles a successful checkout: pending -> paid/succeeded
// plus the stock decrement, all gated so a redelivered event id or an
// already-settled order is a no-op. Returns whether this call applied the
// transition.
func (r *Reconciler) SessionCompleted(ctx context.Context, eventID string, orderID uint, orderNumber string) (bool, error) {
	l := logging.FromContext(ctx).With("event_id", eventID, "order_id", orderID)

	applied, err := r.Repo.SettlePayment(ctx, orderID, eventID, "checkout.session.completed")
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Info("webhook event already processed")
			return false, nil
		}
		return false, err
	}
	if !applied {
		l.Info("order already settled, skipping")
		return false, nil
	}

	l.Info("payment succeeded", "order_number", orderNumber)

	if r.Producer != nil {
		event := map[string]any{
			"type":        "order_paid",
			"orderID":     orderID,
			"orderNumber": orderNumber,
		}
		if err := r.Producer.PublishEvent(ctx, events.TopicOrderEvents, orderNumber, event); err != nil {
			l.Error("kafka publish failed", "event", "order_paid", "error", err)
		}
	}
	return true, nil
}

// PaymentFailed records the failure in the event ledger and logs it. The
// order keeps its pending state so checkout can be retried.
func (r *Reconciler) PaymentFailed(ctx context.Context, eventID, paymentIntentID string) error {
	l := logging.FromContext(ctx).With("event_id", eventID)

	if err := r.Repo.RecordFailedPayment(ctx, eventID, "payment_intent.payment_failed", nil); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Info("webhook event already processed")
			return nil
		}
		return err
	}

	l.Warn("payment failed", "payment_intent", paymentIntentID)
	return nil
}
