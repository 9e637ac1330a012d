package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/webhook"

	"github.com/beadloom/storefront/internal/logging"
	"github.com/beadloom/storefront/internal/service"
)

type WebhookHTTP struct {
	Reconciler    *service.Reconciler
	SigningSecret string
}

// Handle receives payment-processor callbacks. The signature is verified
// over the exact request bytes, so the body must never be pre-parsed.
func (h *WebhookHTTP) Handle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.webhook")

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		l.Warn("webhook_rejected", "status", 400, "reason", "unreadable body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	sig := c.Request().Header.Get("Stripe-Signature")
	if sig == "" {
		l.Warn("webhook_rejected", "status", 400, "reason", "missing signature")
		return echo.NewHTTPError(http.StatusBadRequest, "missing signature")
	}

	event, err := webhook.ConstructEvent(payload, sig, h.SigningSecret)
	if err != nil {
		l.Warn("webhook_rejected", "status", 400, "reason", "signature verification failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "signature verification failed")
	}

	// Processor-side endpoint verification probes.
	if strings.HasPrefix(event.ID, "evt_test_") {
		return c.JSON(http.StatusOK, echo.Map{"verified": true})
	}

	l = l.With("event_id", event.ID, "event_type", string(event.Type))
	l.Info("webhook_received")

	switch string(event.Type) {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			l.Error("webhook_failed", "status", 500, "reason", "bad session payload", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "webhook processing failed")
		}

		orderNumber := sess.ClientReferenceID
		orderIDRaw := sess.Metadata["orderId"]
		if orderNumber == "" || orderIDRaw == "" {
			l.Warn("webhook_skipped", "reason", "missing order metadata")
			break
		}

		orderID, err := strconv.ParseUint(orderIDRaw, 10, 32)
		if err != nil {
			l.Error("webhook_failed", "status", 500, "reason", "bad orderId metadata", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "webhook processing failed")
		}

		if _, err := h.Reconciler.SessionCompleted(ctx, event.ID, uint(orderID), orderNumber); err != nil {
			l.Error("webhook_failed", "status", 500, "reason", "settlement failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "webhook processing failed")
		}

	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			l.Error("webhook_failed", "status", 500, "reason", "bad intent payload", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "webhook processing failed")
		}
		if err := h.Reconciler.PaymentFailed(ctx, event.ID, intent.ID); err != nil {
			l.Error("webhook_failed", "status", 500, "reason", "record failure failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "webhook processing failed")
		}

	default:
		l.Info("webhook_unhandled_type")
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true})
}
