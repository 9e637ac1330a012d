package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"

	"github.com/beadloom/storefront/internal/service"
)

// StripeBroker implements service.SessionBroker against Stripe hosted
// checkout.
type StripeBroker struct{}

func NewStripeBroker(secretKey string) *StripeBroker {
	stripe.Key = secretKey
	return &StripeBroker{}
}

func (b *StripeBroker) CreateSession(ctx context.Context, p service.SessionParams) (*service.Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(p.Lines))
	for _, line := range p.Lines {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(line.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:                stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes:  stripe.StringSlice([]string{"card"}),
		LineItems:           lineItems,
		SuccessURL:          stripe.String(p.SuccessURL),
		CancelURL:           stripe.String(p.CancelURL),
		CustomerEmail:       stripe.String(p.CustomerEmail),
		ClientReferenceID:   stripe.String(p.OrderNumber),
		AllowPromotionCodes: stripe.Bool(true),
		Metadata: map[string]string{
			"orderId":       strconv.FormatUint(uint64(p.OrderID), 10),
			"orderNumber":   p.OrderNumber,
			"customerEmail": p.CustomerEmail,
			"customerName":  p.CustomerName,
		},
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}

	return &service.Session{ID: sess.ID, URL: sess.URL}, nil
}
