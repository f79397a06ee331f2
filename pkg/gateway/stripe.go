package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
)

// StripeGateway charges via Stripe PaymentIntents, confirmed on create.
type StripeGateway struct {
	timeout time.Duration
}

// NewStripeGateway sets the package-level Stripe key and returns a
// gateway whose charges are bounded by timeout.
func NewStripeGateway(secretKey string, timeout time.Duration) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{timeout: timeout}
}

func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.AmountMinor),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(req.PaymentMethod),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			reason := string(stripeErr.Code)
			if stripeErr.DeclineCode != "" {
				reason = string(stripeErr.DeclineCode)
			}
			return ChargeResult{Declined: true, DeclineReason: reason}, nil
		}
		return ChargeResult{}, err
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return ChargeResult{TransactionID: pi.ID, Declined: true, DeclineReason: string(pi.Status)}, nil
	}
	return ChargeResult{TransactionID: pi.ID}, nil
}
