package services

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/models"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/client"
)

// StripeGateway implements PaymentGateway with a per-instance Stripe API client.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{api: client.New(secretKey, nil)}
}

// GenerateClientToken creates a SetupIntent; its client secret lets the browser tokenize a card.
func (g *StripeGateway) GenerateClientToken(ctx context.Context) (string, error) {
	params := &stripe.SetupIntentParams{}
	params.Context = ctx

	si, err := g.api.SetupIntents.New(params)
	if err != nil {
		return "", unwrapStripe(err)
	}
	return si.ClientSecret, nil
}

// Sale confirms a PaymentIntent immediately, the equivalent of submitting for settlement.
func (g *StripeGateway) Sale(ctx context.Context, req SaleRequest) (*models.PaymentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.Amount),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(req.Nonce),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, unwrapStripe(err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusProcessing:
	default:
		return nil, fmt.Errorf("payment intent %s ended in status %s", pi.ID, pi.Status)
	}

	return &models.PaymentResult{
		Success:       true,
		TransactionID: pi.ID,
		Status:        string(pi.Status),
		Amount:        pi.Amount,
		Currency:      string(pi.Currency),
	}, nil
}

// unwrapStripe reduces a Stripe error to its message.
func unwrapStripe(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return errors.New(stripeErr.Msg)
	}
	return err
}
