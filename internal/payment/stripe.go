// Package payment wraps the card-payment gateway behind the single
// operation the rest of the system needs.
package payment

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ErrGateway is returned when the payment provider rejects a request;
// provider detail stays in the logs, never in client responses.
var ErrGateway = errors.New("payment gateway error")

// ErrInvalidAmount is returned for non-positive amounts.
var ErrInvalidAmount = errors.New("invalid payment amount")

// Gateway creates a payment authorization for the given price and
// returns the client-side confirmation secret.
type Gateway interface {
	CreateIntent(ctx context.Context, price float64) (clientSecret string, err error)
}

// MinorUnits converts a price in whole currency to the gateway's
// minor-unit integer representation.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// StripeGateway issues Stripe payment intents. Currency is fixed to
// USD, matching what the platform charges.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 {
		return "", ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(MinorUnits(price)),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(uuid.NewString())

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", errors.Join(ErrGateway, err)
	}
	return intent.ClientSecret, nil
}
