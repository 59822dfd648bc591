package lib

import (
	"context"
	"os"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

// CreateRefund submits a refund against a captured payment. The engine only
// ever refunds; charges are owned by the payment collaborator. Declared as a
// variable so tests can stand in for the provider.
var CreateRefund = func(paymentIntentId string, amountCents int64) (string, error) {
	sc := GetStripeClient()
	params := stripe.RefundCreateParams{
		PaymentIntent: stripe.String(paymentIntentId),
		Amount:        stripe.Int64(amountCents),
	}
	refund, err := sc.V1Refunds.Create(context.Background(), &params)
	if err != nil {
		return "", err
	}
	return refund.ID, nil
}
