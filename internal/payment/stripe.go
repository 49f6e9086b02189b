package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v84"
)

// StripeCreator creates card payment intents through the Stripe API.
type StripeCreator struct {
	client *stripe.Client
}

// NewStripeCreator returns nil when no secret key is configured.
func NewStripeCreator(secretKey string) *StripeCreator {
	key := strings.TrimSpace(secretKey)
	if key == "" {
		return nil
	}
	return &StripeCreator{client: stripe.NewClient(key)}
}

func (s *StripeCreator) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	if s == nil || s.client == nil {
		return "", ErrNotConfigured
	}
	params := &stripe.PaymentIntentCreateParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	intent, err := s.client.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			logrus.WithFields(logrus.Fields{
				"code":        stripeErr.Code,
				"http_status": stripeErr.HTTPStatusCode,
				"request_id":  stripeErr.RequestID,
			}).Warn("stripe rejected payment intent")
		}
		return "", err
	}
	logrus.WithFields(logrus.Fields{
		"intent_id": intent.ID,
		"amount":    amount,
		"currency":  currency,
	}).Info("payment intent created")
	return intent.ClientSecret, nil
}
