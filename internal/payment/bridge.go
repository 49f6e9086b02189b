package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidAmount is returned when the price is missing or below one minor unit.
	ErrInvalidAmount = errors.New("amount must be at least one minor currency unit")
	// ErrNotConfigured is returned when no processor credentials are available.
	ErrNotConfigured = errors.New("payment processor is not configured")
)

// IntentCreator is the processor call the bridge delegates to.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
}

// Intent is a processor charge intent ready to be confirmed by the browser.
type Intent struct {
	ClientSecret string
	Amount       int64
	Currency     string
}

// Bridge converts major-unit prices into card-only charge intents.
type Bridge struct {
	creator  IntentCreator
	currency string
}

func NewBridge(creator IntentCreator, currency string) *Bridge {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = "usd"
	}
	return &Bridge{creator: creator, currency: currency}
}

// Currency is the fixed currency every intent is created in.
func (b *Bridge) Currency() string {
	return b.currency
}

// CreateIntent validates price and asks the processor for an intent.
func (b *Bridge) CreateIntent(ctx context.Context, price *float64) (*Intent, error) {
	if price == nil {
		return nil, ErrInvalidAmount
	}
	amount, err := MinorUnits(*price)
	if err != nil {
		return nil, err
	}
	if b == nil || b.creator == nil {
		return nil, ErrNotConfigured
	}
	secret, err := b.creator.CreateIntent(ctx, amount, b.currency)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return &Intent{ClientSecret: secret, Amount: amount, Currency: b.currency}, nil
}

// MinorUnits converts a major-unit price to minor units, rounding to the nearest unit.
func MinorUnits(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrInvalidAmount
	}
	amount := math.Round(price * 100)
	if amount < 1 || amount > math.MaxInt64/2 {
		return 0, ErrInvalidAmount
	}
	return int64(amount), nil
}
