package payment

import (
	"context"
	"errors"
	"math"
	"testing"
)

type fakeCreator struct {
	calls    int
	amount   int64
	currency string
	err      error
}

func (f *fakeCreator) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	f.calls++
	f.amount = amount
	f.currency = currency
	if f.err != nil {
		return "", f.err
	}
	return "pi_secret_123", nil
}

func price(v float64) *float64 { return &v }

func TestCreateIntentConvertsToMinorUnits(t *testing.T) {
	fake := &fakeCreator{}
	bridge := NewBridge(fake, "USD")

	intent, err := bridge.CreateIntent(context.Background(), price(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.ClientSecret != "pi_secret_123" {
		t.Fatalf("unexpected client secret %q", intent.ClientSecret)
	}
	if fake.amount != 1000 || intent.Amount != 1000 {
		t.Fatalf("expected 1000 minor units, got %d", fake.amount)
	}
	if fake.currency != "usd" {
		t.Fatalf("expected lower-case currency, got %q", fake.currency)
	}
}

func TestCreateIntentRejectsInvalidAmounts(t *testing.T) {
	tests := []struct {
		name  string
		price *float64
	}{
		{name: "missing", price: nil},
		{name: "zero", price: price(0)},
		{name: "negative", price: price(-5)},
		{name: "below one cent", price: price(0.004)},
		{name: "nan", price: price(math.NaN())},
		{name: "infinite", price: price(math.Inf(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCreator{}
			_, err := NewBridge(fake, "usd").CreateIntent(context.Background(), tt.price)
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("expected ErrInvalidAmount, got %v", err)
			}
			if fake.calls != 0 {
				t.Fatal("processor must not be called for invalid amounts")
			}
		})
	}
}

func TestMinorUnitsRounds(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{price: 0.01, want: 1},
		{price: 19.99, want: 1999},
		{price: 0.125, want: 13},
		{price: 1.005, want: 100},
	}
	for _, tt := range tests {
		got, err := MinorUnits(tt.price)
		if err != nil {
			t.Fatalf("MinorUnits(%v): %v", tt.price, err)
		}
		if got != tt.want {
			t.Fatalf("MinorUnits(%v) = %d, want %d", tt.price, got, tt.want)
		}
	}
}

func TestCreateIntentPropagatesProcessorFailure(t *testing.T) {
	boom := errors.New("card network down")
	_, err := NewBridge(&fakeCreator{err: boom}, "usd").CreateIntent(context.Background(), price(5))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped processor error, got %v", err)
	}
}

func TestCreateIntentWithoutProcessor(t *testing.T) {
	_, err := NewBridge(nil, "").CreateIntent(context.Background(), price(5))
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
