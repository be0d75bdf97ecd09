package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/domain"
	"github.com/uacwallet/creditledger/internal/usecase"
	"github.com/uacwallet/creditledger/internal/usecase/mocks"
)

func newRates(seed map[string]string) *usecase.RateUseCase {
	rateRepo := mocks.NewMockRateRepository()
	for code, rate := range seed {
		rateRepo.Seed(code, decimal.RequireFromString(rate))
	}

	return usecase.NewRateUseCase(rateRepo, mocks.NewMockCurrencyRepository(), mocks.NewMockIDGenerator(), nil, nil)
}

func TestExchangeUseCase_Exchange(t *testing.T) {
	store := mocks.NewStore()
	store.AddAccount("acc-1")
	store.SetBalance("acc-1", "manus", decimal.NewFromInt(100))
	ledger := newLedger(store)
	rates := newRates(map[string]string{"uac": "1.00", "manus": "0.80"})

	uc := usecase.NewExchangeUseCase(ledger, rates, mocks.NewMockIDGenerator(), nil)

	result, err := uc.Exchange(context.Background(), usecase.ExchangeInput{
		AccountID:    "acc-1",
		FromCurrency: "manus",
		ToCurrency:   "uac",
		Amount:       decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.ToAmount.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("expected 80 uac, got %s", result.ToAmount)
	}
	if !result.FromBalance.IsZero() {
		t.Fatalf("expected manus drained, got %s", result.FromBalance)
	}
	if !result.ToBalance.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("expected uac balance 80, got %s", result.ToBalance)
	}

	// Both legs share one correlation id.
	entries := store.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].CorrelationID != entries[1].CorrelationID {
		t.Fatal("exchange legs must share a correlation id")
	}
	if entries[0].Kind != domain.EntryKindExchangeOut || entries[1].Kind != domain.EntryKindExchangeIn {
		t.Fatalf("unexpected entry kinds: %s, %s", entries[0].Kind, entries[1].Kind)
	}
	if !entries[0].Amount.Equal(decimal.NewFromInt(-100)) {
		t.Fatalf("debit leg must be negative, got %s", entries[0].Amount)
	}
}

func TestExchangeUseCase_InsufficientFunds(t *testing.T) {
	store := mocks.NewStore()
	store.AddAccount("acc-1")
	store.SetBalance("acc-1", "manus", decimal.NewFromInt(50))
	ledger := newLedger(store)
	rates := newRates(map[string]string{"uac": "1.00", "manus": "0.80"})

	uc := usecase.NewExchangeUseCase(ledger, rates, mocks.NewMockIDGenerator(), nil)

	_, err := uc.Exchange(context.Background(), usecase.ExchangeInput{
		AccountID:    "acc-1",
		FromCurrency: "manus",
		ToCurrency:   "uac",
		Amount:       decimal.NewFromInt(51),
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// Nothing written, balance untouched.
	if got := len(store.Entries()); got != 0 {
		t.Fatalf("expected no entries, got %d", got)
	}
	if got := store.Balance("acc-1", "manus"); !got.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("balance changed to %s", got)
	}
}

func TestExchangeUseCase_Validation(t *testing.T) {
	store := mocks.NewStore()
	store.AddAccount("acc-1")
	store.SetBalance("acc-1", "uac", decimal.NewFromInt(1000))
	ledger := newLedger(store)
	rates := newRates(map[string]string{"uac": "1.00", "openai": "1.50"})

	uc := usecase.NewExchangeUseCase(ledger, rates, mocks.NewMockIDGenerator(), nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   usecase.ExchangeInput
		wantErr error
	}{
		{
			name: "zero amount",
			input: usecase.ExchangeInput{
				AccountID: "acc-1", FromCurrency: "uac", ToCurrency: "openai",
				Amount: decimal.Zero,
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			input: usecase.ExchangeInput{
				AccountID: "acc-1", FromCurrency: "uac", ToCurrency: "openai",
				Amount: decimal.NewFromInt(-10),
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "same currency",
			input: usecase.ExchangeInput{
				AccountID: "acc-1", FromCurrency: "uac", ToCurrency: "uac",
				Amount: decimal.NewFromInt(10),
			},
			wantErr: domain.ErrSameCurrency,
		},
		{
			name: "unknown currency",
			input: usecase.ExchangeInput{
				AccountID: "acc-1", FromCurrency: "uac", ToCurrency: "ghost",
				Amount: decimal.NewFromInt(10),
			},
			wantErr: domain.ErrUnknownCurrency,
		},
		{
			name: "amount too small for target unit",
			input: usecase.ExchangeInput{
				AccountID: "acc-1", FromCurrency: "uac", ToCurrency: "openai",
				Amount: decimal.RequireFromString("0.004"),
			},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Exchange(ctx, tt.input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestExchangeUseCase_RoundTripWithinRounding(t *testing.T) {
	store := mocks.NewStore()
	store.AddAccount("acc-1")
	store.SetBalance("acc-1", "anthropic", decimal.NewFromInt(100))
	ledger := newLedger(store)
	rates := newRates(map[string]string{"anthropic": "1.10", "huggingface": "0.90"})

	uc := usecase.NewExchangeUseCase(ledger, rates, mocks.NewMockIDGenerator(), nil)
	ctx := context.Background()

	there, err := uc.Exchange(ctx, usecase.ExchangeInput{
		AccountID: "acc-1", FromCurrency: "anthropic", ToCurrency: "huggingface",
		Amount: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("forward exchange: %v", err)
	}

	back, err := uc.Exchange(ctx, usecase.ExchangeInput{
		AccountID: "acc-1", FromCurrency: "huggingface", ToCurrency: "anthropic",
		Amount: there.ToAmount,
	})
	if err != nil {
		t.Fatalf("reverse exchange: %v", err)
	}

	unit := decimal.New(1, -domain.MoneyScale)
	drift := back.ToAmount.Sub(decimal.NewFromInt(100)).Abs()
	if drift.GreaterThan(unit.Mul(decimal.NewFromInt(2))) {
		t.Fatalf("round trip drifted %s", drift)
	}
}
