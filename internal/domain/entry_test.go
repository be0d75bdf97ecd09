package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/domain"
)

func TestEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   domain.Entry
		wantErr error
	}{
		{
			name:  "valid credit",
			entry: domain.Entry{Kind: domain.EntryKindTopUp, Amount: decimal.NewFromInt(100)},
		},
		{
			name:  "valid debit",
			entry: domain.Entry{Kind: domain.EntryKindExchangeOut, Amount: decimal.NewFromInt(-5)},
		},
		{
			name:    "unknown kind",
			entry:   domain.Entry{Kind: "refund", Amount: decimal.NewFromInt(1)},
			wantErr: domain.ErrInvalidEntryKind,
		},
		{
			name:    "zero amount",
			entry:   domain.Entry{Kind: domain.EntryKindFee, Amount: decimal.Zero},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestBalanceKey_Less(t *testing.T) {
	a := domain.BalanceKey{AccountID: "acc-1", Currency: "uac"}
	b := domain.BalanceKey{AccountID: "acc-1", Currency: "openai"}
	c := domain.BalanceKey{AccountID: "acc-2", Currency: "anthropic"}

	if !b.Less(a) {
		t.Error("same account should order by currency")
	}
	if !a.Less(c) {
		t.Error("different accounts should order by account id")
	}
	if a.Less(a) {
		t.Error("a key is not less than itself")
	}
}

func TestBalance_ValidateDelta(t *testing.T) {
	balance := &domain.Balance{
		AccountID: "acc-1",
		Currency:  "uac",
		Amount:    decimal.NewFromInt(100),
	}

	if err := balance.ValidateDelta(decimal.NewFromInt(-100)); err != nil {
		t.Fatalf("draining to exactly zero should be allowed: %v", err)
	}

	if err := balance.ValidateDelta(decimal.RequireFromString("-100.01")); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if err := balance.ValidateDelta(decimal.NewFromInt(50)); err != nil {
		t.Fatalf("credits are always allowed: %v", err)
	}
}

func TestPaymentKind(t *testing.T) {
	if !domain.PaymentKindTopUp.Valid() || !domain.PaymentKindSubscription.Valid() {
		t.Error("known kinds should be valid")
	}
	if domain.PaymentKind("refund").Valid() {
		t.Error("unknown kind should be invalid")
	}

	if domain.PaymentKindTopUp.EntryKind() != domain.EntryKindTopUp {
		t.Error("topup payment maps to topup entry")
	}
	if domain.PaymentKindSubscription.EntryKind() != domain.EntryKindSubscription {
		t.Error("subscription payment maps to subscription entry")
	}
}
