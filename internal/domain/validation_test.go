package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/domain"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"positive", "10.50", false},
		{"minimum unit", "0.01", false},
		{"at maximum", "1000000000000", false},
		{"zero", "0", true},
		{"negative", "-5", true},
		{"above maximum", "1000000000000.01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateAmount(decimal.RequireFromString(tt.amount))

			if tt.wantErr && !errors.Is(err, domain.ErrInvalidAmount) {
				t.Fatalf("expected ErrInvalidAmount, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateCurrencyCode(t *testing.T) {
	valid := []string{"uac", "openai", "huggingface", "a", "model_v2"}
	for _, code := range valid {
		if err := domain.ValidateCurrencyCode(code); err != nil {
			t.Errorf("expected %q to be valid, got %v", code, err)
		}
	}

	invalid := []string{"", "UAC", "1credit", "_x", "with space", "with-dash"}
	for _, code := range invalid {
		if err := domain.ValidateCurrencyCode(code); !errors.Is(err, domain.ErrUnknownCurrency) {
			t.Errorf("expected %q to be rejected, got %v", code, err)
		}
	}
}

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"1.005", "1.00"},  // half rounds to even
		{"1.015", "1.02"},  // half rounds to even
		{"1.004", "1.00"},
		{"1.006", "1.01"},
		{"2.675", "2.68"},
		{"-1.005", "-1.00"},
	}

	for _, tt := range tests {
		got := domain.RoundMoney(decimal.RequireFromString(tt.in))
		if !got.Equal(decimal.RequireFromString(tt.expected)) {
			t.Errorf("RoundMoney(%s): expected %s, got %s", tt.in, tt.expected, got)
		}
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name                     string
		limit, offset            int
		expectLimit, expectOffset int
	}{
		{"defaults", 0, 0, 50, 0},
		{"negative offset", 10, -5, 10, 0},
		{"over max", 5000, 0, 1000, 0},
		{"passthrough", 25, 100, 25, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := domain.ValidatePagination(tt.limit, tt.offset)
			if limit != tt.expectLimit || offset != tt.expectOffset {
				t.Fatalf("expected (%d, %d), got (%d, %d)", tt.expectLimit, tt.expectOffset, limit, offset)
			}
		})
	}
}
