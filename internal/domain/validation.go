package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	// MoneyScale is the number of decimal places of the minimum currency unit.
	MoneyScale = 2

	MaxCurrencyCodeLength = 32
	MaxOperationAmount    = "1000000000000" // 1 trillion
)

var currencyCodeRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateAmount validates an operation amount. Amounts arrive through the
// decimal type so they are always finite; this guards sign and magnitude.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxOperationAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxOperationAmount)
	}

	return nil
}

// ValidateCurrencyCode validates the shape of a currency code.
func ValidateCurrencyCode(code string) error {
	code = strings.TrimSpace(code)

	if code == "" || len(code) > MaxCurrencyCodeLength || !currencyCodeRegex.MatchString(code) {
		return fmt.Errorf("%w: %q is not a valid currency code", ErrUnknownCurrency, code)
	}

	return nil
}

// RoundMoney rounds an amount to the minimum currency unit using
// round-half-to-even.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.RoundBank(MoneyScale)
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
