package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a wallet owner. Balances live in per-currency Balance rows and
// are mutated only through ledger entries. Accounts are deactivated, never
// deleted.
type Account struct {
	ID        string
	UserID    string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BalanceKey identifies one (account, currency) balance.
type BalanceKey struct {
	AccountID string
	Currency  string
}

// Less orders keys for lock acquisition.
func (k BalanceKey) Less(other BalanceKey) bool {
	if k.AccountID != other.AccountID {
		return k.AccountID < other.AccountID
	}
	return k.Currency < other.Currency
}

// Balance is the materialized projection of an account's entries in one
// currency. It must always be recomputable from the entry stream.
type Balance struct {
	AccountID string
	Currency  string
	Amount    decimal.Decimal
	Version   int64
	UpdatedAt time.Time
}

// Key returns the balance's key.
func (b *Balance) Key() BalanceKey {
	return BalanceKey{AccountID: b.AccountID, Currency: b.Currency}
}

// ValidateDelta checks that applying delta would not drive the balance
// negative.
func (b *Balance) ValidateDelta(delta decimal.Decimal) error {
	if b.Amount.Add(delta).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// Apply returns the balance after delta.
func (b *Balance) Apply(delta decimal.Decimal) decimal.Decimal {
	return b.Amount.Add(delta)
}
