package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	EntryKindExchangeIn   EntryKind = "exchange_in"
	EntryKindExchangeOut  EntryKind = "exchange_out"
	EntryKindTransferIn   EntryKind = "transfer_in"
	EntryKindTransferOut  EntryKind = "transfer_out"
	EntryKindFee          EntryKind = "fee"
	EntryKindTopUp        EntryKind = "topup"
	EntryKindSubscription EntryKind = "subscription"
)

// Valid reports whether k is a known entry kind.
func (k EntryKind) Valid() bool {
	switch k {
	case EntryKindExchangeIn, EntryKindExchangeOut,
		EntryKindTransferIn, EntryKindTransferOut,
		EntryKindFee, EntryKindTopUp, EntryKindSubscription:
		return true
	}
	return false
}

// Entry is one immutable ledger record. Amount is signed: credits positive,
// debits negative. Entries produced by one logical operation share a
// CorrelationID. ExternalRef is set on top-up/subscription credits and
// guarantees payment idempotence.
type Entry struct {
	ID              string
	AccountID       string
	Currency        string
	Amount          decimal.Decimal
	Kind            EntryKind
	CorrelationID   string
	ExternalRef     *string
	PreviousBalance decimal.Decimal
	CurrentBalance  decimal.Decimal
	BalanceVersion  int64
	CreatedAt       time.Time
}

// Validate checks the entry's structural invariants.
func (e *Entry) Validate() error {
	if !e.Kind.Valid() {
		return ErrInvalidEntryKind
	}
	if e.Amount.IsZero() {
		return ErrInvalidAmount
	}
	return nil
}
