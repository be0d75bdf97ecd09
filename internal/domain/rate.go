package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateEntry is one version of a currency's conversion rate to UAC. Rates are
// append-only: setting a new rate inserts a new entry so that historical
// conversions stay reproducible.
type RateEntry struct {
	ID          string
	Currency    string
	Rate        decimal.Decimal
	EffectiveAt time.Time
}

// Validate checks the rate is usable.
func (r *RateEntry) Validate() error {
	if r.Rate.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidRate
	}
	return nil
}

// RateSnapshot is the set of active rates read at one instant. Both legs of
// a conversion always price off the same snapshot.
type RateSnapshot struct {
	TakenAt time.Time
	rates   map[string]decimal.Decimal
}

// NewRateSnapshot builds a snapshot from the active rate per currency.
func NewRateSnapshot(takenAt time.Time, entries []*RateEntry) *RateSnapshot {
	rates := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		rates[e.Currency] = e.Rate
	}

	return &RateSnapshot{TakenAt: takenAt, rates: rates}
}

// Rate returns the snapshot's rate-to-UAC for a currency.
func (s *RateSnapshot) Rate(currency string) (decimal.Decimal, error) {
	rate, ok := s.rates[currency]
	if !ok {
		return decimal.Zero, ErrUnknownCurrency
	}

	return rate, nil
}

// Convert converts amount from one currency to another through UAC,
// rounding the result to the currency's minimum unit with banker's rounding.
func (s *RateSnapshot) Convert(from, to string, amount decimal.Decimal) (decimal.Decimal, error) {
	fromRate, err := s.Rate(from)
	if err != nil {
		return decimal.Zero, err
	}

	toRate, err := s.Rate(to)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Mul(fromRate).Div(toRate).RoundBank(MoneyScale), nil
}

// Currencies lists the currency codes present in the snapshot.
func (s *RateSnapshot) Currencies() []string {
	codes := make([]string, 0, len(s.rates))
	for code := range s.rates {
		codes = append(codes, code)
	}

	return codes
}
