package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/domain"
	"github.com/uacwallet/creditledger/internal/infrastructure/metrics"
)

// ExchangeUseCase converts credits between currencies through the ledger.
type ExchangeUseCase struct {
	ledger  *LedgerUseCase
	rates   RateSource
	idGen   IDGenerator
	metrics *metrics.Metrics
}

// NewExchangeUseCase creates a new ExchangeUseCase.
func NewExchangeUseCase(ledger *LedgerUseCase, rates RateSource, idGen IDGenerator, m *metrics.Metrics) *ExchangeUseCase {
	return &ExchangeUseCase{
		ledger:  ledger,
		rates:   rates,
		idGen:   idGen,
		metrics: m,
	}
}

// ExchangeInput represents a conversion request.
type ExchangeInput struct {
	AccountID    string
	FromCurrency string
	ToCurrency   string
	Amount       decimal.Decimal
}

// ExchangeResult is the outcome of a conversion.
type ExchangeResult struct {
	CorrelationID string
	FromCurrency  string
	ToCurrency    string
	FromAmount    decimal.Decimal
	ToAmount      decimal.Decimal
	// Updated balances after the conversion.
	FromBalance decimal.Decimal
	ToBalance   decimal.Decimal
}

// Exchange debits Amount in FromCurrency and credits the converted amount in
// ToCurrency, both legs priced off one rate snapshot and written as one
// atomic ledger batch sharing a correlation id.
func (uc *ExchangeUseCase) Exchange(ctx context.Context, input ExchangeInput) (*ExchangeResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.FromCurrency == input.ToCurrency {
		return nil, domain.ErrSameCurrency
	}

	snapshot, err := uc.rates.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	toAmount, err := snapshot.Convert(input.FromCurrency, input.ToCurrency, input.Amount)
	if err != nil {
		return nil, err
	}

	// A conversion below the target currency's minimum unit rounds to zero
	// and would produce an unbalanced pair.
	if toAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	correlationID := uc.idGen.Generate()

	out := &domain.Entry{
		ID:            uc.idGen.Generate(),
		AccountID:     input.AccountID,
		Currency:      input.FromCurrency,
		Amount:        input.Amount.Neg(),
		Kind:          domain.EntryKindExchangeOut,
		CorrelationID: correlationID,
	}
	in := &domain.Entry{
		ID:            uc.idGen.Generate(),
		AccountID:     input.AccountID,
		Currency:      input.ToCurrency,
		Amount:        toAmount,
		Kind:          domain.EntryKindExchangeIn,
		CorrelationID: correlationID,
	}

	if err := uc.ledger.Append(ctx, []*domain.Entry{out, in}); err != nil {
		if uc.metrics != nil {
			uc.metrics.OperationErrors.WithLabelValues("exchange").Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ExchangesCreated.Inc()
	}

	return &ExchangeResult{
		CorrelationID: correlationID,
		FromCurrency:  input.FromCurrency,
		ToCurrency:    input.ToCurrency,
		FromAmount:    input.Amount,
		ToAmount:      toAmount,
		FromBalance:   out.CurrentBalance,
		ToBalance:     in.CurrentBalance,
	}, nil
}
