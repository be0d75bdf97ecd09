package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/domain"
	"github.com/uacwallet/creditledger/internal/infrastructure/metrics"
)

// TransferUseCase moves UAC between two accounts, deducting a transaction
// fee credited to the platform fee account.
type TransferUseCase struct {
	ledger       *LedgerUseCase
	idGen        IDGenerator
	feeAccountID string
	metrics      *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(ledger *LedgerUseCase, idGen IDGenerator, feeAccountID string, m *metrics.Metrics) *TransferUseCase {
	return &TransferUseCase{
		ledger:       ledger,
		idGen:        idGen,
		feeAccountID: feeAccountID,
		metrics:      m,
	}
}

// TransferInput represents a transfer request. FeeRate is a fraction of the
// amount (0.02 = 2%).
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	FeeRate       decimal.Decimal
}

// TransferResult is the outcome of a transfer.
type TransferResult struct {
	CorrelationID string
	Amount        decimal.Decimal
	Fee           decimal.Decimal
	// Updated UAC balances after the transfer.
	FromBalance decimal.Decimal
	ToBalance   decimal.Decimal
}

// Transfer debits amount plus fee from the sender, credits amount to the
// recipient and fee to the platform fee account, as one atomic ledger batch
// sharing a correlation id.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.FeeRate.IsNegative() || input.FeeRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, domain.ErrInvalidAmount
	}

	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	fee := domain.RoundMoney(input.Amount.Mul(input.FeeRate))
	correlationID := uc.idGen.Generate()

	entries := []*domain.Entry{
		{
			ID:            uc.idGen.Generate(),
			AccountID:     input.FromAccountID,
			Currency:      domain.CurrencyUAC,
			Amount:        input.Amount.Add(fee).Neg(),
			Kind:          domain.EntryKindTransferOut,
			CorrelationID: correlationID,
		},
		{
			ID:            uc.idGen.Generate(),
			AccountID:     input.ToAccountID,
			Currency:      domain.CurrencyUAC,
			Amount:        input.Amount,
			Kind:          domain.EntryKindTransferIn,
			CorrelationID: correlationID,
		},
	}

	if fee.IsPositive() {
		entries = append(entries, &domain.Entry{
			ID:            uc.idGen.Generate(),
			AccountID:     uc.feeAccountID,
			Currency:      domain.CurrencyUAC,
			Amount:        fee,
			Kind:          domain.EntryKindFee,
			CorrelationID: correlationID,
		})
	}

	if err := uc.ledger.Append(ctx, entries); err != nil {
		if uc.metrics != nil {
			uc.metrics.OperationErrors.WithLabelValues("transfer").Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
	}

	return &TransferResult{
		CorrelationID: correlationID,
		Amount:        input.Amount,
		Fee:           fee,
		FromBalance:   entries[0].CurrentBalance,
		ToBalance:     entries[1].CurrentBalance,
	}, nil
}
