package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/domain"
	"github.com/uacwallet/creditledger/internal/infrastructure/metrics"
)

// BonusTier grants a promotional bonus when a payment of exactly Amount is
// confirmed. Tiers are product configuration, not a business rule.
type BonusTier struct {
	Amount decimal.Decimal
	Bonus  decimal.Decimal
}

// DefaultBonusTiers mirrors the product's quick top-up amounts.
func DefaultBonusTiers() []BonusTier {
	return []BonusTier{
		{Amount: decimal.NewFromInt(100), Bonus: decimal.NewFromInt(10)},
		{Amount: decimal.NewFromInt(250), Bonus: decimal.NewFromInt(50)},
		{Amount: decimal.NewFromInt(500), Bonus: decimal.NewFromInt(125)},
	}
}

// PaymentUseCase turns external payment confirmations into ledger credits,
// idempotent on the payment gateway's external reference.
type PaymentUseCase struct {
	ledger     *LedgerUseCase
	entryRepo  EntryRepository
	idGen      IDGenerator
	bonusTiers []BonusTier
	metrics    *metrics.Metrics
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(ledger *LedgerUseCase, entryRepo EntryRepository, idGen IDGenerator, bonusTiers []BonusTier, m *metrics.Metrics) *PaymentUseCase {
	return &PaymentUseCase{
		ledger:     ledger,
		entryRepo:  entryRepo,
		idGen:      idGen,
		bonusTiers: bonusTiers,
		metrics:    m,
	}
}

// ConfirmPaymentInput represents a payment-gateway confirmation. Strict mode
// rejects duplicate references instead of replaying the prior result.
type ConfirmPaymentInput struct {
	AccountID   string
	Amount      decimal.Decimal
	ExternalRef string
	Kind        domain.PaymentKind
	Strict      bool
}

// ConfirmPaymentResult is the outcome of a confirmation. Replayed is true
// when the reference had already been processed and the prior result is
// returned unchanged.
type ConfirmPaymentResult struct {
	CorrelationID string
	Amount        decimal.Decimal
	Bonus         decimal.Decimal
	Total         decimal.Decimal
	Replayed      bool
}

// ConfirmPayment credits the account with the paid amount in UAC, plus any
// promotional bonus as a second entry of the same kind. Confirming the same
// external reference again is a no-op that returns the original result, so
// duplicate gateway callbacks are harmless.
func (uc *PaymentUseCase) ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*ConfirmPaymentResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if !input.Kind.Valid() {
		return nil, domain.ErrInvalidPaymentKind
	}

	if input.ExternalRef == "" {
		return nil, domain.ErrMissingReference
	}

	existing, err := uc.entryRepo.GetByExternalRef(ctx, input.ExternalRef)
	if err != nil && !errors.Is(err, domain.ErrEntryNotFound) {
		return nil, err
	}

	if existing != nil {
		return uc.replay(ctx, input, existing)
	}

	correlationID := uc.idGen.Generate()
	ref := input.ExternalRef

	entries := []*domain.Entry{
		{
			ID:            uc.idGen.Generate(),
			AccountID:     input.AccountID,
			Currency:      domain.CurrencyUAC,
			Amount:        input.Amount,
			Kind:          input.Kind.EntryKind(),
			CorrelationID: correlationID,
			ExternalRef:   &ref,
		},
	}

	bonus := uc.bonusFor(input.Amount)
	if bonus.IsPositive() {
		entries = append(entries, &domain.Entry{
			ID:            uc.idGen.Generate(),
			AccountID:     input.AccountID,
			Currency:      domain.CurrencyUAC,
			Amount:        bonus,
			Kind:          input.Kind.EntryKind(),
			CorrelationID: correlationID,
		})
	}

	if err := uc.ledger.Append(ctx, entries); err != nil {
		// Lost the race against a concurrent confirmation of the same
		// reference: the unique index rejected our write, theirs stands.
		if errors.Is(err, domain.ErrDuplicateReference) {
			existing, refErr := uc.entryRepo.GetByExternalRef(ctx, input.ExternalRef)
			if refErr != nil {
				return nil, refErr
			}

			return uc.replay(ctx, input, existing)
		}

		if uc.metrics != nil {
			uc.metrics.OperationErrors.WithLabelValues("payment").Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsConfirmed.WithLabelValues(string(input.Kind)).Inc()
	}

	return &ConfirmPaymentResult{
		CorrelationID: correlationID,
		Amount:        input.Amount,
		Bonus:         bonus,
		Total:         input.Amount.Add(bonus),
	}, nil
}

func (uc *PaymentUseCase) replay(ctx context.Context, input ConfirmPaymentInput, existing *domain.Entry) (*ConfirmPaymentResult, error) {
	if input.Strict {
		return nil, domain.ErrDuplicateReference
	}

	entries, err := uc.entryRepo.GetByCorrelation(ctx, existing.CorrelationID)
	if err != nil {
		return nil, err
	}

	bonus := decimal.Zero
	for _, e := range entries {
		if e.ID != existing.ID {
			bonus = bonus.Add(e.Amount)
		}
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsReplayed.Inc()
	}

	return &ConfirmPaymentResult{
		CorrelationID: existing.CorrelationID,
		Amount:        existing.Amount,
		Bonus:         bonus,
		Total:         existing.Amount.Add(bonus),
		Replayed:      true,
	}, nil
}

// bonusFor matches the paid amount against the tier schedule. Only exact
// tier amounts earn a bonus; custom amounts do not.
func (uc *PaymentUseCase) bonusFor(amount decimal.Decimal) decimal.Decimal {
	for _, tier := range uc.bonusTiers {
		if tier.Amount.Equal(amount) {
			return tier.Bonus
		}
	}

	return decimal.Zero
}
