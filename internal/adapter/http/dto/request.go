package dto

import (
	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/domain"
	"github.com/uacwallet/creditledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		UserID: r.UserID,
		Name:   r.Name,
	}
}

// ExchangeRequest represents a request to convert credits.
type ExchangeRequest struct {
	AccountID    string          `json:"account_id"`
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Amount       decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *ExchangeRequest) ToUseCaseInput() usecase.ExchangeInput {
	return usecase.ExchangeInput{
		AccountID:    r.AccountID,
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		Amount:       r.Amount,
	}
}

// TransferRequest represents a request to send UAC to another account.
// FeeRate is optional; the server default applies when omitted.
type TransferRequest struct {
	FromAccountID string           `json:"from_account_id"`
	ToAccountID   string           `json:"to_account_id"`
	Amount        decimal.Decimal  `json:"amount"`
	FeeRate       *decimal.Decimal `json:"fee_rate,omitempty"`
}

// ToUseCaseInput converts to use case input, applying the default fee rate
// when the request omits one.
func (r *TransferRequest) ToUseCaseInput(defaultFeeRate decimal.Decimal) usecase.TransferInput {
	feeRate := defaultFeeRate
	if r.FeeRate != nil {
		feeRate = *r.FeeRate
	}

	return usecase.TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		FeeRate:       feeRate,
	}
}

// ConfirmPaymentRequest represents a payment-gateway confirmation callback.
type ConfirmPaymentRequest struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	ExternalRef string          `json:"external_ref"`
	Kind        string          `json:"kind"`
	Strict      bool            `json:"strict,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ConfirmPaymentRequest) ToUseCaseInput() usecase.ConfirmPaymentInput {
	return usecase.ConfirmPaymentInput{
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		ExternalRef: r.ExternalRef,
		Kind:        domain.PaymentKind(r.Kind),
		Strict:      r.Strict,
	}
}

// SetRateRequest represents a request to record a new rate version.
type SetRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}
