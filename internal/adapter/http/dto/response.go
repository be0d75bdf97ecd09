package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/domain"
	"github.com/uacwallet/creditledger/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Name:      a.Name,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// BalanceResponse represents one currency balance in API responses.
type BalanceResponse struct {
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BalanceFromDomain converts domain balance to response.
func BalanceFromDomain(b *domain.Balance) *BalanceResponse {
	return &BalanceResponse{
		Currency:  b.Currency,
		Amount:    b.Amount,
		UpdatedAt: b.UpdatedAt,
	}
}

// WalletSummaryResponse represents an account's balances with their
// UAC-equivalent total.
type WalletSummaryResponse struct {
	AccountID string             `json:"account_id"`
	Balances  []*BalanceResponse `json:"balances"`
	TotalUAC  decimal.Decimal    `json:"total_uac"`
}

// SummaryFromUseCase converts a wallet summary to response.
func SummaryFromUseCase(s *usecase.WalletSummary) *WalletSummaryResponse {
	balances := make([]*BalanceResponse, len(s.Balances))
	for i, b := range s.Balances {
		balances[i] = BalanceFromDomain(b)
	}

	return &WalletSummaryResponse{
		AccountID: s.AccountID,
		Balances:  balances,
		TotalUAC:  s.TotalUAC,
	}
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"account_id"`
	Currency      string          `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          string          `json:"kind"`
	CorrelationID string          `json:"correlation_id"`
	ExternalRef   *string         `json:"external_ref,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		AccountID:     e.AccountID,
		Currency:      e.Currency,
		Amount:        e.Amount,
		Kind:          string(e.Kind),
		CorrelationID: e.CorrelationID,
		ExternalRef:   e.ExternalRef,
		Balance:       e.CurrentBalance,
		CreatedAt:     e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// RateResponse represents a rate version in API responses.
type RateResponse struct {
	Currency    string          `json:"currency"`
	Rate        decimal.Decimal `json:"rate"`
	EffectiveAt time.Time       `json:"effective_at"`
}

// RateFromDomain converts a domain rate entry to response.
func RateFromDomain(r *domain.RateEntry) *RateResponse {
	return &RateResponse{
		Currency:    r.Currency,
		Rate:        r.Rate,
		EffectiveAt: r.EffectiveAt,
	}
}

// RatesFromDomain converts domain rate entries to responses.
func RatesFromDomain(rates []*domain.RateEntry) []*RateResponse {
	result := make([]*RateResponse, len(rates))
	for i, r := range rates {
		result[i] = RateFromDomain(r)
	}
	return result
}

// ExchangeResponse represents a completed conversion.
type ExchangeResponse struct {
	CorrelationID string          `json:"correlation_id"`
	FromCurrency  string          `json:"from_currency"`
	ToCurrency    string          `json:"to_currency"`
	FromAmount    decimal.Decimal `json:"from_amount"`
	ToAmount      decimal.Decimal `json:"to_amount"`
	FromBalance   decimal.Decimal `json:"from_balance"`
	ToBalance     decimal.Decimal `json:"to_balance"`
}

// ExchangeFromUseCase converts an exchange result to response.
func ExchangeFromUseCase(r *usecase.ExchangeResult) *ExchangeResponse {
	return &ExchangeResponse{
		CorrelationID: r.CorrelationID,
		FromCurrency:  r.FromCurrency,
		ToCurrency:    r.ToCurrency,
		FromAmount:    r.FromAmount,
		ToAmount:      r.ToAmount,
		FromBalance:   r.FromBalance,
		ToBalance:     r.ToBalance,
	}
}

// TransferResponse represents a completed transfer.
type TransferResponse struct {
	CorrelationID string          `json:"correlation_id"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	FromBalance   decimal.Decimal `json:"from_balance"`
	ToBalance     decimal.Decimal `json:"to_balance"`
}

// TransferFromUseCase converts a transfer result to response.
func TransferFromUseCase(r *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		CorrelationID: r.CorrelationID,
		Amount:        r.Amount,
		Fee:           r.Fee,
		FromBalance:   r.FromBalance,
		ToBalance:     r.ToBalance,
	}
}

// PaymentResponse represents a payment confirmation outcome.
type PaymentResponse struct {
	CorrelationID string          `json:"correlation_id"`
	Amount        decimal.Decimal `json:"amount"`
	Bonus         decimal.Decimal `json:"bonus"`
	Total         decimal.Decimal `json:"total"`
	Replayed      bool            `json:"replayed"`
}

// PaymentFromUseCase converts a payment result to response.
func PaymentFromUseCase(r *usecase.ConfirmPaymentResult) *PaymentResponse {
	return &PaymentResponse{
		CorrelationID: r.CorrelationID,
		Amount:        r.Amount,
		Bonus:         r.Bonus,
		Total:         r.Total,
		Replayed:      r.Replayed,
	}
}

// ConsistencyResponse represents the ledger consistency check outcome.
type ConsistencyResponse struct {
	Consistent bool     `json:"consistent"`
	Status     string   `json:"status"`
	Mismatched []string `json:"mismatched,omitempty"`
}
