package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// GetByIDsForUpdate locks the account rows until the transaction ends.
	// This is what serializes concurrent batches whose balance keys have no
	// row to lock yet.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	Deactivate(ctx context.Context, id string, updatedAt time.Time) error
}

// BalanceRepository defines data access for materialized balances.
type BalanceRepository interface {
	// Get returns the balance row, or domain.ErrEntryNotFound when the
	// account has no entries in that currency yet.
	Get(ctx context.Context, accountID, currency string) (*domain.Balance, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Balance, error)
	// GetForUpdate locks the balance rows for the given keys in the given
	// order. Keys without a row are absent from the result.
	GetForUpdate(ctx context.Context, tx Transaction, keys []domain.BalanceKey) ([]*domain.Balance, error)
	Upsert(ctx context.Context, tx Transaction, balance *domain.Balance) error
}

// EntryFilter narrows an entry history query.
type EntryFilter struct {
	Currency string
	Kind     domain.EntryKind
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	ListByAccount(ctx context.Context, accountID string, filter EntryFilter, limit, offset int) ([]*domain.Entry, error)
	GetByCorrelation(ctx context.Context, correlationID string) ([]*domain.Entry, error)
	// GetByExternalRef returns the entry tagged with ref, or
	// domain.ErrEntryNotFound.
	GetByExternalRef(ctx context.Context, ref string) (*domain.Entry, error)
	SumByAccountCurrency(ctx context.Context, accountID, currency string) (decimal.Decimal, error)
}

// LedgerRepository defines ledger-wide data access.
type LedgerRepository interface {
	// CheckConsistency compares every materialized balance against the sum
	// of its entries and returns the mismatched keys.
	CheckConsistency(ctx context.Context) ([]domain.BalanceKey, error)
}

// RateRepository defines data access for the rate table.
type RateRepository interface {
	Create(ctx context.Context, rate *domain.RateEntry) error
	// GetActive returns the latest rate per active currency.
	GetActive(ctx context.Context) ([]*domain.RateEntry, error)
	// GetActiveByCurrency returns the latest rate for one currency, or
	// domain.ErrUnknownCurrency.
	GetActiveByCurrency(ctx context.Context, currency string) (*domain.RateEntry, error)
	ListHistory(ctx context.Context, currency string, limit, offset int) ([]*domain.RateEntry, error)
}

// CurrencyRepository defines data access for currencies.
type CurrencyRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Currency, error)
	List(ctx context.Context) ([]*domain.Currency, error)
}

// RateSource supplies consistent rate snapshots to conversions.
type RateSource interface {
	Snapshot(ctx context.Context) (*domain.RateSnapshot, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient conflicts. Implementations wrap
// the final error in domain.ErrBusy when retries are exhausted on a
// retryable conflict.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
