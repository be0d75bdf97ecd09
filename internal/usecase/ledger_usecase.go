package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/domain"
)

// LedgerUseCase owns the append-only entry stream and the materialized
// balances derived from it. Every balance-affecting operation goes through
// Append.
type LedgerUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	balanceRepo BalanceRepository
	entryRepo   EntryRepository
	ledgerRepo  LedgerRepository
	retrier     Retrier
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	balanceRepo BalanceRepository,
	entryRepo EntryRepository,
	ledgerRepo LedgerRepository,
	retrier Retrier,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		balanceRepo: balanceRepo,
		entryRepo:   entryRepo,
		ledgerRepo:  ledgerRepo,
		retrier:     retrier,
	}
}

// Append records a batch of entries atomically: either every entry is
// written and every touched balance updated, or nothing is. The batch fails
// with domain.ErrInsufficientFunds if applying it would drive any
// (account, currency) balance negative, validated under row locks taken in
// sorted key order so that concurrent batches touching the same balances
// cannot deadlock. Conflicts are retried a bounded number of times before
// surfacing domain.ErrBusy.
func (uc *LedgerUseCase) Append(ctx context.Context, entries []*domain.Entry) error {
	if len(entries) == 0 {
		return domain.ErrInvalidAmount
	}

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}

	return uc.retrier.Retry(ctx, func() error {
		return uc.appendOnce(ctx, entries)
	})
}

func (uc *LedgerUseCase) appendOnce(ctx context.Context, entries []*domain.Entry) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Locking the account rows also covers balance keys that have no row
	// yet: two first-time credits to the same account serialize here.
	accountIDs := collectUniqueAccountIDs(entries)
	sort.Strings(accountIDs)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return err
	}

	if len(accounts) != len(accountIDs) {
		return domain.ErrAccountNotFound
	}

	for _, a := range accounts {
		if !a.Active {
			return domain.ErrAccountInactive
		}
	}

	// Lock balances in sorted key order (deadlock prevention).
	keys := collectUniqueBalanceKeys(entries)
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	locked, err := uc.balanceRepo.GetForUpdate(ctx, tx, keys)
	if err != nil {
		return err
	}

	balances := make(map[domain.BalanceKey]*domain.Balance, len(keys))
	for _, b := range locked {
		balances[b.Key()] = b
	}

	// An absent row means no entries yet: balance zero, not an error.
	for _, k := range keys {
		if balances[k] == nil {
			balances[k] = &domain.Balance{
				AccountID: k.AccountID,
				Currency:  k.Currency,
				Amount:    decimal.Zero,
			}
		}
	}

	now := time.Now().UTC()

	// Validate the whole batch against the locked balances before writing
	// anything: either every entry lands or none does.
	for _, e := range entries {
		balance := balances[domain.BalanceKey{AccountID: e.AccountID, Currency: e.Currency}]

		if err := balance.ValidateDelta(e.Amount); err != nil {
			return err
		}

		e.PreviousBalance = balance.Amount
		e.CurrentBalance = balance.Apply(e.Amount)
		e.BalanceVersion = balance.Version + 1
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}

		balance.Amount = e.CurrentBalance
		balance.Version++
	}

	for _, e := range entries {
		if err := uc.entryRepo.Create(ctx, tx, e); err != nil {
			return err
		}
	}

	for _, k := range keys {
		balance := balances[k]
		balance.UpdatedAt = now

		if err := uc.balanceRepo.Upsert(ctx, tx, balance); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// CurrentBalance returns the balance for one (account, currency). Accounts
// without entries in that currency have a zero balance.
func (uc *LedgerUseCase) CurrentBalance(ctx context.Context, accountID, currency string) (decimal.Decimal, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}

	balance, err := uc.balanceRepo.Get(ctx, accountID, currency)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return decimal.Zero, nil
		}

		return decimal.Zero, err
	}

	return balance.Amount, nil
}

// WalletSummary is an account's balances with their UAC-equivalent total.
type WalletSummary struct {
	AccountID string
	Balances  []*domain.Balance
	TotalUAC  decimal.Decimal
}

// Summary returns all balances of an account and their total value in UAC,
// priced off one rate snapshot. Currencies without an active rate are
// included in the balance list but excluded from the total.
func (uc *LedgerUseCase) Summary(ctx context.Context, accountID string, rates RateSource) (*WalletSummary, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	balances, err := uc.balanceRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	snapshot, err := rates.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, b := range balances {
		rate, err := snapshot.Rate(b.Currency)
		if err != nil {
			continue
		}

		total = total.Add(b.Amount.Mul(rate))
	}

	return &WalletSummary{
		AccountID: accountID,
		Balances:  balances,
		TotalUAC:  domain.RoundMoney(total),
	}, nil
}

// ListEntries returns an account's entry history, newest first, restartable
// via limit/offset.
func (uc *LedgerUseCase) ListEntries(ctx context.Context, accountID string, filter EntryFilter, limit, offset int) ([]*domain.Entry, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.entryRepo.ListByAccount(ctx, accountID, filter, limit, offset)
}

// CheckConsistency verifies that every materialized balance equals the sum
// of its entries. The ledger is the source of truth; a mismatch means the
// projection diverged.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (bool, []domain.BalanceKey, error) {
	mismatched, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return false, nil, err
	}

	return len(mismatched) == 0, mismatched, nil
}

func collectUniqueAccountIDs(entries []*domain.Entry) []string {
	seen := make(map[string]bool)

	var ids []string
	for _, e := range entries {
		if !seen[e.AccountID] {
			seen[e.AccountID] = true
			ids = append(ids, e.AccountID)
		}
	}

	return ids
}

func collectUniqueBalanceKeys(entries []*domain.Entry) []domain.BalanceKey {
	seen := make(map[domain.BalanceKey]bool)

	var keys []domain.BalanceKey
	for _, e := range entries {
		k := domain.BalanceKey{AccountID: e.AccountID, Currency: e.Currency}
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	return keys
}
