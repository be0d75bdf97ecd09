// Package mocks provides memory-backed test doubles for the usecase
// interfaces. Each mock stores state in maps guarded by the shared Store
// mutex and exposes func fields to override individual methods.
package mocks

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/domain"
	"github.com/uacwallet/creditledger/internal/usecase"
)

// Store is the shared in-memory state behind the repository mocks. The
// transaction manager serializes access so concurrent usecase calls behave
// like row-locked database transactions.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	balances map[domain.BalanceKey]*domain.Balance
	entries  []*domain.Entry
	byRef    map[string]*domain.Entry
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		balances: make(map[domain.BalanceKey]*domain.Balance),
		byRef:    make(map[string]*domain.Entry),
	}
}

// AddAccount seeds an active account.
func (s *Store) AddAccount(id string) *domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := &domain.Account{ID: id, Name: id, Active: true, CreatedAt: time.Now().UTC()}
	s.accounts[id] = account

	return account
}

// SetBalance seeds a materialized balance directly. Tests that care about
// the entry-stream invariant should seed through the ledger instead.
func (s *Store) SetBalance(accountID, currency string, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.BalanceKey{AccountID: accountID, Currency: currency}
	s.balances[key] = &domain.Balance{
		AccountID: accountID,
		Currency:  currency,
		Amount:    amount,
	}
}

// Balance returns the current materialized balance for a key, zero if none.
func (s *Store) Balance(accountID, currency string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.balances[domain.BalanceKey{AccountID: accountID, Currency: currency}]; ok {
		return b.Amount
	}

	return decimal.Zero
}

// Entries returns a copy of the entry stream.
func (s *Store) Entries() []*domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Entry, len(s.entries))
	copy(out, s.entries)

	return out
}

// MockTransactionManager serializes transactions on the store mutex.
type MockTransactionManager struct {
	store *Store

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

// NewMockTransactionManager creates a transaction manager over store.
func NewMockTransactionManager(store *Store) *MockTransactionManager {
	return &MockTransactionManager{store: store}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}

	m.store.mu.Lock()

	return &mockTx{store: m.store}, nil
}

type mockTx struct {
	store *Store
	done  bool
}

func (t *mockTx) Commit(ctx context.Context) error {
	if !t.done {
		t.done = true
		t.store.mu.Unlock()
	}

	return nil
}

func (t *mockTx) Rollback(ctx context.Context) error {
	if !t.done {
		t.done = true
		t.store.mu.Unlock()
	}

	return nil
}

// MockAccountRepository is a memory-backed AccountRepository.
type MockAccountRepository struct {
	store *Store

	CreateFunc   func(ctx context.Context, account *domain.Account) error
	GetByIDFunc  func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	ListFunc     func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository(store *Store) *MockAccountRepository {
	return &MockAccountRepository{store: store}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.accounts[account.ID] = account

	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if acc, ok := m.store.accounts[id]; ok {
		return acc, nil
	}

	return nil, domain.ErrAccountNotFound
}

// GetByIDsForUpdate runs inside a transaction; the store mutex is already held.
func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}

	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.store.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}

	return accounts, nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	var ids []string
	for id := range m.store.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var accounts []*domain.Account
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(accounts) == limit {
			break
		}
		accounts = append(accounts, m.store.accounts[id])
	}

	return accounts, nil
}

func (m *MockAccountRepository) Deactivate(ctx context.Context, id string, updatedAt time.Time) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	acc, ok := m.store.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	acc.Active = false
	acc.UpdatedAt = updatedAt

	return nil
}

// MockBalanceRepository is a memory-backed BalanceRepository.
type MockBalanceRepository struct {
	store *Store

	GetFunc          func(ctx context.Context, accountID, currency string) (*domain.Balance, error)
	GetForUpdateFunc func(ctx context.Context, tx usecase.Transaction, keys []domain.BalanceKey) ([]*domain.Balance, error)
}

func NewMockBalanceRepository(store *Store) *MockBalanceRepository {
	return &MockBalanceRepository{store: store}
}

func (m *MockBalanceRepository) Get(ctx context.Context, accountID, currency string) (*domain.Balance, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, accountID, currency)
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if b, ok := m.store.balances[domain.BalanceKey{AccountID: accountID, Currency: currency}]; ok {
		copied := *b
		return &copied, nil
	}

	return nil, domain.ErrEntryNotFound
}

func (m *MockBalanceRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Balance, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	var balances []*domain.Balance
	for _, b := range m.store.balances {
		if b.AccountID == accountID {
			copied := *b
			balances = append(balances, &copied)
		}
	}

	sort.Slice(balances, func(i, j int) bool { return balances[i].Currency < balances[j].Currency })

	return balances, nil
}

// GetForUpdate runs inside a transaction; the store mutex is already held.
func (m *MockBalanceRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, keys []domain.BalanceKey) ([]*domain.Balance, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, tx, keys)
	}

	var balances []*domain.Balance
	for _, k := range keys {
		if b, ok := m.store.balances[k]; ok {
			copied := *b
			balances = append(balances, &copied)
		}
	}

	return balances, nil
}

func (m *MockBalanceRepository) Upsert(ctx context.Context, tx usecase.Transaction, balance *domain.Balance) error {
	copied := *balance
	m.store.balances[balance.Key()] = &copied

	return nil
}

// MockEntryRepository is a memory-backed EntryRepository. It enforces the
// unique external-reference index the way the database schema does.
type MockEntryRepository struct {
	store *Store

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	GetByExternalRefFunc func(ctx context.Context, ref string) (*domain.Entry, error)
}

func NewMockEntryRepository(store *Store) *MockEntryRepository {
	return &MockEntryRepository{store: store}
}

// Create runs inside a transaction; the store mutex is already held.
func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}

	if entry.ExternalRef != nil {
		if _, exists := m.store.byRef[*entry.ExternalRef]; exists {
			return domain.ErrDuplicateReference
		}
	}

	copied := *entry
	m.store.entries = append(m.store.entries, &copied)
	if copied.ExternalRef != nil {
		m.store.byRef[*copied.ExternalRef] = &copied
	}

	return nil
}

func (m *MockEntryRepository) ListByAccount(ctx context.Context, accountID string, filter usecase.EntryFilter, limit, offset int) ([]*domain.Entry, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	var matched []*domain.Entry
	for i := len(m.store.entries) - 1; i >= 0; i-- {
		e := m.store.entries[i]
		if e.AccountID != accountID {
			continue
		}
		if filter.Currency != "" && e.Currency != filter.Currency {
			continue
		}
		if filter.Kind != "" && e.Kind != filter.Kind {
			continue
		}
		matched = append(matched, e)
	}

	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func (m *MockEntryRepository) GetByCorrelation(ctx context.Context, correlationID string) ([]*domain.Entry, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	var matched []*domain.Entry
	for _, e := range m.store.entries {
		if e.CorrelationID == correlationID {
			matched = append(matched, e)
		}
	}

	return matched, nil
}

func (m *MockEntryRepository) GetByExternalRef(ctx context.Context, ref string) (*domain.Entry, error) {
	if m.GetByExternalRefFunc != nil {
		return m.GetByExternalRefFunc(ctx, ref)
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if e, ok := m.store.byRef[ref]; ok {
		return e, nil
	}

	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) SumByAccountCurrency(ctx context.Context, accountID, currency string) (decimal.Decimal, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	sum := decimal.Zero
	for _, e := range m.store.entries {
		if e.AccountID == accountID && e.Currency == currency {
			sum = sum.Add(e.Amount)
		}
	}

	return sum, nil
}

// MockLedgerRepository recomputes balances from the entry stream.
type MockLedgerRepository struct {
	store *Store

	CheckConsistencyFunc func(ctx context.Context) ([]domain.BalanceKey, error)
}

func NewMockLedgerRepository(store *Store) *MockLedgerRepository {
	return &MockLedgerRepository{store: store}
}

func (m *MockLedgerRepository) CheckConsistency(ctx context.Context) ([]domain.BalanceKey, error) {
	if m.CheckConsistencyFunc != nil {
		return m.CheckConsistencyFunc(ctx)
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	sums := make(map[domain.BalanceKey]decimal.Decimal)
	for _, e := range m.store.entries {
		k := domain.BalanceKey{AccountID: e.AccountID, Currency: e.Currency}
		sums[k] = sums[k].Add(e.Amount)
	}

	var mismatched []domain.BalanceKey
	for k, b := range m.store.balances {
		if !b.Amount.Equal(sums[k]) {
			mismatched = append(mismatched, k)
		}
	}
	for k, sum := range sums {
		if _, ok := m.store.balances[k]; !ok && !sum.IsZero() {
			mismatched = append(mismatched, k)
		}
	}

	return mismatched, nil
}

// MockRateRepository is a memory-backed RateRepository.
type MockRateRepository struct {
	mu    sync.Mutex
	rates []*domain.RateEntry

	CreateFunc    func(ctx context.Context, rate *domain.RateEntry) error
	GetActiveFunc func(ctx context.Context) ([]*domain.RateEntry, error)
}

func NewMockRateRepository() *MockRateRepository {
	return &MockRateRepository{}
}

// Seed appends a rate version without validation.
func (m *MockRateRepository) Seed(currency string, rate decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rates = append(m.rates, &domain.RateEntry{
		ID:          currency + "-seed",
		Currency:    currency,
		Rate:        rate,
		EffectiveAt: time.Now().UTC(),
	})
}

func (m *MockRateRepository) Create(ctx context.Context, rate *domain.RateEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rate)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates = append(m.rates, rate)

	return nil
}

func (m *MockRateRepository) GetActive(ctx context.Context) ([]*domain.RateEntry, error) {
	if m.GetActiveFunc != nil {
		return m.GetActiveFunc(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	latest := make(map[string]*domain.RateEntry)
	for _, r := range m.rates {
		latest[r.Currency] = r
	}

	var active []*domain.RateEntry
	for _, r := range latest {
		active = append(active, r)
	}

	return active, nil
}

func (m *MockRateRepository) GetActiveByCurrency(ctx context.Context, currency string) (*domain.RateEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var found *domain.RateEntry
	for _, r := range m.rates {
		if r.Currency == currency {
			found = r
		}
	}

	if found == nil {
		return nil, domain.ErrUnknownCurrency
	}

	return found, nil
}

func (m *MockRateRepository) ListHistory(ctx context.Context, currency string, limit, offset int) ([]*domain.RateEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var history []*domain.RateEntry
	for i := len(m.rates) - 1; i >= 0; i-- {
		if m.rates[i].Currency == currency {
			history = append(history, m.rates[i])
		}
	}

	if offset >= len(history) {
		return nil, nil
	}
	history = history[offset:]
	if len(history) > limit {
		history = history[:limit]
	}

	return history, nil
}

// MockCurrencyRepository is a memory-backed CurrencyRepository.
type MockCurrencyRepository struct {
	mu         sync.Mutex
	currencies map[string]*domain.Currency
}

func NewMockCurrencyRepository() *MockCurrencyRepository {
	return &MockCurrencyRepository{currencies: make(map[string]*domain.Currency)}
}

// Seed adds a currency.
func (m *MockCurrencyRepository) Seed(code string, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currencies[code] = &domain.Currency{Code: code, Name: code, Active: active}
}

func (m *MockCurrencyRepository) GetByCode(ctx context.Context, code string) (*domain.Currency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.currencies[code]; ok {
		return c, nil
	}

	return nil, domain.ErrUnknownCurrency
}

func (m *MockCurrencyRepository) List(ctx context.Context) ([]*domain.Currency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.Currency
	for _, c := range m.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })

	return out, nil
}

// MockRetrier executes the operation once unless overridden.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}

	return operation()
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++

	return "id-" + strconv.Itoa(m.counter)
}

// MockCache is a memory-backed Cache without TTL expiry.
type MockCache struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.values[key]; ok {
		return v, nil
	}

	return "", domain.ErrEntryNotFound
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value

	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)

	return nil
}
