package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/domain"
	"github.com/uacwallet/creditledger/internal/infrastructure/metrics"
)

const rateSnapshotCacheKey = "rates:active"

// RateUseCase manages the append-only rate table and serves consistent
// snapshots to conversions.
type RateUseCase struct {
	rateRepo     RateRepository
	currencyRepo CurrencyRepository
	idGen        IDGenerator
	cache        Cache
	metrics      *metrics.Metrics
}

// NewRateUseCase creates a new RateUseCase. Cache may be nil.
func NewRateUseCase(rateRepo RateRepository, currencyRepo CurrencyRepository, idGen IDGenerator, cache Cache, m *metrics.Metrics) *RateUseCase {
	return &RateUseCase{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
		idGen:        idGen,
		cache:        cache,
		metrics:      m,
	}
}

// GetRate returns the active rate-to-UAC for a currency.
func (uc *RateUseCase) GetRate(ctx context.Context, currency string) (decimal.Decimal, error) {
	if err := domain.ValidateCurrencyCode(currency); err != nil {
		return decimal.Zero, err
	}

	rate, err := uc.rateRepo.GetActiveByCurrency(ctx, currency)
	if err != nil {
		return decimal.Zero, err
	}

	return rate.Rate, nil
}

// SetRate records a new rate version for a currency. Prior versions are
// never touched, so conversions already recorded stay reproducible.
func (uc *RateUseCase) SetRate(ctx context.Context, currency string, rate decimal.Decimal) (*domain.RateEntry, error) {
	if err := domain.ValidateCurrencyCode(currency); err != nil {
		return nil, err
	}

	entry := &domain.RateEntry{
		ID:          uc.idGen.Generate(),
		Currency:    currency,
		Rate:        rate,
		EffectiveAt: time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	curr, err := uc.currencyRepo.GetByCode(ctx, currency)
	if err != nil {
		return nil, err
	}

	if !curr.Active {
		return nil, domain.ErrUnknownCurrency
	}

	if err := uc.rateRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, rateSnapshotCacheKey)
	}

	if uc.metrics != nil {
		uc.metrics.RatesUpdated.Inc()
	}

	return entry, nil
}

// ListRates returns the active rate per currency.
func (uc *RateUseCase) ListRates(ctx context.Context) ([]*domain.RateEntry, error) {
	return uc.rateRepo.GetActive(ctx)
}

// ListHistory returns a currency's rate versions, newest first.
func (uc *RateUseCase) ListHistory(ctx context.Context, currency string, limit, offset int) ([]*domain.RateEntry, error) {
	if err := domain.ValidateCurrencyCode(currency); err != nil {
		return nil, err
	}

	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.rateRepo.ListHistory(ctx, currency, limit, offset)
}

type cachedSnapshot struct {
	TakenAt time.Time         `json:"taken_at"`
	Rates   map[string]string `json:"rates"`
}

// Snapshot returns the active rates read at one instant. The snapshot is
// cached briefly; SetRate invalidates it.
func (uc *RateUseCase) Snapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, rateSnapshotCacheKey); err == nil {
			if snapshot, ok := decodeSnapshot(cached); ok {
				return snapshot, nil
			}
		}
	}

	active, err := uc.rateRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := domain.NewRateSnapshot(time.Now().UTC(), active)

	if uc.cache != nil {
		if encoded, ok := encodeSnapshot(snapshot, active); ok {
			_ = uc.cache.Set(ctx, rateSnapshotCacheKey, encoded, RateSnapshotTTL)
		}
	}

	return snapshot, nil
}

func encodeSnapshot(snapshot *domain.RateSnapshot, entries []*domain.RateEntry) (string, bool) {
	c := cachedSnapshot{
		TakenAt: snapshot.TakenAt,
		Rates:   make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		c.Rates[e.Currency] = e.Rate.String()
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return "", false
	}

	return string(raw), true
}

func decodeSnapshot(raw string) (*domain.RateSnapshot, bool) {
	var c cachedSnapshot
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, false
	}

	entries := make([]*domain.RateEntry, 0, len(c.Rates))
	for code, rate := range c.Rates {
		d, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, false
		}

		entries = append(entries, &domain.RateEntry{Currency: code, Rate: d})
	}

	return domain.NewRateSnapshot(c.TakenAt, entries), true
}
