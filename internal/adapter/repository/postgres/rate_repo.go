package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uacwallet/creditledger/internal/domain"
)

// RateRepository implements usecase.RateRepository over the append-only
// rates table.
type RateRepository struct {
	pool *pgxpool.Pool
}

// NewRateRepository creates a new RateRepository.
func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}

// Create inserts a new rate version.
func (r *RateRepository) Create(ctx context.Context, rate *domain.RateEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO rates (id, currency, rate, effective_at)
		VALUES ($1, $2, $3, $4)`,
		rate.ID, rate.Currency, decimalToNumeric(rate.Rate),
		timeToPgTimestamptz(rate.EffectiveAt),
	)

	return err
}

// GetActive returns the latest rate per active currency.
func (r *RateRepository) GetActive(ctx context.Context) ([]*domain.RateEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ON (r.currency) r.id, r.currency, r.rate, r.effective_at
		FROM rates r
		JOIN currencies c ON c.code = r.currency AND c.active
		ORDER BY r.currency, r.effective_at DESC, r.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []*domain.RateEntry
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, err
		}

		rates = append(rates, rate)
	}

	return rates, rows.Err()
}

// GetActiveByCurrency returns the latest rate for one active currency.
func (r *RateRepository) GetActiveByCurrency(ctx context.Context, currency string) (*domain.RateEntry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT r.id, r.currency, r.rate, r.effective_at
		FROM rates r
		JOIN currencies c ON c.code = r.currency AND c.active
		WHERE r.currency = $1
		ORDER BY r.effective_at DESC, r.id DESC
		LIMIT 1`, currency)

	rate, err := scanRate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUnknownCurrency
		}

		return nil, err
	}

	return rate, nil
}

// ListHistory returns a currency's rate versions, newest first.
func (r *RateRepository) ListHistory(ctx context.Context, currency string, limit, offset int) ([]*domain.RateEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, currency, rate, effective_at
		FROM rates WHERE currency = $1
		ORDER BY effective_at DESC, id DESC
		LIMIT $2 OFFSET $3`, currency, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []*domain.RateEntry
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, err
		}

		rates = append(rates, rate)
	}

	return rates, rows.Err()
}

func scanRate(row pgx.Row) (*domain.RateEntry, error) {
	var (
		entry domain.RateEntry
		rate  pgtype.Numeric
	)

	err := row.Scan(&entry.ID, &entry.Currency, &rate, &entry.EffectiveAt)
	if err != nil {
		return nil, err
	}

	entry.Rate = numericToDecimal(rate)

	return &entry, nil
}
