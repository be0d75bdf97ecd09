package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uacwallet/creditledger/internal/domain"
)

// CurrencyRepository implements usecase.CurrencyRepository.
type CurrencyRepository struct {
	pool *pgxpool.Pool
}

// NewCurrencyRepository creates a new CurrencyRepository.
func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}

// GetByCode retrieves a currency by code.
func (r *CurrencyRepository) GetByCode(ctx context.Context, code string) (*domain.Currency, error) {
	var currency domain.Currency

	err := r.pool.QueryRow(ctx, `
		SELECT code, name, active, created_at
		FROM currencies WHERE code = $1`, code).
		Scan(&currency.Code, &currency.Name, &currency.Active, &currency.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUnknownCurrency
		}

		return nil, err
	}

	return &currency, nil
}

// List lists all currencies.
func (r *CurrencyRepository) List(ctx context.Context) ([]*domain.Currency, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT code, name, active, created_at
		FROM currencies ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var currencies []*domain.Currency
	for rows.Next() {
		var currency domain.Currency
		if err := rows.Scan(&currency.Code, &currency.Name, &currency.Active, &currency.CreatedAt); err != nil {
			return nil, err
		}

		currencies = append(currencies, &currency)
	}

	return currencies, rows.Err()
}
