package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uacwallet/creditledger/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// CheckConsistency compares every materialized balance against the sum of
// its entries and returns the mismatched keys. A full outer join catches
// both stale projections and entry streams without a balance row.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) ([]domain.BalanceKey, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT COALESCE(b.account_id, e.account_id), COALESCE(b.currency, e.currency)
		FROM account_balances b
		FULL OUTER JOIN (
			SELECT account_id, currency, SUM(amount) AS total
			FROM entries GROUP BY account_id, currency
		) e ON e.account_id = b.account_id AND e.currency = b.currency
		WHERE COALESCE(b.amount, 0) <> COALESCE(e.total, 0)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mismatched []domain.BalanceKey
	for rows.Next() {
		var key domain.BalanceKey
		if err := rows.Scan(&key.AccountID, &key.Currency); err != nil {
			return nil, err
		}

		mismatched = append(mismatched, key)
	}

	return mismatched, rows.Err()
}
