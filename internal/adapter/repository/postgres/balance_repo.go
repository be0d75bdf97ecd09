package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uacwallet/creditledger/internal/domain"
	"github.com/uacwallet/creditledger/internal/usecase"
)

// BalanceRepository implements usecase.BalanceRepository over the
// materialized account_balances projection.
type BalanceRepository struct {
	pool *pgxpool.Pool
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{pool: pool}
}

// Get retrieves one balance row.
func (r *BalanceRepository) Get(ctx context.Context, accountID, currency string) (*domain.Balance, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT account_id, currency, amount, version, updated_at
		FROM account_balances WHERE account_id = $1 AND currency = $2`,
		accountID, currency)

	balance, err := scanBalance(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return balance, nil
}

// ListByAccount retrieves all balances of an account.
func (r *BalanceRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Balance, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT account_id, currency, amount, version, updated_at
		FROM account_balances WHERE account_id = $1
		ORDER BY currency`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []*domain.Balance
	for rows.Next() {
		balance, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}

		balances = append(balances, balance)
	}

	return balances, rows.Err()
}

// GetForUpdate locks the balance rows for the given keys. Keys are locked in
// the order given; callers sort them to keep lock ordering global. Keys
// without a row yet are simply absent from the result.
func (r *BalanceRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, keys []domain.BalanceKey) ([]*domain.Balance, error) {
	pgxTx := tx.(*Tx).PgxTx()

	balances := make([]*domain.Balance, 0, len(keys))
	for _, k := range keys {
		row := pgxTx.QueryRow(ctx, `
			SELECT account_id, currency, amount, version, updated_at
			FROM account_balances WHERE account_id = $1 AND currency = $2
			FOR UPDATE`, k.AccountID, k.Currency)

		balance, err := scanBalance(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}

			return nil, err
		}

		balances = append(balances, balance)
	}

	return balances, nil
}

// Upsert writes a balance row within a transaction.
func (r *BalanceRepository) Upsert(ctx context.Context, tx usecase.Transaction, balance *domain.Balance) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO account_balances (account_id, currency, amount, version, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (account_id, currency)
		DO UPDATE SET amount = $3, version = $4, updated_at = $5`,
		balance.AccountID, balance.Currency, decimalToNumeric(balance.Amount),
		balance.Version, timeToPgTimestamptz(balance.UpdatedAt),
	)

	return err
}

func scanBalance(row pgx.Row) (*domain.Balance, error) {
	var (
		balance domain.Balance
		amount  pgtype.Numeric
	)

	err := row.Scan(&balance.AccountID, &balance.Currency, &amount, &balance.Version, &balance.UpdatedAt)
	if err != nil {
		return nil, err
	}

	balance.Amount = numericToDecimal(amount)

	return &balance, nil
}
