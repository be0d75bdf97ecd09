package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/uacwallet/creditledger/internal/domain"
	"github.com/uacwallet/creditledger/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create writes an entry within a transaction. A unique-index violation on
// the external reference maps to domain.ErrDuplicateReference so the
// payment processor can replay the earlier confirmation.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO entries (
			id, account_id, currency, amount, kind, correlation_id,
			external_ref, previous_balance, current_balance, balance_version, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		entry.ID, entry.AccountID, entry.Currency, decimalToNumeric(entry.Amount),
		string(entry.Kind), entry.CorrelationID, entry.ExternalRef,
		decimalToNumeric(entry.PreviousBalance), decimalToNumeric(entry.CurrentBalance),
		entry.BalanceVersion, timeToPgTimestamptz(entry.CreatedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrDuplicateReference
		}

		return err
	}

	return nil
}

// ListByAccount retrieves entries for an account, newest first.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, filter usecase.EntryFilter, limit, offset int) ([]*domain.Entry, error) {
	query := &strings.Builder{}
	query.WriteString(`
		SELECT id, account_id, currency, amount, kind, correlation_id,
		       external_ref, previous_balance, current_balance, balance_version, created_at
		FROM entries WHERE account_id = $1`)

	args := []any{accountID}

	if filter.Currency != "" {
		args = append(args, filter.Currency)
		fmt.Fprintf(query, " AND currency = $%d", len(args))
	}

	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		fmt.Fprintf(query, " AND kind = $%d", len(args))
	}

	args = append(args, limit, offset)
	fmt.Fprintf(query, " ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByCorrelation retrieves the entries of one logical operation.
func (r *EntryRepository) GetByCorrelation(ctx context.Context, correlationID string) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, currency, amount, kind, correlation_id,
		       external_ref, previous_balance, current_balance, balance_version, created_at
		FROM entries WHERE correlation_id = $1
		ORDER BY id`, correlationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByExternalRef retrieves the entry tagged with an external payment
// reference.
func (r *EntryRepository) GetByExternalRef(ctx context.Context, ref string) (*domain.Entry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, account_id, currency, amount, kind, correlation_id,
		       external_ref, previous_balance, current_balance, balance_version, created_at
		FROM entries WHERE external_ref = $1`, ref)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

// SumByAccountCurrency sums all entry amounts for one (account, currency).
func (r *EntryRepository) SumByAccountCurrency(ctx context.Context, accountID, currency string) (decimal.Decimal, error) {
	var sum pgtype.Numeric

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM entries
		WHERE account_id = $1 AND currency = $2`,
		accountID, currency).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry              domain.Entry
		kind               string
		amount, prev, curr pgtype.Numeric
	)

	err := row.Scan(
		&entry.ID, &entry.AccountID, &entry.Currency, &amount, &kind,
		&entry.CorrelationID, &entry.ExternalRef, &prev, &curr,
		&entry.BalanceVersion, &entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Kind = domain.EntryKind(kind)
	entry.Amount = numericToDecimal(amount)
	entry.PreviousBalance = numericToDecimal(prev)
	entry.CurrentBalance = numericToDecimal(curr)

	return &entry, nil
}

func scanEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
