package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CurrencyRepository defines DB operations for currencies.
type CurrencyRepository interface {
	GetByCode(ctx context.Context, code string) (*Currency, error)
	ListCodes(ctx context.Context) ([]string, error)
	Create(ctx context.Context, code, name, symbol string) (*Currency, error)
}

// PostgresCurrencyRepository is an implementation of CurrencyRepository using PostgreSQL.
type PostgresCurrencyRepository struct {
	db *sql.DB
}

// NewPostgresCurrencyRepository creates a new PostgresCurrencyRepository.
func NewPostgresCurrencyRepository(db *sql.DB) CurrencyRepository {
	return &PostgresCurrencyRepository{db: db}
}

// GetByCode retrieves a currency by its 3-letter code, returning (nil, nil) when unknown.
func (r *PostgresCurrencyRepository) GetByCode(ctx context.Context, code string) (*Currency, error) {
	query := `SELECT id, code, COALESCE(name, ''), COALESCE(symbol, ''), created_at, updated_at
              FROM currencies
              WHERE code = $1`

	var c Currency
	err := r.db.QueryRowContext(ctx, query, code).
		Scan(&c.ID, &c.Code, &c.Name, &c.Symbol, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ListCodes returns all known currency codes in alphabetical order.
func (r *PostgresCurrencyRepository) ListCodes(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT code FROM currencies ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list currency codes: %w", err)
	}
	defer rows.Close() //nolint:errcheck // best-effort close

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// Create inserts a new currency. Existing codes are left untouched and returned as-is.
func (r *PostgresCurrencyRepository) Create(ctx context.Context, code, name, symbol string) (*Currency, error) {
	query := `INSERT INTO currencies (code, name, symbol)
              VALUES ($1, $2, $3)
              ON CONFLICT (code) DO UPDATE SET code = currencies.code
              RETURNING id, code, COALESCE(name, ''), COALESCE(symbol, ''), created_at, updated_at`

	var c Currency
	err := r.db.QueryRowContext(ctx, query, code, name, symbol).
		Scan(&c.ID, &c.Code, &c.Name, &c.Symbol, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create currency %s: %w", code, err)
	}
	return &c, nil
}
