package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RateRepository defines DB operations for exchange rate records.
//
// RecordRate is the single write path for rate data: it atomically deactivates
// every older-dated record for the pair, then upserts the record keyed by
// (source, target, valuation date) as the active one. A record inserted for a
// date older than an already-stored newer date comes in inactive, so the
// "exactly one active record per pair" invariant survives out-of-order writes.
type RateRepository interface {
	GetActive(ctx context.Context, source, target string, date time.Time) (*ExchangeRate, error)
	ListBySourceInRange(ctx context.Context, source string, from, to time.Time) ([]ExchangeRate, error)
	ListByPairSince(ctx context.Context, source, target string, since time.Time) ([]ExchangeRate, error)
	RecordRate(ctx context.Context, source, target string, rate decimal.Decimal, date time.Time, providerName string) (*ExchangeRate, error)
}

// PostgresRateRepository is an implementation of RateRepository using PostgreSQL.
type PostgresRateRepository struct {
	db *sql.DB
}

// NewPostgresRateRepository creates a new PostgresRateRepository.
func NewPostgresRateRepository(db *sql.DB) RateRepository {
	return &PostgresRateRepository{db: db}
}

const rateSelect = `SELECT er.id, sc.code, tc.code, er.valuation_date, er.rate_value,
                           er.active, p.name, er.created_at, er.updated_at
                    FROM exchange_rates er
                    JOIN currencies sc ON sc.id = er.source_currency_id
                    JOIN currencies tc ON tc.id = er.target_currency_id
                    JOIN providers p ON p.id = er.provider_id`

// GetActive finds the active record for (source, target) dated exactly on the
// given valuation date, returning (nil, nil) when there is none.
func (r *PostgresRateRepository) GetActive(ctx context.Context, source, target string, date time.Time) (*ExchangeRate, error) {
	query := rateSelect + `
              WHERE sc.code = $1 AND tc.code = $2 AND er.active AND er.valuation_date = $3`

	row := r.db.QueryRowContext(ctx, query, source, target, date)
	return scanRate(row)
}

// ListBySourceInRange returns every record for the source currency whose
// valuation date falls inside [from, to], ordered by date ascending.
func (r *PostgresRateRepository) ListBySourceInRange(ctx context.Context, source string, from, to time.Time) ([]ExchangeRate, error) {
	query := rateSelect + `
              WHERE sc.code = $1 AND er.valuation_date BETWEEN $2 AND $3
              ORDER BY er.valuation_date ASC, tc.code ASC`

	rows, err := r.db.QueryContext(ctx, query, source, from, to)
	if err != nil {
		return nil, fmt.Errorf("list rates for %s in range: %w", source, err)
	}
	return collectRates(rows)
}

// ListByPairSince returns every record for (source, target) with a valuation
// date on or after since, ordered by date ascending.
func (r *PostgresRateRepository) ListByPairSince(ctx context.Context, source, target string, since time.Time) ([]ExchangeRate, error) {
	query := rateSelect + `
              WHERE sc.code = $1 AND tc.code = $2 AND er.valuation_date >= $3
              ORDER BY er.valuation_date ASC`

	rows, err := r.db.QueryContext(ctx, query, source, target, since)
	if err != nil {
		return nil, fmt.Errorf("list rates for %s/%s: %w", source, target, err)
	}
	return collectRates(rows)
}

// RecordRate performs the activity update as one transaction, serialized per
// pair through an advisory lock so concurrent writers for the same pair cannot
// interleave the deactivate and upsert steps.
func (r *PostgresRateRepository) RecordRate(ctx context.Context, source, target string, rate decimal.Decimal, date time.Time, providerName string) (*ExchangeRate, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin rate transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1 || '/' || $2))`, source, target); err != nil {
		return nil, fmt.Errorf("acquire pair lock %s/%s: %w", source, target, err)
	}

	var sourceID, targetID, providerID int64
	if sourceID, err = currencyID(ctx, tx, source); err != nil {
		return nil, err
	}
	if targetID, err = currencyID(ctx, tx, target); err != nil {
		return nil, err
	}
	if err = tx.QueryRowContext(ctx,
		`SELECT id FROM providers WHERE name = $1`, providerName).Scan(&providerID); err != nil {
		return nil, fmt.Errorf("unknown provider %q: %w", providerName, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE exchange_rates SET active = FALSE, updated_at = NOW()
         WHERE source_currency_id = $1 AND target_currency_id = $2 AND valuation_date < $3`,
		sourceID, targetID, date)
	if err != nil {
		return nil, fmt.Errorf("deactivate older rates %s/%s: %w", source, target, err)
	}

	// The record becomes active only when no newer-dated record exists for the
	// pair; strictly-older deactivation above keeps later dates untouched.
	upsert := `INSERT INTO exchange_rates
                   (source_currency_id, target_currency_id, valuation_date, rate_value, provider_id, active)
               VALUES ($1, $2, $3, $4, $5, NOT EXISTS (
                   SELECT 1 FROM exchange_rates
                   WHERE source_currency_id = $1 AND target_currency_id = $2 AND valuation_date > $3))
               ON CONFLICT (source_currency_id, target_currency_id, valuation_date)
               DO UPDATE SET rate_value = EXCLUDED.rate_value,
                             provider_id = EXCLUDED.provider_id,
                             active = EXCLUDED.active,
                             updated_at = NOW()
               RETURNING id, valuation_date, rate_value, active, created_at, updated_at`

	rec := &ExchangeRate{
		SourceCode:   source,
		TargetCode:   target,
		ProviderName: providerName,
	}
	err = tx.QueryRowContext(ctx, upsert, sourceID, targetID, date, rate, providerID).
		Scan(&rec.ID, &rec.ValuationDate, &rec.RateValue, &rec.Active, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert rate %s/%s@%s: %w", source, target, date.Format("2006-01-02"), err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit rate %s/%s: %w", source, target, err)
	}
	return rec, nil
}

func currencyID(ctx context.Context, tx *sql.Tx, code string) (int64, error) {
	var id int64
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM currencies WHERE code = $1`, code).Scan(&id); err != nil {
		return 0, fmt.Errorf("unknown currency %q: %w", code, err)
	}
	return id, nil
}

// scanRate maps a single row into an ExchangeRate, returning (nil, nil) for sql.ErrNoRows.
func scanRate(row *sql.Row) (*ExchangeRate, error) {
	var rec ExchangeRate
	err := row.Scan(&rec.ID, &rec.SourceCode, &rec.TargetCode, &rec.ValuationDate,
		&rec.RateValue, &rec.Active, &rec.ProviderName, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func collectRates(rows *sql.Rows) ([]ExchangeRate, error) {
	defer rows.Close() //nolint:errcheck // best-effort close

	var records []ExchangeRate
	for rows.Next() {
		var rec ExchangeRate
		if err := rows.Scan(&rec.ID, &rec.SourceCode, &rec.TargetCode, &rec.ValuationDate,
			&rec.RateValue, &rec.Active, &rec.ProviderName, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
