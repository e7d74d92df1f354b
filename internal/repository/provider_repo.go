package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// ProviderRepository defines DB operations for provider configurations.
type ProviderRepository interface {
	ListActive(ctx context.Context) ([]Provider, error)
	Upsert(ctx context.Context, p Provider) (*Provider, error)
}

// PostgresProviderRepository is an implementation of ProviderRepository using PostgreSQL.
type PostgresProviderRepository struct {
	db *sql.DB
}

// NewPostgresProviderRepository creates a new PostgresProviderRepository.
func NewPostgresProviderRepository(db *sql.DB) ProviderRepository {
	return &PostgresProviderRepository{db: db}
}

// ListActive returns active provider configurations ordered by ascending priority.
// Lower priority values are tried first.
func (r *PostgresProviderRepository) ListActive(ctx context.Context) ([]Provider, error) {
	query := `SELECT id, name, base_url, COALESCE(api_key, ''), priority, active,
                     COALESCE(default_base_currency, ''), created_at, updated_at
              FROM providers
              WHERE active
              ORDER BY priority ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active providers: %w", err)
	}
	defer rows.Close() //nolint:errcheck // best-effort close

	var providers []Provider
	for rows.Next() {
		var p Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.BaseURL, &p.APIKey, &p.Priority,
			&p.Active, &p.DefaultBase, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

// Upsert inserts a provider configuration or updates the existing row keyed by name.
func (r *PostgresProviderRepository) Upsert(ctx context.Context, p Provider) (*Provider, error) {
	query := `INSERT INTO providers (name, base_url, api_key, priority, active, default_base_currency)
              VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''))
              ON CONFLICT (name) DO UPDATE SET
                  base_url = EXCLUDED.base_url,
                  api_key = EXCLUDED.api_key,
                  priority = EXCLUDED.priority,
                  active = EXCLUDED.active,
                  default_base_currency = EXCLUDED.default_base_currency,
                  updated_at = NOW()
              RETURNING id, name, base_url, COALESCE(api_key, ''), priority, active,
                        COALESCE(default_base_currency, ''), created_at, updated_at`

	var out Provider
	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.BaseURL, p.APIKey, p.Priority, p.Active, p.DefaultBase).
		Scan(&out.ID, &out.Name, &out.BaseURL, &out.APIKey, &out.Priority,
			&out.Active, &out.DefaultBase, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert provider %s: %w", p.Name, err)
	}
	return &out, nil
}
