package leads

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	pool Querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool Querier) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Upsert inserts the lead or refreshes every mutable column. The funnel only
// ever fills fields in, so overwriting with the latest snapshot is safe.
func (r *PostgresRepository) Upsert(ctx context.Context, lead *Lead) error {
	if err := lead.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO leads (id, stage, name, industry, email, phone, city, appointment_label, locale)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			stage = EXCLUDED.stage,
			name = EXCLUDED.name,
			industry = EXCLUDED.industry,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			city = EXCLUDED.city,
			appointment_label = EXCLUDED.appointment_label,
			locale = EXCLUDED.locale,
			updated_at = now()
	`
	if _, err := r.pool.Exec(ctx, query,
		lead.ID,
		lead.Stage,
		lead.Name,
		lead.Industry,
		lead.Email,
		lead.Phone,
		lead.City,
		lead.AppointmentLabel,
		lead.Locale,
	); err != nil {
		return fmt.Errorf("leads: upsert failed: %w", err)
	}
	return nil
}

// GetByID fetches a lead.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	query := `
		SELECT id, stage, name, industry, email, phone, city, appointment_label, locale, created_at, updated_at
		FROM leads
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	var lead Lead
	if err := row.Scan(
		&lead.ID,
		&lead.Stage,
		&lead.Name,
		&lead.Industry,
		&lead.Email,
		&lead.Phone,
		&lead.City,
		&lead.AppointmentLabel,
		&lead.Locale,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return &lead, nil
}

// List returns the most recently updated leads.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, stage, name, industry, email, phone, city, appointment_label, locale, created_at, updated_at
		FROM leads
		ORDER BY updated_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("leads: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Lead
	for rows.Next() {
		var lead Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.Stage,
			&lead.Name,
			&lead.Industry,
			&lead.Email,
			&lead.Phone,
			&lead.City,
			&lead.AppointmentLabel,
			&lead.Locale,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}
		out = append(out, &lead)
	}
	return out, rows.Err()
}
