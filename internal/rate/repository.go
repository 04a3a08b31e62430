package rate

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles milk rate data access
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new rate repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetCurrent retrieves the rate in effect right now
func (r *Repository) GetCurrent(ctx context.Context) (*MilkRate, error) {
	query := `
		SELECT id, rate_per_liter, effective_from, effective_to, created_by, created_at
		FROM milk_rates
		WHERE effective_to IS NULL
		ORDER BY effective_from DESC
		LIMIT 1
	`

	rate := &MilkRate{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&rate.ID,
		&rate.RatePerLiter,
		&rate.EffectiveFrom,
		&rate.EffectiveTo,
		&rate.CreatedBy,
		&rate.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current rate: %w", err)
	}

	return rate, nil
}

// Create closes the open rate and inserts the new one in a single transaction
func (r *Repository) Create(ctx context.Context, ratePerLiter float64, createdBy int64) (*MilkRate, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	closeQuery := `
		UPDATE milk_rates
		SET effective_to = NOW()
		WHERE effective_to IS NULL
	`
	if _, err := tx.ExecContext(ctx, closeQuery); err != nil {
		return nil, fmt.Errorf("failed to close current rate: %w", err)
	}

	insertQuery := `
		INSERT INTO milk_rates (rate_per_liter, effective_from, created_by)
		VALUES ($1, NOW(), $2)
		RETURNING id, rate_per_liter, effective_from, effective_to, created_by, created_at
	`

	rate := &MilkRate{}
	err = tx.QueryRowContext(ctx, insertQuery, ratePerLiter, createdBy).Scan(
		&rate.ID,
		&rate.RatePerLiter,
		&rate.EffectiveFrom,
		&rate.EffectiveTo,
		&rate.CreatedBy,
		&rate.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert rate: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rate, nil
}

// ListHistory retrieves past rates, newest first
func (r *Repository) ListHistory(ctx context.Context, limit int) ([]*MilkRate, error) {
	query := `
		SELECT id, rate_per_liter, effective_from, effective_to, created_by, created_at
		FROM milk_rates
		ORDER BY effective_from DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	defer rows.Close()

	var rates []*MilkRate
	for rows.Next() {
		rate := &MilkRate{}
		if err := rows.Scan(
			&rate.ID,
			&rate.RatePerLiter,
			&rate.EffectiveFrom,
			&rate.EffectiveTo,
			&rate.CreatedBy,
			&rate.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		rates = append(rates, rate)
	}

	return rates, nil
}
