package variance

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles penalty band configuration data access
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new variance repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListActive retrieves active penalty bands ordered by MinPercent ascending
func (r *Repository) ListActive(ctx context.Context) ([]*RateConfig, error) {
	query := `
		SELECT id, variance_type, min_percent, max_percent, penalty_rate_per_liter, active, created_by, created_at
		FROM variance_penalty_config
		WHERE active = TRUE
		ORDER BY min_percent ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list penalty bands: %w", err)
	}
	defer rows.Close()

	var bands []*RateConfig
	for rows.Next() {
		band := &RateConfig{}
		if err := rows.Scan(
			&band.ID,
			&band.VarianceType,
			&band.MinPercent,
			&band.MaxPercent,
			&band.PenaltyRatePerLiter,
			&band.Active,
			&band.CreatedBy,
			&band.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan penalty band: %w", err)
		}
		bands = append(bands, band)
	}

	return bands, nil
}

// Create inserts a new penalty band
func (r *Repository) Create(ctx context.Context, band *RateConfig) (*RateConfig, error) {
	query := `
		INSERT INTO variance_penalty_config (variance_type, min_percent, max_percent, penalty_rate_per_liter, active, created_by)
		VALUES ($1, $2, $3, $4, TRUE, $5)
		RETURNING id, variance_type, min_percent, max_percent, penalty_rate_per_liter, active, created_by, created_at
	`

	created := &RateConfig{}
	err := r.db.QueryRowContext(ctx, query,
		band.VarianceType, band.MinPercent, band.MaxPercent, band.PenaltyRatePerLiter, band.CreatedBy,
	).Scan(
		&created.ID,
		&created.VarianceType,
		&created.MinPercent,
		&created.MaxPercent,
		&created.PenaltyRatePerLiter,
		&created.Active,
		&created.CreatedBy,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create penalty band: %w", err)
	}

	return created, nil
}

// Deactivate marks a penalty band inactive
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE variance_penalty_config SET active = FALSE WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate penalty band: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
