package payment

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles payment data access
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new payment repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const paymentColumns = `id, collector_id, period_start, period_end, total_collections,
		total_liters, rate_per_liter, total_earnings, status, payment_date, notes, created_at, updated_at`

// Create inserts a new pending payment
func (r *Repository) Create(ctx context.Context, p *Payment) (*Payment, error) {
	query := `
		INSERT INTO collector_payments (collector_id, period_start, period_end, total_collections,
			total_liters, rate_per_liter, total_earnings, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + paymentColumns

	created := &Payment{}
	err := r.db.QueryRowContext(ctx, query,
		p.CollectorID, p.PeriodStart, p.PeriodEnd, p.TotalCollections,
		p.TotalLiters, p.RatePerLiter, p.TotalEarnings, StatusPending, p.Notes,
	).Scan(paymentTargets(created)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return created, nil
}

// GetByID retrieves a payment by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM collector_payments WHERE id = $1`

	p := &Payment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(paymentTargets(p)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return p, nil
}

// ListByCollector retrieves a collector's payments, newest period first
func (r *Repository) ListByCollector(ctx context.Context, collectorID int64) ([]*Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM collector_payments
		WHERE collector_id = $1
		ORDER BY period_start DESC
	`

	rows, err := r.db.QueryContext(ctx, query, collectorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// List retrieves payments, newest period first, optionally filtered by status
func (r *Repository) List(ctx context.Context, status string, limit, offset int) ([]*Payment, int, error) {
	countQuery := `SELECT COUNT(*) FROM collector_payments WHERE ($1 = '' OR status = $1)`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	query := `
		SELECT ` + paymentColumns + `
		FROM collector_payments
		WHERE ($1 = '' OR status = $1)
		ORDER BY period_start DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments, err := scanPayments(rows)
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// MarkPaid flips a pending payment to paid. It reports whether a row was
// actually updated so a second call cannot settle the same payment twice.
func (r *Repository) MarkPaid(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE collector_payments
		SET status = $1, payment_date = NOW(), updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	result, err := r.db.ExecContext(ctx, query, StatusPaid, id, StatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to mark payment paid: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

func paymentTargets(p *Payment) []interface{} {
	return []interface{}{
		&p.ID,
		&p.CollectorID,
		&p.PeriodStart,
		&p.PeriodEnd,
		&p.TotalCollections,
		&p.TotalLiters,
		&p.RatePerLiter,
		&p.TotalEarnings,
		&p.Status,
		&p.PaymentDate,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}

func scanPayments(rows *sql.Rows) ([]*Payment, error) {
	var payments []*Payment
	for rows.Next() {
		p := &Payment{}
		if err := rows.Scan(paymentTargets(p)...); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}
