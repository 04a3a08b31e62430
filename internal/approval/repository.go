package approval

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles approval record persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new approval repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const recordColumns = `id, collection_id, received_liters, variance_liters, variance_percent,
		variance_type, penalty_amount, penalty_status, notes, approved_by, approved_at, created_at`

// GetByCollectionID retrieves the approval for a collection, if any
func (r *Repository) GetByCollectionID(ctx context.Context, collectionID int64) (*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM approvals WHERE collection_id = $1`

	record := &Record{}
	err := r.db.QueryRowContext(ctx, query, collectionID).Scan(recordTargets(record)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get approval: %w", err)
	}

	return record, nil
}

// CreateApproval inserts the approval record and marks the collection
// approved in a single database transaction, so a collection is never left
// approved without its record or vice versa.
func (r *Repository) CreateApproval(ctx context.Context, record *Record) (*Record, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO approvals (collection_id, received_liters, variance_liters, variance_percent,
			variance_type, penalty_amount, penalty_status, notes, approved_by, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + recordColumns

	created := &Record{}
	err = tx.QueryRowContext(ctx, insertQuery,
		record.CollectionID, record.ReceivedLiters, record.VarianceLiters, record.VariancePercent,
		record.VarianceType, record.PenaltyAmount, PenaltyPending, record.Notes, record.ApprovedBy, record.ApprovedAt,
	).Scan(recordTargets(created)...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert approval: %w", err)
	}

	updateQuery := `
		UPDATE collections
		SET status = 'approved', approval_id = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'collected'
	`
	result, err := tx.ExecContext(ctx, updateQuery, created.ID, record.CollectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark collection approved: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("collection %d is not pending approval", record.CollectionID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return created, nil
}

// ListPendingPenalties retrieves approvals that carry an unsettled penalty
func (r *Repository) ListPendingPenalties(ctx context.Context) ([]*Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM approvals
		WHERE penalty_status = $1 AND penalty_amount > 0
		ORDER BY approved_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, PenaltyPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending penalties: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// MarkPenaltiesPaid flips penalty status to paid for the given approvals
func (r *Repository) MarkPenaltiesPaid(ctx context.Context, approvalIDs []int64) error {
	if len(approvalIDs) == 0 {
		return nil
	}

	query := `
		UPDATE approvals
		SET penalty_status = $1
		WHERE id = ANY($2) AND penalty_status = $3
	`

	if _, err := r.db.ExecContext(ctx, query, PenaltyPaid, pq.Array(approvalIDs), PenaltyPending); err != nil {
		return fmt.Errorf("failed to mark penalties paid: %w", err)
	}
	return nil
}

func recordTargets(record *Record) []interface{} {
	return []interface{}{
		&record.ID,
		&record.CollectionID,
		&record.ReceivedLiters,
		&record.VarianceLiters,
		&record.VariancePercent,
		&record.VarianceType,
		&record.PenaltyAmount,
		&record.PenaltyStatus,
		&record.Notes,
		&record.ApprovedBy,
		&record.ApprovedAt,
		&record.CreatedAt,
	}
}

func scanRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		record := &Record{}
		if err := rows.Scan(recordTargets(record)...); err != nil {
			return nil, fmt.Errorf("failed to scan approval: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}
