package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Repository handles audit log persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new audit repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert appends one audit entry
func (r *Repository) Insert(ctx context.Context, tableName string, recordID *int64, operation string, changedBy int64, newData json.RawMessage) error {
	query := `
		INSERT INTO audit_logs (table_name, record_id, operation, changed_by, new_data)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := r.db.ExecContext(ctx, query, tableName, recordID, operation, changedBy, newData); err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// ListByRecord retrieves the audit trail for one record of a table, oldest first
func (r *Repository) ListByRecord(ctx context.Context, tableName string, recordID int64) ([]*Entry, error) {
	query := `
		SELECT id, table_name, record_id, operation, changed_by, new_data, created_at
		FROM audit_logs
		WHERE table_name = $1 AND record_id = $2
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, tableName, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByTable retrieves the most recent entries for a table name
func (r *Repository) ListByTable(ctx context.Context, tableName string, limit int) ([]*Entry, error) {
	query := `
		SELECT id, table_name, record_id, operation, changed_by, new_data, created_at
		FROM audit_logs
		WHERE table_name = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, tableName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(
			&e.ID,
			&e.TableName,
			&e.RecordID,
			&e.Operation,
			&e.ChangedBy,
			&e.NewData,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
