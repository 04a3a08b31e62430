package penalty

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository is the Postgres-backed Store. Balance mutations lock the
// account row so concurrent charges against the same collector serialize.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new penalty repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const accountColumns = `id, collector_id, total_incurred, total_paid, pending_amount, frozen, frozen_reason, created_at, updated_at`

// GetByCollector retrieves a collector's penalty account
func (r *Repository) GetByCollector(ctx context.Context, collectorID int64) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM penalty_accounts WHERE collector_id = $1`

	account := &Account{}
	err := r.db.QueryRowContext(ctx, query, collectorID).Scan(accountTargets(account)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get penalty account: %w", err)
	}

	return account, nil
}

// Create opens a zero-balance account for a collector
func (r *Repository) Create(ctx context.Context, collectorID int64) (*Account, error) {
	query := `
		INSERT INTO penalty_accounts (collector_id)
		VALUES ($1)
		RETURNING ` + accountColumns

	account := &Account{}
	err := r.db.QueryRowContext(ctx, query, collectorID).Scan(accountTargets(account)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create penalty account: %w", err)
	}

	return account, nil
}

// Charge increases the pending balance and appends the incurred transaction
// in one database transaction
func (r *Repository) Charge(ctx context.Context, accountID int64, amount float64, refType string, refID *int64, notes *string, actorID int64) (*Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var pending float64
	lockQuery := `SELECT pending_amount FROM penalty_accounts WHERE id = $1 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, lockQuery, accountID).Scan(&pending); err != nil {
		return nil, fmt.Errorf("failed to lock penalty account: %w", err)
	}

	newPending := pending + amount
	updateQuery := `
		UPDATE penalty_accounts
		SET total_incurred = total_incurred + $1,
		    pending_amount = $2,
		    updated_at = NOW()
		WHERE id = $3
	`
	if _, err := tx.ExecContext(ctx, updateQuery, amount, newPending, accountID); err != nil {
		return nil, fmt.Errorf("failed to update penalty account: %w", err)
	}

	entry, err := insertTransaction(ctx, tx, accountID, TxIncurred, amount, newPending, refType, refID, notes, actorID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return entry, nil
}

// Settle reduces the pending balance by at most the pending amount and
// appends the paid transaction in one database transaction. It returns the
// amount actually deducted.
func (r *Repository) Settle(ctx context.Context, accountID int64, amount float64, refType string, refID *int64, notes *string, actorID int64) (*Transaction, float64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var pending float64
	lockQuery := `SELECT pending_amount FROM penalty_accounts WHERE id = $1 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, lockQuery, accountID).Scan(&pending); err != nil {
		return nil, 0, fmt.Errorf("failed to lock penalty account: %w", err)
	}

	deducted := amount
	if deducted > pending {
		deducted = pending
	}
	if deducted <= 0 {
		return nil, 0, tx.Commit()
	}

	newPending := pending - deducted
	updateQuery := `
		UPDATE penalty_accounts
		SET total_paid = total_paid + $1,
		    pending_amount = $2,
		    updated_at = NOW()
		WHERE id = $3
	`
	if _, err := tx.ExecContext(ctx, updateQuery, deducted, newPending, accountID); err != nil {
		return nil, 0, fmt.Errorf("failed to update penalty account: %w", err)
	}

	entry, err := insertTransaction(ctx, tx, accountID, TxPaid, deducted, newPending, refType, refID, notes, actorID)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return entry, deducted, nil
}

// ListTransactions retrieves an account's ledger entries, newest first
func (r *Repository) ListTransactions(ctx context.Context, accountID int64, limit int) ([]*Transaction, error) {
	query := `
		SELECT id, account_id, type, amount, balance_after, reference_type, reference_id, notes, created_by, created_at
		FROM penalty_transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*Transaction
	for rows.Next() {
		t := &Transaction{}
		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Type,
			&t.Amount,
			&t.BalanceAfter,
			&t.ReferenceType,
			&t.ReferenceID,
			&t.Notes,
			&t.CreatedBy,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	return transactions, nil
}

// SetFrozen updates the advisory frozen flag on an account
func (r *Repository) SetFrozen(ctx context.Context, accountID int64, frozen bool, reason *string) error {
	query := `UPDATE penalty_accounts SET frozen = $1, frozen_reason = $2, updated_at = NOW() WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, frozen, reason, accountID)
	if err != nil {
		return fmt.Errorf("failed to update frozen flag: %w", err)
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

func insertTransaction(ctx context.Context, tx *sql.Tx, accountID int64, txType string, amount, balanceAfter float64, refType string, refID *int64, notes *string, actorID int64) (*Transaction, error) {
	query := `
		INSERT INTO penalty_transactions (account_id, type, amount, balance_after, reference_type, reference_id, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, account_id, type, amount, balance_after, reference_type, reference_id, notes, created_by, created_at
	`

	var ref *string
	if refType != "" {
		ref = &refType
	}

	entry := &Transaction{}
	err := tx.QueryRowContext(ctx, query, accountID, txType, amount, balanceAfter, ref, refID, notes, actorID).Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.Type,
		&entry.Amount,
		&entry.BalanceAfter,
		&entry.ReferenceType,
		&entry.ReferenceID,
		&entry.Notes,
		&entry.CreatedBy,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return entry, nil
}

func accountTargets(a *Account) []interface{} {
	return []interface{}{
		&a.ID,
		&a.CollectorID,
		&a.TotalIncurred,
		&a.TotalPaid,
		&a.PendingAmount,
		&a.Frozen,
		&a.FrozenReason,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
}
