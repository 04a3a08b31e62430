package staff

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles staff data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new staff repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new staff member into the database
func (r *Repository) Create(ctx context.Context, req *CreateStaffRequest) (*Staff, error) {
	query := `
		INSERT INTO staff (full_name, phone, role, active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id, full_name, phone, role, active, created_at
	`

	member := &Staff{}
	err := r.db.QueryRowContext(ctx, query, req.FullName, req.Phone, req.Role).Scan(
		&member.ID,
		&member.FullName,
		&member.Phone,
		&member.Role,
		&member.Active,
		&member.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}

	return member, nil
}

// GetByID retrieves a staff member by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Staff, error) {
	query := `
		SELECT id, full_name, phone, role, active, created_at
		FROM staff
		WHERE id = $1
	`

	member := &Staff{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&member.ID,
		&member.FullName,
		&member.Phone,
		&member.Role,
		&member.Active,
		&member.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}

	return member, nil
}

// ListByRole retrieves active staff members with a given role
func (r *Repository) ListByRole(ctx context.Context, role Role) ([]*Staff, error) {
	query := `
		SELECT id, full_name, phone, role, active, created_at
		FROM staff
		WHERE role = $1 AND active = TRUE
		ORDER BY full_name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff by role: %w", err)
	}
	defer rows.Close()

	var members []*Staff
	for rows.Next() {
		member := &Staff{}
		if err := rows.Scan(
			&member.ID,
			&member.FullName,
			&member.Phone,
			&member.Role,
			&member.Active,
			&member.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan staff member: %w", err)
		}
		members = append(members, member)
	}

	return members, nil
}

// ListAdminIDs returns the IDs of all active administrators
func (r *Repository) ListAdminIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT id FROM staff WHERE role = 'admin' AND active = TRUE`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan admin id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// List retrieves all staff members with pagination
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Staff, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM staff`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count staff: %w", err)
	}

	query := `
		SELECT id, full_name, phone, role, active, created_at
		FROM staff
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var members []*Staff
	for rows.Next() {
		member := &Staff{}
		if err := rows.Scan(
			&member.ID,
			&member.FullName,
			&member.Phone,
			&member.Role,
			&member.Active,
			&member.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan staff member: %w", err)
		}
		members = append(members, member)
	}

	return members, total, nil
}

// Update modifies an existing staff member
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateStaffRequest) (*Staff, error) {
	query := `
		UPDATE staff
		SET full_name = COALESCE($2, full_name),
		    phone = COALESCE($3, phone),
		    active = COALESCE($4, active)
		WHERE id = $1
		RETURNING id, full_name, phone, role, active, created_at
	`

	member := &Staff{}
	err := r.db.QueryRowContext(ctx, query, id, req.FullName, req.Phone, req.Active).Scan(
		&member.ID,
		&member.FullName,
		&member.Phone,
		&member.Role,
		&member.Active,
		&member.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update staff member: %w", err)
	}

	return member, nil
}
