package farmer

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles farmer data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new farmer repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new farmer into the database
func (r *Repository) Create(ctx context.Context, req *CreateFarmerRequest) (*Farmer, error) {
	query := `
		INSERT INTO farmers (full_name, phone, gps_latitude, gps_longitude)
		VALUES ($1, $2, $3, $4)
		RETURNING id, full_name, phone, gps_latitude, gps_longitude, created_at
	`

	farmer := &Farmer{}
	err := r.db.QueryRowContext(ctx, query, req.FullName, req.Phone, req.GPSLatitude, req.GPSLongitude).Scan(
		&farmer.ID,
		&farmer.FullName,
		&farmer.Phone,
		&farmer.GPSLatitude,
		&farmer.GPSLongitude,
		&farmer.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create farmer: %w", err)
	}

	return farmer, nil
}

// GetByID retrieves a farmer by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Farmer, error) {
	query := `
		SELECT id, full_name, phone, gps_latitude, gps_longitude, created_at
		FROM farmers
		WHERE id = $1
	`

	farmer := &Farmer{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&farmer.ID,
		&farmer.FullName,
		&farmer.Phone,
		&farmer.GPSLatitude,
		&farmer.GPSLongitude,
		&farmer.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get farmer: %w", err)
	}

	return farmer, nil
}

// List retrieves all farmers with pagination
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Farmer, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM farmers`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count farmers: %w", err)
	}

	query := `
		SELECT id, full_name, phone, gps_latitude, gps_longitude, created_at
		FROM farmers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list farmers: %w", err)
	}
	defer rows.Close()

	var farmers []*Farmer
	for rows.Next() {
		farmer := &Farmer{}
		if err := rows.Scan(
			&farmer.ID,
			&farmer.FullName,
			&farmer.Phone,
			&farmer.GPSLatitude,
			&farmer.GPSLongitude,
			&farmer.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan farmer: %w", err)
		}
		farmers = append(farmers, farmer)
	}

	return farmers, total, nil
}

// Update modifies an existing farmer
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateFarmerRequest) (*Farmer, error) {
	query := `
		UPDATE farmers
		SET full_name = COALESCE($2, full_name),
		    phone = COALESCE($3, phone),
		    gps_latitude = COALESCE($4, gps_latitude),
		    gps_longitude = COALESCE($5, gps_longitude)
		WHERE id = $1
		RETURNING id, full_name, phone, gps_latitude, gps_longitude, created_at
	`

	farmer := &Farmer{}
	err := r.db.QueryRowContext(ctx, query, id, req.FullName, req.Phone, req.GPSLatitude, req.GPSLongitude).Scan(
		&farmer.ID,
		&farmer.FullName,
		&farmer.Phone,
		&farmer.GPSLatitude,
		&farmer.GPSLongitude,
		&farmer.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update farmer: %w", err)
	}

	return farmer, nil
}
