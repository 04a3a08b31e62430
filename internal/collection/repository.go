package collection

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Repository handles collection data access
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new collection repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const collectionColumns = `id, collector_id, farmer_id, liters, collection_date,
		gps_latitude, gps_longitude, status, approval_id, created_at, updated_at`

// Create inserts a new collection
func (r *Repository) Create(ctx context.Context, c *Collection) (*Collection, error) {
	query := `
		INSERT INTO collections (collector_id, farmer_id, liters, collection_date, gps_latitude, gps_longitude, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + collectionColumns

	created := &Collection{}
	err := r.db.QueryRowContext(ctx, query,
		c.CollectorID, c.FarmerID, c.Liters, c.CollectionDate,
		c.GPSLatitude, c.GPSLongitude, StatusCollected,
	).Scan(scanTargets(created)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	return created, nil
}

// GetByID retrieves a collection by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE id = $1`

	c := &Collection{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(scanTargets(c)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	return c, nil
}

// ListByCollector retrieves a collector's collections, newest first
func (r *Repository) ListByCollector(ctx context.Context, collectorID int64, limit, offset int) ([]*Collection, int, error) {
	countQuery := `SELECT COUNT(*) FROM collections WHERE collector_id = $1`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, collectorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count collections: %w", err)
	}

	query := `
		SELECT ` + collectionColumns + `
		FROM collections
		WHERE collector_id = $1
		ORDER BY collection_date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, collectorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	collections, err := scanCollections(rows)
	if err != nil {
		return nil, 0, err
	}

	return collections, total, nil
}

// ListPendingApproval retrieves collections still awaiting automated approval,
// oldest first so batch runs process them in collection order
func (r *Repository) ListPendingApproval(ctx context.Context, limit int) ([]*Collection, error) {
	query := `
		SELECT ` + collectionColumns + `
		FROM collections
		WHERE status = $1
		ORDER BY collection_date ASC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, StatusCollected, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending collections: %w", err)
	}
	defer rows.Close()

	return scanCollections(rows)
}

// ListApprovedInPeriod retrieves a collector's approved collections whose
// collection date falls inside the given range, boundaries inclusive
func (r *Repository) ListApprovedInPeriod(ctx context.Context, collectorID int64, start, end time.Time) ([]*Collection, error) {
	query := `
		SELECT ` + collectionColumns + `
		FROM collections
		WHERE collector_id = $1
		  AND status = $2
		  AND collection_date >= $3
		  AND collection_date <= $4
		ORDER BY collection_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, collectorID, StatusApproved, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved collections: %w", err)
	}
	defer rows.Close()

	return scanCollections(rows)
}

// ListByIDs retrieves the given collections in one query
func (r *Repository) ListByIDs(ctx context.Context, ids []int64) ([]*Collection, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + collectionColumns + ` FROM collections WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list collections by id: %w", err)
	}
	defer rows.Close()

	return scanCollections(rows)
}

// ListRecentByCollector retrieves the collector's latest collections, newest
// first, for travel-speed analysis
func (r *Repository) ListRecentByCollector(ctx context.Context, collectorID int64, limit int) ([]*Collection, error) {
	query := `
		SELECT ` + collectionColumns + `
		FROM collections
		WHERE collector_id = $1
		ORDER BY collection_date DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, collectorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent collections: %w", err)
	}
	defer rows.Close()

	return scanCollections(rows)
}

func scanTargets(c *Collection) []interface{} {
	return []interface{}{
		&c.ID,
		&c.CollectorID,
		&c.FarmerID,
		&c.Liters,
		&c.CollectionDate,
		&c.GPSLatitude,
		&c.GPSLongitude,
		&c.Status,
		&c.ApprovalID,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}

func scanCollections(rows *sql.Rows) ([]*Collection, error) {
	var collections []*Collection
	for rows.Next() {
		c := &Collection{}
		if err := rows.Scan(scanTargets(c)...); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, c)
	}
	return collections, nil
}
