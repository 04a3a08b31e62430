package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/jkorir/maziwa/internal/farmer"
	"github.com/jkorir/maziwa/internal/staff"
	"github.com/jkorir/maziwa/pkg/apperr"
)

// Service errors
var (
	ErrCollectionNotFound = apperr.NotFound("collection not found")
	ErrCollectorNotFound  = apperr.NotFound("collector not found")
	ErrFarmerNotFound     = apperr.NotFound("farmer not found")
	ErrFutureDate         = apperr.Validation("collection date cannot be in the future")
	ErrDateTooOld         = apperr.Validation("collection date is too far in the past")
)

// FarmerSource resolves farmers referenced by collections
type FarmerSource interface {
	GetByID(ctx context.Context, id int64) (*farmer.Farmer, error)
}

// StaffSource resolves the collector recording a collection
type StaffSource interface {
	GetByID(ctx context.Context, id int64) (*staff.Staff, error)
}

// Auditor records advisory fraud signals without failing the caller
type Auditor interface {
	LogSuspiciousActivity(ctx context.Context, activityType string, details map[string]interface{}, actorID int64, subjectID *int64)
}

// Service handles collection business logic
type Service struct {
	repo             *Repository
	farmers          FarmerSource
	staff            StaffSource
	auditor          Auditor
	maxAgeHours      int
	creationLagLimit time.Duration
}

// NewService creates a new collection service
func NewService(repo *Repository, farmers FarmerSource, staffSource StaffSource, auditor Auditor, maxAgeHours, creationLagMinutes int) *Service {
	return &Service{
		repo:             repo,
		farmers:          farmers,
		staff:            staffSource,
		auditor:          auditor,
		maxAgeHours:      maxAgeHours,
		creationLagLimit: time.Duration(creationLagMinutes) * time.Minute,
	}
}

// Create records a new milk collection. The collection date is validated
// hard: it must not be in the future and must not be older than the
// configured window. A large gap between the collection date and the time
// the record reaches the server is only flagged, never rejected.
func (s *Service) Create(ctx context.Context, req *CreateCollectionRequest) (*Collection, error) {
	collector, err := s.staff.GetByID(ctx, req.CollectorID)
	if err != nil {
		return nil, err
	}
	if collector == nil {
		return nil, ErrCollectorNotFound
	}
	if collector.Role != staff.RoleCollector {
		return nil, apperr.Validation("staff member is not a collector")
	}

	f, err := s.farmers.GetByID(ctx, req.FarmerID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFarmerNotFound
	}

	now := time.Now()
	if req.CollectionDate.After(now) {
		return nil, ErrFutureDate
	}
	if now.Sub(req.CollectionDate) > time.Duration(s.maxAgeHours)*time.Hour {
		return nil, ErrDateTooOld
	}

	if (req.GPSLatitude == nil) != (req.GPSLongitude == nil) {
		return nil, apperr.Validation("gps latitude and longitude must be provided together")
	}

	created, err := s.repo.Create(ctx, &Collection{
		CollectorID:    req.CollectorID,
		FarmerID:       req.FarmerID,
		Liters:         req.Liters,
		CollectionDate: req.CollectionDate,
		GPSLatitude:    req.GPSLatitude,
		GPSLongitude:   req.GPSLongitude,
	})
	if err != nil {
		return nil, apperr.Database("failed to create collection", err)
	}

	if lag := created.CreatedAt.Sub(created.CollectionDate); lag > s.creationLagLimit && s.auditor != nil {
		s.auditor.LogSuspiciousActivity(ctx, "delayed_record_creation", map[string]interface{}{
			"collection_id":   created.ID,
			"collection_date": created.CollectionDate,
			"created_at":      created.CreatedAt,
			"lag_minutes":     int(lag.Minutes()),
		}, created.CollectorID, &created.ID)
	}

	return created, nil
}

// GetByID retrieves a collection by ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Collection, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Database("failed to get collection", err)
	}
	if c == nil {
		return nil, ErrCollectionNotFound
	}
	return c, nil
}

// ListByCollector retrieves a collector's collections with pagination
func (s *Service) ListByCollector(ctx context.Context, collectorID int64, page, perPage int) ([]*Collection, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	collections, total, err := s.repo.ListByCollector(ctx, collectorID, perPage, offset)
	if err != nil {
		return nil, 0, apperr.Database("failed to list collections", err)
	}
	return collections, total, nil
}

// ListPendingApproval retrieves collections awaiting automated approval
func (s *Service) ListPendingApproval(ctx context.Context, limit int) ([]*Collection, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	collections, err := s.repo.ListPendingApproval(ctx, limit)
	if err != nil {
		return nil, apperr.Database("failed to list pending collections", err)
	}
	return collections, nil
}

// ListRecentByCollector retrieves a collector's latest collections, newest first
func (s *Service) ListRecentByCollector(ctx context.Context, collectorID int64, limit int) ([]*Collection, error) {
	if limit < 1 {
		limit = 10
	}
	collections, err := s.repo.ListRecentByCollector(ctx, collectorID, limit)
	if err != nil {
		return nil, apperr.Database("failed to list recent collections", err)
	}
	return collections, nil
}

// ListByIDs retrieves the given collections
func (s *Service) ListByIDs(ctx context.Context, ids []int64) ([]*Collection, error) {
	collections, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Database("failed to list collections", err)
	}
	return collections, nil
}

// ListApprovedInPeriod retrieves a collector's approved collections inside a period
func (s *Service) ListApprovedInPeriod(ctx context.Context, collectorID int64, start, end time.Time) ([]*Collection, error) {
	if end.Before(start) {
		return nil, apperr.Validation(fmt.Sprintf("period end %s is before start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02")))
	}
	collections, err := s.repo.ListApprovedInPeriod(ctx, collectorID, start, end)
	if err != nil {
		return nil, apperr.Database("failed to list approved collections", err)
	}
	return collections, nil
}
