package approval

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jkorir/maziwa/internal/anomaly"
	"github.com/jkorir/maziwa/internal/collection"
	"github.com/jkorir/maziwa/internal/penalty"
	"github.com/jkorir/maziwa/internal/variance"
	"github.com/jkorir/maziwa/pkg/apperr"
	"github.com/jkorir/maziwa/pkg/geo"
)

// Service errors
var (
	ErrCollectionNotFound = apperr.NotFound("collection not found")
	ErrAlreadyApproved    = apperr.Validation("collection is already approved")
	ErrWeighingTooLate    = apperr.Validation("weighing happened outside the allowed window after collection")
)

// Store persists approval records
type Store interface {
	GetByCollectionID(ctx context.Context, collectionID int64) (*Record, error)
	CreateApproval(ctx context.Context, record *Record) (*Record, error)
}

// CollectionSource resolves collections awaiting approval. A missing
// collection is reported as nil, not as an error.
type CollectionSource interface {
	GetByID(ctx context.Context, id int64) (*collection.Collection, error)
}

// AnomalyChecker runs the advisory fraud checks against a collection
type AnomalyChecker interface {
	InspectCollection(ctx context.Context, c *collection.Collection) []*anomaly.Flag
}

// PenaltyCalculator resolves the raw penalty for a variance
type PenaltyCalculator interface {
	CalculatePenalty(ctx context.Context, v variance.Variance) (float64, error)
}

// Ledger charges penalties against collector accounts
type Ledger interface {
	Incur(ctx context.Context, collectorID int64, amount float64, refType string, refID *int64, notes *string, actorID int64) (*penalty.Transaction, error)
}

// Auditor records approval decisions and fraud signals
type Auditor interface {
	Append(ctx context.Context, tableName string, recordID *int64, operation string, actorID int64, payload interface{})
	LogSuspiciousActivity(ctx context.Context, activityType string, details map[string]interface{}, actorID int64, subjectID *int64)
}

// Service orchestrates automated approval: weighing validation, variance
// calculation, penalty charging and the audit trail.
type Service struct {
	store       Store
	collections CollectionSource
	anomalies   AnomalyChecker
	calculator  PenaltyCalculator
	ledger      Ledger
	auditor     Auditor
	log         *zap.Logger

	weighingWindow time.Duration
	maxDistanceKm  float64
}

// NewService creates a new approval service
func NewService(store Store, collections CollectionSource, anomalies AnomalyChecker, calculator PenaltyCalculator, ledger Ledger, auditor Auditor, log *zap.Logger, weighingWindowHours int, maxDistanceKm float64) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:          store,
		collections:    collections,
		anomalies:      anomalies,
		calculator:     calculator,
		ledger:         ledger,
		auditor:        auditor,
		log:            log,
		weighingWindow: time.Duration(weighingWindowHours) * time.Hour,
		maxDistanceKm:  maxDistanceKm,
	}
}

// Process runs automated approval for one collection.
//
// Weighing timeliness is the only hard gate: a collection weighed outside
// the window is rejected and flagged. GPS checks are advisory and never
// block approval. The approval record and the collection status change
// commit together; the penalty charge follows the commit.
func (s *Service) Process(ctx context.Context, req *ProcessRequest, actorID int64) (*Record, error) {
	c, err := s.collections.GetByID(ctx, req.CollectionID)
	if err != nil {
		return nil, apperr.Database("failed to get collection", err)
	}
	if c == nil {
		return nil, ErrCollectionNotFound
	}

	existing, err := s.store.GetByCollectionID(ctx, req.CollectionID)
	if err != nil {
		return nil, apperr.Database("failed to check existing approval", err)
	}
	if existing != nil || c.Status == collection.StatusApproved {
		return nil, ErrAlreadyApproved
	}

	weighedAt := time.Now()
	if req.WeighedAt != nil {
		weighedAt = *req.WeighedAt
	}

	if !anomaly.WithinWeighingWindow(c.CollectionDate, weighedAt, s.weighingWindow) {
		s.auditor.LogSuspiciousActivity(ctx, anomaly.ActivityLateWeighing, map[string]interface{}{
			"collection_id":   c.ID,
			"collection_date": c.CollectionDate,
			"weighed_at":      weighedAt,
			"window_hours":    int(s.weighingWindow.Hours()),
		}, c.CollectorID, &c.ID)
		if anomaly.IsHard(anomaly.ActivityLateWeighing) {
			return nil, ErrWeighingTooLate
		}
	}

	s.checkWeighingLocation(ctx, c, req.Location)
	s.anomalies.InspectCollection(ctx, c)

	v := variance.Calculate(c.Liters, req.ReceivedLiters)

	penaltyAmount, err := s.calculator.CalculatePenalty(ctx, v)
	if err != nil {
		return nil, err
	}

	record, err := s.store.CreateApproval(ctx, &Record{
		CollectionID:    c.ID,
		ReceivedLiters:  req.ReceivedLiters,
		VarianceLiters:  v.VarianceLiters,
		VariancePercent: v.VariancePercent,
		VarianceType:    v.Type,
		PenaltyAmount:   penaltyAmount,
		Notes:           req.Notes,
		ApprovedBy:      actorID,
		ApprovedAt:      weighedAt,
	})
	if err != nil {
		return nil, apperr.Database("failed to create approval", err)
	}

	if _, err := s.ledger.Incur(ctx, c.CollectorID, penaltyAmount, ReferenceType, &record.ID, nil, actorID); err != nil {
		// The approval is committed; surface the charge failure so the
		// operator reconciles the ledger rather than silently dropping it.
		s.log.Error("approval committed but penalty charge failed",
			zap.Int64("approval_id", record.ID),
			zap.Int64("collector_id", c.CollectorID),
			zap.Float64("penalty_amount", penaltyAmount),
			zap.Error(err))
		return nil, apperr.Database("approval created but penalty charge failed", err)
	}

	s.auditor.Append(ctx, "approvals", &record.ID, "approve_collection_automated", actorID, record)

	return record, nil
}

// checkWeighingLocation compares the staff's position at weighing against
// the collection's coordinates. Advisory only: a mismatch is flagged but the
// physical measurement is never blocked by it.
func (s *Service) checkWeighingLocation(ctx context.Context, c *collection.Collection, loc *geo.Point) {
	if loc == nil || !c.HasGPS() {
		return
	}

	if err := loc.Validate(); err != nil {
		s.auditor.LogSuspiciousActivity(ctx, anomaly.ActivityWeighingMismatch, map[string]interface{}{
			"collection_id": c.ID,
			"reason":        err.Error(),
		}, c.CollectorID, &c.ID)
		return
	}

	distance := geo.DistanceKm(*loc, geo.Point{Latitude: *c.GPSLatitude, Longitude: *c.GPSLongitude})
	if distance > s.maxDistanceKm {
		s.auditor.LogSuspiciousActivity(ctx, anomaly.ActivityWeighingMismatch, map[string]interface{}{
			"collection_id": c.ID,
			"distance_km":   distance,
			"max_km":        s.maxDistanceKm,
		}, c.CollectorID, &c.ID)
	}
}

// ProcessBatch approves collections strictly in order. One failure never
// stops the rest of the batch; each item carries its own outcome.
func (s *Service) ProcessBatch(ctx context.Context, req *BatchRequest, actorID int64) (*BatchResult, error) {
	result := &BatchResult{
		Results: make([]BatchItemResult, 0, len(req.Items)),
	}

	for i := range req.Items {
		item := &req.Items[i]
		record, err := s.Process(ctx, item, actorID)

		outcome := BatchItemResult{CollectionID: item.CollectionID}
		if err != nil {
			outcome.Error = err.Error()
			result.Failed++
		} else {
			outcome.Approved = true
			outcome.Approval = record
			result.Approved++
		}
		result.Results = append(result.Results, outcome)
		result.Processed++
	}

	s.auditor.Append(ctx, "approvals", nil, "batch_approval_processed", actorID, map[string]int{
		"processed": result.Processed,
		"approved":  result.Approved,
		"failed":    result.Failed,
	})

	return result, nil
}

// GetByCollectionID retrieves the approval for a collection
func (s *Service) GetByCollectionID(ctx context.Context, collectionID int64) (*Record, error) {
	record, err := s.store.GetByCollectionID(ctx, collectionID)
	if err != nil {
		return nil, apperr.Database("failed to get approval", err)
	}
	if record == nil {
		return nil, apperr.NotFound("approval not found")
	}
	return record, nil
}
