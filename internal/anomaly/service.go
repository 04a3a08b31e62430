package anomaly

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jkorir/maziwa/internal/collection"
	"github.com/jkorir/maziwa/internal/farmer"
	"github.com/jkorir/maziwa/pkg/geo"
)

// travelHistoryDepth is how many recent collections feed the speed check
const travelHistoryDepth = 10

// CollectionSource provides the collection history the checks run over
type CollectionSource interface {
	ListRecentByCollector(ctx context.Context, collectorID int64, limit int) ([]*collection.Collection, error)
	ListPendingApproval(ctx context.Context, limit int) ([]*collection.Collection, error)
}

// FarmerSource resolves the farmer a collection belongs to
type FarmerSource interface {
	GetByID(ctx context.Context, id int64) (*farmer.Farmer, error)
}

// Auditor records advisory fraud signals without failing the caller
type Auditor interface {
	LogSuspiciousActivity(ctx context.Context, activityType string, details map[string]interface{}, actorID int64, subjectID *int64)
}

// Service runs the advisory fraud checks. Every check here is soft: flags
// are written to the audit trail but never block the operation under way.
type Service struct {
	collections CollectionSource
	farmers     FarmerSource
	auditor     Auditor
	log         *zap.Logger

	maxDistanceKm float64
	maxSpeedKmh   float64
	approvalLag   time.Duration
}

// NewService creates a new anomaly service
func NewService(collections CollectionSource, farmers FarmerSource, auditor Auditor, log *zap.Logger, maxDistanceKm, maxSpeedKmh float64, approvalLagHours int) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		collections:   collections,
		farmers:       farmers,
		auditor:       auditor,
		log:           log,
		maxDistanceKm: maxDistanceKm,
		maxSpeedKmh:   maxSpeedKmh,
		approvalLag:   time.Duration(approvalLagHours) * time.Hour,
	}
}

// InspectCollection runs the GPS checks against one collection and logs
// every flag it raises. Missing coordinates on either side simply skip the
// relevant check.
func (s *Service) InspectCollection(ctx context.Context, c *collection.Collection) []*Flag {
	var flags []*Flag

	if c.HasGPS() {
		where := geo.Point{Latitude: *c.GPSLatitude, Longitude: *c.GPSLongitude}

		if flag := s.checkFarmerDistance(ctx, c, where); flag != nil {
			flags = append(flags, flag)
		}
		flags = append(flags, s.checkTravelHistory(ctx, c)...)
	}

	for _, flag := range flags {
		flag.Details["collection_id"] = c.ID
		s.auditor.LogSuspiciousActivity(ctx, flag.Type, flag.Details, c.CollectorID, &c.ID)
	}

	return flags
}

func (s *Service) checkFarmerDistance(ctx context.Context, c *collection.Collection, where geo.Point) *Flag {
	f, err := s.farmers.GetByID(ctx, c.FarmerID)
	if err != nil || f == nil {
		s.log.Warn("skipping distance check, farmer lookup failed",
			zap.Int64("farmer_id", c.FarmerID),
			zap.Error(err))
		return nil
	}
	if !f.HasRegisteredLocation() {
		return nil
	}

	registered := geo.Point{Latitude: *f.GPSLatitude, Longitude: *f.GPSLongitude}
	return CheckDistance(registered, where, s.maxDistanceKm)
}

func (s *Service) checkTravelHistory(ctx context.Context, c *collection.Collection) []*Flag {
	recent, err := s.collections.ListRecentByCollector(ctx, c.CollectorID, travelHistoryDepth)
	if err != nil {
		s.log.Warn("skipping travel speed check, history lookup failed",
			zap.Int64("collector_id", c.CollectorID),
			zap.Error(err))
		return nil
	}

	// recent is newest first; rebuild the GPS track oldest first
	var points []trackPoint
	for i := len(recent) - 1; i >= 0; i-- {
		rc := recent[i]
		if !rc.HasGPS() {
			continue
		}
		points = append(points, trackPoint{
			At:       rc.CollectionDate,
			Location: geo.Point{Latitude: *rc.GPSLatitude, Longitude: *rc.GPSLongitude},
		})
	}

	return checkTravelSpeed(points, s.maxSpeedKmh)
}

// FlagStalePending flags collections that have sat unapproved longer than
// the configured lag. Intended to run periodically.
func (s *Service) FlagStalePending(ctx context.Context) (int, error) {
	pending, err := s.collections.ListPendingApproval(ctx, 500)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	flagged := 0
	for _, c := range pending {
		age := now.Sub(c.CreatedAt)
		if age <= s.approvalLag {
			continue
		}
		s.auditor.LogSuspiciousActivity(ctx, ActivityStaleApproval, map[string]interface{}{
			"collection_id": c.ID,
			"created_at":    c.CreatedAt,
			"pending_hours": int(age.Hours()),
		}, c.CollectorID, &c.ID)
		flagged++
	}

	return flagged, nil
}
