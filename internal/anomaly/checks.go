package anomaly

import (
	"time"

	"github.com/jkorir/maziwa/pkg/geo"
)

// Suspicious activity types
const (
	ActivityLateWeighing     = "late_weighing"
	ActivityDelayedCreation  = "delayed_record_creation"
	ActivityDistanceExceeded = "gps_distance_exceeded"
	ActivityImpossibleSpeed  = "impossible_travel_speed"
	ActivityStaleApproval    = "stale_pending_approval"
	ActivityWeighingMismatch = "weighing_location_mismatch"
)

// Severity says whether a failed check blocks the operation or only flags it
type Severity string

const (
	SeverityHard Severity = "hard"
	SeveritySoft Severity = "soft"
)

// Policy maps every check to its severity in one place. Hard checks reject
// the operation under way; soft checks feed the audit trail and nothing else.
var Policy = map[string]Severity{
	ActivityLateWeighing:     SeverityHard,
	ActivityDelayedCreation:  SeveritySoft,
	ActivityDistanceExceeded: SeveritySoft,
	ActivityImpossibleSpeed:  SeveritySoft,
	ActivityStaleApproval:    SeveritySoft,
	ActivityWeighingMismatch: SeveritySoft,
}

// IsHard reports whether a failed check must reject the operation
func IsHard(check string) bool {
	return Policy[check] == SeverityHard
}

// Flag is one advisory fraud signal raised against a collection
type Flag struct {
	Type    string                 `json:"type"`
	Details map[string]interface{} `json:"details"`
}

// WithinWeighingWindow reports whether the station weighing happened between
// the collection and the end of the allowed window after it. Both boundaries
// are inclusive: weighing at the collection instant or exactly at the window
// edge still passes, weighing stamped before the collection never does.
func WithinWeighingWindow(collectionDate, weighedAt time.Time, window time.Duration) bool {
	return !weighedAt.Before(collectionDate) && !weighedAt.After(collectionDate.Add(window))
}

// CheckDistance flags a collection recorded too far from the farmer's
// registered location
func CheckDistance(farmerLocation, collectionLocation geo.Point, maxDistanceKm float64) *Flag {
	distance := geo.DistanceKm(farmerLocation, collectionLocation)
	if distance <= maxDistanceKm {
		return nil
	}

	return &Flag{
		Type: ActivityDistanceExceeded,
		Details: map[string]interface{}{
			"distance_km":     distance,
			"max_distance_km": maxDistanceKm,
		},
	}
}

// trackPoint is one GPS-stamped collection in time order
type trackPoint struct {
	At       time.Time
	Location geo.Point
}

// checkTravelSpeed flags consecutive points that would require travelling
// faster than the threshold. Points must be ordered oldest first. Pairs
// recorded at the same instant are skipped rather than divided by zero.
func checkTravelSpeed(points []trackPoint, maxSpeedKmh float64) []*Flag {
	var flags []*Flag
	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1], points[i]

		elapsed := curr.At.Sub(prev.At)
		if elapsed <= 0 {
			continue
		}

		distance := geo.DistanceKm(prev.Location, curr.Location)
		speed := distance / elapsed.Hours()
		if speed > maxSpeedKmh {
			flags = append(flags, &Flag{
				Type: ActivityImpossibleSpeed,
				Details: map[string]interface{}{
					"speed_kmh":     speed,
					"max_speed_kmh": maxSpeedKmh,
					"distance_km":   distance,
					"from_time":     prev.At,
					"to_time":       curr.At,
				},
			})
		}
	}
	return flags
}
