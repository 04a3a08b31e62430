package anomaly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jkorir/maziwa/pkg/geo"
)

func TestWithinWeighingWindow(t *testing.T) {
	collected := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	tests := []struct {
		name      string
		weighedAt time.Time
		want      bool
	}{
		{"Same moment", collected, true},
		{"Well inside the window", collected.Add(6 * time.Hour), true},
		{"Exactly on the boundary", collected.Add(24 * time.Hour), true},
		{"One second past the boundary", collected.Add(24*time.Hour + time.Second), false},
		{"A day late", collected.Add(48 * time.Hour), false},
		{"One second before the collection", collected.Add(-time.Second), false},
		{"Two days before the collection", collected.Add(-48 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinWeighingWindow(collected, tt.weighedAt, window))
		})
	}
}

func TestPolicy(t *testing.T) {
	// weighing timeliness is the only hard gate
	assert.True(t, IsHard(ActivityLateWeighing))
	assert.False(t, IsHard(ActivityDelayedCreation))
	assert.False(t, IsHard(ActivityDistanceExceeded))
	assert.False(t, IsHard(ActivityImpossibleSpeed))
	assert.False(t, IsHard(ActivityStaleApproval))
	assert.False(t, IsHard("unknown_check"))
}

func TestCheckDistance(t *testing.T) {
	farm := geo.Point{Latitude: -1.2921, Longitude: 36.8219}

	t.Run("Nearby collection passes", func(t *testing.T) {
		near := geo.Point{Latitude: -1.30, Longitude: 36.83}
		assert.Nil(t, CheckDistance(farm, near, 50))
	})

	t.Run("Distant collection is flagged", func(t *testing.T) {
		far := geo.Point{Latitude: -0.3031, Longitude: 36.0800}
		flag := CheckDistance(farm, far, 50)
		assert.NotNil(t, flag)
		assert.Equal(t, ActivityDistanceExceeded, flag.Type)
		assert.Greater(t, flag.Details["distance_km"].(float64), 50.0)
	})
}

func TestCheckTravelSpeed(t *testing.T) {
	base := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	nairobi := geo.Point{Latitude: -1.2921, Longitude: 36.8219}
	nakuru := geo.Point{Latitude: -0.3031, Longitude: 36.0800}

	t.Run("Plausible route raises nothing", func(t *testing.T) {
		points := []trackPoint{
			{At: base, Location: nairobi},
			{At: base.Add(3 * time.Hour), Location: nakuru},
		}
		assert.Empty(t, checkTravelSpeed(points, 200))
	})

	t.Run("Impossible hop is flagged", func(t *testing.T) {
		points := []trackPoint{
			{At: base, Location: nairobi},
			{At: base.Add(10 * time.Minute), Location: nakuru},
		}
		flags := checkTravelSpeed(points, 200)
		assert.Len(t, flags, 1)
		assert.Equal(t, ActivityImpossibleSpeed, flags[0].Type)
	})

	t.Run("Simultaneous points are skipped", func(t *testing.T) {
		points := []trackPoint{
			{At: base, Location: nairobi},
			{At: base, Location: nakuru},
		}
		assert.Empty(t, checkTravelSpeed(points, 200))
	})

	t.Run("Every bad pair is reported", func(t *testing.T) {
		points := []trackPoint{
			{At: base, Location: nairobi},
			{At: base.Add(5 * time.Minute), Location: nakuru},
			{At: base.Add(10 * time.Minute), Location: nairobi},
		}
		flags := checkTravelSpeed(points, 200)
		assert.Len(t, flags, 2)
	})
}
