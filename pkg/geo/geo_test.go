package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Point
		wantKm  float64
		within  float64
	}{
		{
			name:   "Same point",
			a:      Point{Latitude: -1.2921, Longitude: 36.8219},
			b:      Point{Latitude: -1.2921, Longitude: 36.8219},
			wantKm: 0,
			within: 0.001,
		},
		{
			name:   "Nairobi to Nakuru",
			a:      Point{Latitude: -1.2921, Longitude: 36.8219},
			b:      Point{Latitude: -0.3031, Longitude: 36.0800},
			wantKm: 137,
			within: 5,
		},
		{
			name:   "One degree of latitude",
			a:      Point{Latitude: 0, Longitude: 36},
			b:      Point{Latitude: 1, Longitude: 36},
			wantKm: 111.2,
			within: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.a, tt.b)
			assert.InDelta(t, tt.wantKm, got, tt.within)
		})
	}
}

func TestPointValidate(t *testing.T) {
	assert.NoError(t, Point{Latitude: -1.29, Longitude: 36.82}.Validate())
	assert.ErrorIs(t, Point{Latitude: 91, Longitude: 0}.Validate(), ErrLatitudeOutOfRange)
	assert.ErrorIs(t, Point{Latitude: 0, Longitude: -181}.Validate(), ErrLongitudeOutOfRange)
}
