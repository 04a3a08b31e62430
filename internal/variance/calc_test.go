package variance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		collected   float64
		received    float64
		wantLiters  float64
		wantPercent float64
		wantType    string
	}{
		{
			name:        "Shortage",
			collected:   100,
			received:    92,
			wantLiters:  -8,
			wantPercent: -8,
			wantType:    TypeShortage,
		},
		{
			name:        "Overage",
			collected:   100,
			received:    105,
			wantLiters:  5,
			wantPercent: 5,
			wantType:    TypeOverage,
		},
		{
			name:        "Exact match",
			collected:   250,
			received:    250,
			wantLiters:  0,
			wantPercent: 0,
			wantType:    TypeNone,
		},
		{
			name:        "Zero collected avoids division",
			collected:   0,
			received:    10,
			wantLiters:  10,
			wantPercent: 0,
			wantType:    TypeOverage,
		},
		{
			name:        "Everything lost",
			collected:   60,
			received:    0,
			wantLiters:  -60,
			wantPercent: -100,
			wantType:    TypeShortage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Calculate(tt.collected, tt.received)
			assert.InDelta(t, tt.wantLiters, v.VarianceLiters, 1e-9)
			assert.InDelta(t, tt.wantPercent, v.VariancePercent, 1e-9)
			assert.Equal(t, tt.wantType, v.Type)
		})
	}
}

func TestMatchBand(t *testing.T) {
	bands := []*RateConfig{
		{VarianceType: TypeShortage, MinPercent: 2, MaxPercent: 5, PenaltyRatePerLiter: 10},
		{VarianceType: TypeShortage, MinPercent: 5, MaxPercent: 10, PenaltyRatePerLiter: 20},
		{VarianceType: TypeShortage, MinPercent: 10, MaxPercent: 100, PenaltyRatePerLiter: 50},
		{VarianceType: TypeOverage, MinPercent: 5, MaxPercent: 100, PenaltyRatePerLiter: 5},
	}

	tests := []struct {
		name         string
		varianceType string
		percent      float64
		wantRate     float64
		wantNil      bool
	}{
		{"Below every band", TypeShortage, 1.5, 0, true},
		{"Inside first band", TypeShortage, -3, 10, false},
		{"Boundary prefers lowest band", TypeShortage, -5, 10, false},
		{"Negative percent uses absolute value", TypeShortage, -7, 20, false},
		{"Top band", TypeShortage, -40, 50, false},
		{"Beyond every band", TypeShortage, -150, 0, true},
		{"Overage matches only overage bands", TypeOverage, 7, 5, false},
		{"Overage below its own bands", TypeOverage, 3, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band := matchBand(bands, tt.varianceType, tt.percent)
			if tt.wantNil {
				assert.Nil(t, band)
				return
			}
			assert.NotNil(t, band)
			assert.Equal(t, tt.wantRate, band.PenaltyRatePerLiter)
		})
	}
}

func TestShortageOnlyPolicy(t *testing.T) {
	// only shortages are penalized when no overage band is configured
	bands := []*RateConfig{
		{VarianceType: TypeShortage, MinPercent: 0, MaxPercent: 10, PenaltyRatePerLiter: 3},
	}

	short := Calculate(100, 95)
	band := matchBand(bands, short.Type, short.VariancePercent)
	if assert.NotNil(t, band) {
		assert.InDelta(t, 15.0, 5*band.PenaltyRatePerLiter, 1e-9)
	}

	over := Calculate(100, 105)
	assert.Nil(t, matchBand(bands, over.Type, over.VariancePercent))
}
