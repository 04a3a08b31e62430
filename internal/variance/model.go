package variance

import "time"

// Variance types
const (
	TypeNone     = "none"
	TypeShortage = "shortage"
	TypeOverage  = "overage"
)

// Variance is the difference between what a collector reported picking up
// and what the station received at weighing
type Variance struct {
	CollectedLiters float64 `json:"collected_liters"`
	ReceivedLiters  float64 `json:"received_liters"`
	VarianceLiters  float64 `json:"variance_liters"`
	VariancePercent float64 `json:"variance_percent"`
	Type            string  `json:"type"`
}

// RateConfig is one penalty band. A variance of the band's type whose
// absolute percentage falls inside [MinPercent, MaxPercent] is charged
// PenaltyRatePerLiter for every liter of variance.
type RateConfig struct {
	ID                  int64     `json:"id"`
	VarianceType        string    `json:"variance_type"`
	MinPercent          float64   `json:"min_percent"`
	MaxPercent          float64   `json:"max_percent"`
	PenaltyRatePerLiter float64   `json:"penalty_rate_per_liter"`
	Active              bool      `json:"active"`
	CreatedBy           int64     `json:"created_by"`
	CreatedAt           time.Time `json:"created_at"`
}
