package rate

import "time"

// MilkRate is the price per liter paid to collectors for a period of time.
// Only one rate is active at any moment; a new rate closes the previous one.
type MilkRate struct {
	ID            int64      `json:"id"`
	RatePerLiter  float64    `json:"rate_per_liter"`
	EffectiveFrom time.Time  `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to,omitempty"`
	CreatedBy     int64      `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
}
