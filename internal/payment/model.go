package payment

import "time"

// Payment statuses
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// ReferenceType tags penalty ledger entries settled by payments
const ReferenceType = "payment"

// Payment is a collector's earnings for one payment period. TotalEarnings is
// gross: penalties are reconciled against it at read time and settled when
// the payment is marked paid.
type Payment struct {
	ID               int64      `json:"id"`
	CollectorID      int64      `json:"collector_id"`
	PeriodStart      time.Time  `json:"period_start"`
	PeriodEnd        time.Time  `json:"period_end"`
	TotalCollections int        `json:"total_collections"`
	TotalLiters      float64    `json:"total_liters"`
	RatePerLiter     float64    `json:"rate_per_liter"`
	TotalEarnings    float64    `json:"total_earnings"`
	Status           string     `json:"status"`
	PaymentDate      *time.Time `json:"payment_date,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
