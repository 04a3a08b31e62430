package approval

import "time"

// Penalty statuses on an approval record
const (
	PenaltyPending = "pending"
	PenaltyPaid    = "paid"
)

// ReferenceType tags penalty ledger entries created by approvals
const ReferenceType = "approval"

// Record is the outcome of automated approval for one collection. Exactly
// one record ever exists per collection.
type Record struct {
	ID              int64     `json:"id"`
	CollectionID    int64     `json:"collection_id"`
	ReceivedLiters  float64   `json:"received_liters"`
	VarianceLiters  float64   `json:"variance_liters"`
	VariancePercent float64   `json:"variance_percent"`
	VarianceType    string    `json:"variance_type"`
	PenaltyAmount   float64   `json:"penalty_amount"`
	PenaltyStatus   string    `json:"penalty_status"`
	Notes           *string   `json:"notes,omitempty"`
	ApprovedBy      int64     `json:"approved_by"`
	ApprovedAt      time.Time `json:"approved_at"`
	CreatedAt       time.Time `json:"created_at"`
}
