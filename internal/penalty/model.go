package penalty

import "time"

// Transaction types
const (
	TxIncurred = "incurred"
	TxPaid     = "paid"
	TxAdjusted = "adjusted"
)

// Account is a collector's running penalty position. PendingAmount is always
// TotalIncurred minus TotalPaid and never goes negative.
type Account struct {
	ID            int64     `json:"id"`
	CollectorID   int64     `json:"collector_id"`
	TotalIncurred float64   `json:"total_incurred"`
	TotalPaid     float64   `json:"total_paid"`
	PendingAmount float64   `json:"pending_amount"`
	Frozen        bool      `json:"frozen"`
	FrozenReason  *string   `json:"frozen_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Balance is a collector's penalty position in one view
type Balance struct {
	PendingAmount float64 `json:"pending_amount"`
	TotalIncurred float64 `json:"total_incurred"`
	TotalPaid     float64 `json:"total_paid"`
}

// Transaction is one immutable ledger entry. Entries are never updated or
// deleted; corrections are new adjusted entries.
type Transaction struct {
	ID            int64     `json:"id"`
	AccountID     int64     `json:"account_id"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	BalanceAfter  float64   `json:"balance_after"`
	ReferenceType *string   `json:"reference_type,omitempty"`
	ReferenceID   *int64    `json:"reference_id,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedBy     int64     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}
