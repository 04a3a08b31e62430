package payment

import "time"

// CreatePaymentRequest represents the request to open a payment for a period
type CreatePaymentRequest struct {
	CollectorID int64     `json:"collector_id" validate:"required,gt=0"`
	PeriodStart time.Time `json:"period_start" validate:"required"`
	PeriodEnd   time.Time `json:"period_end" validate:"required"`
	Notes       *string   `json:"notes,omitempty"`
}

// WithPenalties is a payment reconciled against the collector's pending
// penalties for the same period
type WithPenalties struct {
	Payment          *Payment `json:"payment"`
	PendingPenalties float64  `json:"pending_penalties"`
	AdjustedEarnings float64  `json:"adjusted_earnings"`
}
