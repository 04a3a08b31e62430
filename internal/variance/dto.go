package variance

// CreateBandRequest represents the request to add a penalty band
type CreateBandRequest struct {
	VarianceType        string  `json:"variance_type" validate:"required,oneof=shortage overage"`
	MinPercent          float64 `json:"min_percent" validate:"gte=0"`
	MaxPercent          float64 `json:"max_percent" validate:"required,gt=0"`
	PenaltyRatePerLiter float64 `json:"penalty_rate_per_liter" validate:"required,gt=0"`
}

// PreviewRequest represents the request to preview a variance calculation
type PreviewRequest struct {
	CollectedLiters float64 `json:"collected_liters" validate:"gte=0"`
	ReceivedLiters  float64 `json:"received_liters" validate:"gte=0"`
}

// PreviewResponse is the previewed variance plus the penalty it would attract
type PreviewResponse struct {
	Variance Variance `json:"variance"`
	Penalty  float64  `json:"penalty"`
}
