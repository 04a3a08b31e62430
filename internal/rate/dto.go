package rate

// CreateRateRequest represents the request to set a new milk rate
type CreateRateRequest struct {
	RatePerLiter float64 `json:"rate_per_liter" validate:"required,gt=0"`
}
