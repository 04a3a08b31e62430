package farmer

// CreateFarmerRequest represents the request to register a farmer
type CreateFarmerRequest struct {
	FullName     string   `json:"full_name" validate:"required,min=1,max=255"`
	Phone        string   `json:"phone" validate:"required,min=7,max=20"`
	GPSLatitude  *float64 `json:"gps_latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	GPSLongitude *float64 `json:"gps_longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// UpdateFarmerRequest represents the request to update a farmer
type UpdateFarmerRequest struct {
	FullName     *string  `json:"full_name,omitempty" validate:"omitempty,min=1,max=255"`
	Phone        *string  `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	GPSLatitude  *float64 `json:"gps_latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	GPSLongitude *float64 `json:"gps_longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}
