package collection

import "time"

// CreateCollectionRequest represents the request to record a milk collection
type CreateCollectionRequest struct {
	CollectorID    int64     `json:"collector_id" validate:"required,gt=0"`
	FarmerID       int64     `json:"farmer_id" validate:"required,gt=0"`
	Liters         float64   `json:"liters" validate:"required,gt=0"`
	CollectionDate time.Time `json:"collection_date" validate:"required"`
	GPSLatitude    *float64  `json:"gps_latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	GPSLongitude   *float64  `json:"gps_longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}
