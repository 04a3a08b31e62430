package collection

import "time"

// Collection statuses
const (
	StatusCollected = "collected"
	StatusApproved  = "approved"
)

// Collection represents milk picked up from one farmer by one collector
type Collection struct {
	ID             int64     `json:"id"`
	CollectorID    int64     `json:"collector_id"`
	FarmerID       int64     `json:"farmer_id"`
	Liters         float64   `json:"liters"`
	CollectionDate time.Time `json:"collection_date"`
	GPSLatitude    *float64  `json:"gps_latitude,omitempty"`
	GPSLongitude   *float64  `json:"gps_longitude,omitempty"`
	Status         string    `json:"status"`
	ApprovalID     *int64    `json:"approval_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasGPS reports whether the collection was recorded with device coordinates
func (c *Collection) HasGPS() bool {
	return c.GPSLatitude != nil && c.GPSLongitude != nil
}
