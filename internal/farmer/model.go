package farmer

import "time"

// Farmer represents a registered milk supplier
type Farmer struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	GPSLatitude  *float64  `json:"gps_latitude,omitempty"`  // registered farm location
	GPSLongitude *float64  `json:"gps_longitude,omitempty"` // registered farm location
	CreatedAt    time.Time `json:"created_at"`
}

// HasRegisteredLocation reports whether the farmer registered farm coordinates
func (f *Farmer) HasRegisteredLocation() bool {
	return f.GPSLatitude != nil && f.GPSLongitude != nil
}
