package notification

import "time"

// Notification represents an in-app message for a staff member
type Notification struct {
	ID          int64     `json:"id"`
	RecipientID int64     `json:"recipient_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Category    string    `json:"category"` // e.g. security, payment, approval
	EntityType  *string   `json:"entity_type,omitempty"`
	EntityID    *int64    `json:"entity_id,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}
