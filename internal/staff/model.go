package staff

import "time"

// Role represents a staff member's role in the system
type Role string

const (
	RoleCollector Role = "collector"
	RoleStaff     Role = "staff"
	RoleAdmin     Role = "admin"
)

// Staff represents a company staff member (collector, approver or admin)
type Staff struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
