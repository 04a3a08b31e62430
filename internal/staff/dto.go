package staff

// CreateStaffRequest represents the request to register a staff member
type CreateStaffRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=255"`
	Phone    string `json:"phone" validate:"required,min=7,max=20"`
	Role     string `json:"role" validate:"required,oneof=collector staff admin"`
}

// UpdateStaffRequest represents the request to update a staff member
type UpdateStaffRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=1,max=255"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Active   *bool   `json:"active,omitempty"`
}
