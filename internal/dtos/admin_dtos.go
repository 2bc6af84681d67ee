package dtos

// ----------------------
// Requests
// ----------------------

type BanUserRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// ----------------------
// Responses
// ----------------------

type UserList struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Size  int    `json:"size"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	UsersByRole        map[string]int `json:"users_by_role"`
	PropertiesByStatus map[string]int `json:"properties_by_status"`
}
