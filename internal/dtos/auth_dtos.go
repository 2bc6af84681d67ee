package dtos

import "github.com/juanqui-art/inmo-app-sub002/internal/models"

// ----------------------
// Requests
// ----------------------

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=10,max=128"`
	FirstName   string `json:"first_name" validate:"required,min=1,max=100"`
	LastName    string `json:"last_name" validate:"required,min=1,max=100"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,e164"`
	Role        string `json:"role" validate:"required,oneof=BUYER AGENT"`

	// Agent-only fields.
	AgencyName *string `json:"agency_name" validate:"omitempty,min=1,max=200"`
	LicenseID  *string `json:"license_id" validate:"omitempty,min=1,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`

	// Required for ADMIN accounts only.
	TOTPCode string `json:"totp_code" validate:"omitempty,len=6,numeric"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"omitempty,len=64"`
}

// ----------------------
// Responses
// ----------------------

type RegisterResponse struct {
	User User `json:"user"`
}

type LoginResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

// User omits sensitive fields like password hashes and TOTP secrets.
type User struct {
	ID          string              `json:"id"`
	Email       string              `json:"email"`
	FirstName   string              `json:"first_name"`
	LastName    string              `json:"last_name"`
	PhoneNumber string              `json:"phone_number,omitempty"`
	Role        models.UserRoleType `json:"role"`
	AgencyName  *string             `json:"agency_name,omitempty"`
	LicenseID   *string             `json:"license_id,omitempty"`
	IsBanned    bool                `json:"is_banned"`
}

// NewUserFromModel creates a User DTO from a models.User.
func NewUserFromModel(u *models.User) User {
	return User{
		ID:          u.ID.String(),
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		AgencyName:  u.AgencyName,
		LicenseID:   u.LicenseID,
		IsBanned:    u.IsBanned,
	}
}
