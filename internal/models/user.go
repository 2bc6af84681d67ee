package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRoleType string

const (
	UserRoleBuyer UserRoleType = "BUYER"
	UserRoleAgent UserRoleType = "AGENT"
	UserRoleAdmin UserRoleType = "ADMIN"
)

type User struct {
	Versioned

	ID           uuid.UUID    `json:"id"`
	Email        string       `json:"email"`
	PhoneNumber  string       `json:"phone_number,omitempty"`
	PasswordHash string       `json:"-"`
	TOTPSecret   string       `json:"totp_secret,omitempty"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Role         UserRoleType `json:"role"`

	// Agent-only public profile fields
	AgencyName *string `json:"agency_name,omitempty"`
	LicenseID  *string `json:"license_id,omitempty"`

	IsBanned bool       `json:"is_banned"`
	BannedAt *time.Time `json:"banned_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) GetID() string {
	return u.ID.String()
}
