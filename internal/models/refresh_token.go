package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken stores only the SHA-256 hash of the opaque token string.
type RefreshToken struct {
	ID                uuid.UUID  `json:"id"`
	UserID            uuid.UUID  `json:"user_id"`
	TokenHash         string     `json:"-"`
	ClientIDType      string     `json:"client_id_type"` // "IP" or "DEVICE_ID"
	ClientIDValue     string     `json:"-"`
	ExpiresAt         time.Time  `json:"expires_at"`
	Revoked           bool       `json:"revoked"`
	CreatedAt         time.Time  `json:"created_at"`
	ReplacedByTokenID *uuid.UUID `json:"-"`
}
