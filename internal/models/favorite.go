package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite links a user to a saved property. (user_id, property_id) is
// unique at the database level.
type Favorite struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	PropertyID uuid.UUID `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
}
