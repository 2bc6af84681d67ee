package models

import (
	"time"

	"github.com/google/uuid"
)

type PropertyImage struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	URL        string    `json:"url"`
	AltText    string    `json:"alt_text,omitempty"`
	SortOrder  int       `json:"sort_order"`
	IsCover    bool      `json:"is_cover"`
	CreatedAt  time.Time `json:"created_at"`
}
