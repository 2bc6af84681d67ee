package models

import (
	"time"

	"github.com/google/uuid"
)

type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "HOUSE"
	PropertyTypeApartment  PropertyType = "APARTMENT"
	PropertyTypeLand       PropertyType = "LAND"
	PropertyTypeCommercial PropertyType = "COMMERCIAL"
	PropertyTypeOffice     PropertyType = "OFFICE"
)

type TransactionType string

const (
	TransactionSale TransactionType = "SALE"
	TransactionRent TransactionType = "RENT"
)

type PropertyStatusType string

const (
	PropertyStatusDraft     PropertyStatusType = "DRAFT"
	PropertyStatusPublished PropertyStatusType = "PUBLISHED"
	PropertyStatusArchived  PropertyStatusType = "ARCHIVED"
	PropertyStatusSold      PropertyStatusType = "SOLD"
)

type Property struct {
	Versioned

	ID          uuid.UUID          `json:"id"`
	AgentID     uuid.UUID          `json:"agent_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Type        PropertyType       `json:"type"`
	Transaction TransactionType    `json:"transaction"`
	Status      PropertyStatusType `json:"status"`

	Price     float64 `json:"price"`
	Bedrooms  int     `json:"bedrooms"`
	Bathrooms int     `json:"bathrooms"`
	AreaM2    float64 `json:"area_m2"`

	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	ZipCode   string  `json:"zip_code"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Free-form amenity tags, stored as JSONB.
	Features []string `json:"features,omitempty"`

	IsDemo    bool      `json:"is_demo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Property) GetID() string {
	return p.ID.String()
}

// IsLive reports whether the property is visible to the public catalog.
func (p *Property) IsLive() bool {
	return p.Status == PropertyStatusPublished
}
