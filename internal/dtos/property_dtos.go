package dtos

import (
	"time"

	"github.com/juanqui-art/inmo-app-sub002/internal/models"
)

// ----------------------
// Requests
// ----------------------

type CreatePropertyRequest struct {
	Title       string   `json:"title" validate:"required,min=5,max=200"`
	Description string   `json:"description" validate:"required,min=20,max=5000"`
	Type        string   `json:"type" validate:"required,oneof=HOUSE APARTMENT LAND COMMERCIAL OFFICE"`
	Transaction string   `json:"transaction" validate:"required,oneof=SALE RENT"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Bedrooms    int      `json:"bedrooms" validate:"gte=0,lte=50"`
	Bathrooms   int      `json:"bathrooms" validate:"gte=0,lte=50"`
	AreaM2      float64  `json:"area_m2" validate:"required,gt=0"`
	Address     string   `json:"address" validate:"required,min=3,max=300"`
	City        string   `json:"city" validate:"required,min=2,max=100"`
	State       string   `json:"state" validate:"required,min=2,max=100"`
	ZipCode     string   `json:"zip_code" validate:"required,min=3,max=20"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
	Features    []string `json:"features" validate:"max=50,dive,min=1,max=50"`
}

type UpdatePropertyRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=5,max=200"`
	Description *string  `json:"description" validate:"omitempty,min=20,max=5000"`
	Type        *string  `json:"type" validate:"omitempty,oneof=HOUSE APARTMENT LAND COMMERCIAL OFFICE"`
	Transaction *string  `json:"transaction" validate:"omitempty,oneof=SALE RENT"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Bedrooms    *int     `json:"bedrooms" validate:"omitempty,gte=0,lte=50"`
	Bathrooms   *int     `json:"bathrooms" validate:"omitempty,gte=0,lte=50"`
	AreaM2      *float64 `json:"area_m2" validate:"omitempty,gt=0"`
	Address     *string  `json:"address" validate:"omitempty,min=3,max=300"`
	City        *string  `json:"city" validate:"omitempty,min=2,max=100"`
	State       *string  `json:"state" validate:"omitempty,min=2,max=100"`
	ZipCode     *string  `json:"zip_code" validate:"omitempty,min=3,max=20"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
	Features    []string `json:"features" validate:"omitempty,max=50,dive,min=1,max=50"`
}

type ChangePropertyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT PUBLISHED ARCHIVED SOLD"`
}

type AddPropertyImageRequest struct {
	URL       string `json:"url" validate:"required,url,max=2000"`
	AltText   string `json:"alt_text" validate:"max=300"`
	SortOrder int    `json:"sort_order" validate:"gte=0,lte=100"`
	IsCover   bool   `json:"is_cover"`
}

// ----------------------
// Responses
// ----------------------

type Property struct {
	ID          string                    `json:"id"`
	AgentID     string                    `json:"agent_id"`
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Type        models.PropertyType       `json:"type"`
	Transaction models.TransactionType    `json:"transaction"`
	Status      models.PropertyStatusType `json:"status"`
	Price       float64                   `json:"price"`
	Bedrooms    int                       `json:"bedrooms"`
	Bathrooms   int                       `json:"bathrooms"`
	AreaM2      float64                   `json:"area_m2"`
	Address     string                    `json:"address"`
	City        string                    `json:"city"`
	State       string                    `json:"state"`
	ZipCode     string                    `json:"zip_code"`
	Latitude    float64                   `json:"latitude"`
	Longitude   float64                   `json:"longitude"`
	Features    []string                  `json:"features"`
	CreatedAt   time.Time                 `json:"created_at"`

	// DistanceKm is populated only by the nearby endpoint.
	DistanceKm *float64 `json:"distance_km,omitempty"`

	Images []PropertyImage `json:"images,omitempty"`
}

type PropertyImage struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	AltText   string `json:"alt_text"`
	SortOrder int    `json:"sort_order"`
	IsCover   bool   `json:"is_cover"`
}

type PropertyList struct {
	Properties []Property `json:"properties"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Size       int        `json:"size"`
}

// MapPin is the trimmed payload for map browsing.
type MapPin struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewPropertyFromModel creates a Property DTO from a models.Property.
func NewPropertyFromModel(p *models.Property) Property {
	return Property{
		ID:          p.ID.String(),
		AgentID:     p.AgentID.String(),
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		Transaction: p.Transaction,
		Status:      p.Status,
		Price:       p.Price,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		AreaM2:      p.AreaM2,
		Address:     p.Address,
		City:        p.City,
		State:       p.State,
		ZipCode:     p.ZipCode,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Features:    p.Features,
		CreatedAt:   p.CreatedAt,
	}
}

// NewMapPinFromModel creates a MapPin DTO from a models.Property.
func NewMapPinFromModel(p *models.Property) MapPin {
	return MapPin{
		ID:        p.ID.String(),
		Title:     p.Title,
		Price:     p.Price,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
}
