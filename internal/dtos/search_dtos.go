package dtos

// ----------------------
// AI search
// ----------------------

type AISearchRequest struct {
	Query string `json:"query" validate:"required,min=3,max=500"`
}

// ParsedFilters is the structured interpretation the model extracted
// from the free-text query. All fields are optional.
type ParsedFilters struct {
	City         *string  `json:"city,omitempty"`
	Type         *string  `json:"type,omitempty"`
	Transaction  *string  `json:"transaction,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	MinBedrooms  *int     `json:"min_bedrooms,omitempty"`
	MinBathrooms *int     `json:"min_bathrooms,omitempty"`
	MinAreaM2    *float64 `json:"min_area_m2,omitempty"`
	Features     []string `json:"features,omitempty"`
}

type AISearchResponse struct {
	Properties []Property `json:"properties"`
	Total      int        `json:"total"`

	// AIParseApplied is false when the parse fell below the confidence
	// floor (or AI search is disabled) and the results come from plain
	// keyword search instead.
	AIParseApplied bool           `json:"ai_parse_applied"`
	Confidence     float64        `json:"confidence"`
	Filters        *ParsedFilters `json:"filters,omitempty"`
}
