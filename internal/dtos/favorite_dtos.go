package dtos

// ----------------------
// Responses
// ----------------------

type FavoriteList struct {
	Properties []Property `json:"properties"`
}

type FavoriteStatus struct {
	PropertyID string `json:"property_id"`
	Favorited  bool   `json:"favorited"`
}
