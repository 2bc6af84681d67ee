package controllers

import (
	"net/http"
	"strings"

	"github.com/juanqui-art/inmo-app-sub002/internal/constants"
	"github.com/juanqui-art/inmo-app-sub002/internal/dtos"
	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/services"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// PropertyController serves the public catalog endpoints. List results
// are anonymous-safe (PUBLISHED only); the detail endpoint widens for
// owners and admins when a token is presented.
type PropertyController struct {
	searchService      services.SearchService
	propertyService    services.PropertyService
	appointmentService services.AppointmentService
}

func NewPropertyController(
	searchService services.SearchService,
	propertyService services.PropertyService,
	appointmentService services.AppointmentService,
) *PropertyController {
	return &PropertyController{
		searchService:      searchService,
		propertyService:    propertyService,
		appointmentService: appointmentService,
	}
}

func (c *PropertyController) SearchHandler(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r)

	props, total, err := c.searchService.Search(r.Context(), f)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.PropertyList{
		Properties: propertiesToDTOs(props),
		Total:      total,
		Page:       f.Page,
		Size:       f.Size,
	})
}

// GetHandler serves a single listing. Anonymous callers only see
// PUBLISHED listings; the owning agent and admins see any status.
func (c *PropertyController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondNotFound(w)
		return
	}

	viewerID := getUserIDFromContext(r)
	role, _ := middlewareRole(r)
	p, err := c.searchService.GetVisible(r.Context(), id, viewerID, role)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	dto := dtos.NewPropertyFromModel(p)
	images, iErr := c.propertyService.ListImages(r.Context(), p.ID)
	if iErr != nil {
		utils.Logger.WithError(iErr).Errorf("Failed to load images for property %s", p.ID)
	} else {
		dto.Images = imagesToDTOs(images)
	}

	utils.RespondWithJSON(w, http.StatusOK, dto)
}

// MapHandler returns trimmed pins inside a viewport. All four corners
// are required.
func (c *PropertyController) MapHandler(w http.ResponseWriter, r *http.Request) {
	neLat, ok1 := queryFloat(r, "ne_lat")
	neLng, ok2 := queryFloat(r, "ne_lng")
	swLat, ok3 := queryFloat(r, "sw_lat")
	swLng, ok4 := queryFloat(r, "sw_lng")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			"ne_lat, ne_lng, sw_lat and sw_lng are required", nil,
		)
		return
	}

	box := repositories.BoundingBox{NELat: neLat, NELng: neLng, SWLat: swLat, SWLng: swLng}
	props, err := c.searchService.ListInBounds(r.Context(), box)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	pins := make([]dtos.MapPin, 0, len(props))
	for _, p := range props {
		pins = append(pins, dtos.NewMapPinFromModel(p))
	}
	utils.RespondWithJSON(w, http.StatusOK, pins)
}

func (c *PropertyController) NearbyHandler(w http.ResponseWriter, r *http.Request) {
	lat, ok1 := queryFloat(r, "lat")
	lng, ok2 := queryFloat(r, "lng")
	if !ok1 || !ok2 {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "lat and lng are required", nil,
		)
		return
	}
	radiusKm, _ := queryFloat(r, "radius_km")

	results, err := c.searchService.ListNearby(r.Context(), lat, lng, radiusKm)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := make([]dtos.Property, 0, len(results))
	for _, res := range results {
		dto := dtos.NewPropertyFromModel(res.Property)
		d := res.DistanceKm
		dto.DistanceKm = &d
		out = append(out, dto)
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// SlotsHandler lists the bookable visit slots for a listing on a given
// date (YYYY-MM-DD, property-local).
func (c *PropertyController) SlotsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondNotFound(w)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "date is required", nil,
		)
		return
	}

	slots, err := c.appointmentService.AvailableSlots(r.Context(), id, date)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, slots)
}

// filterFromQuery maps the catalog query string onto a PropertyFilter.
// Invalid numeric values fall back to the unfiltered behavior.
func filterFromQuery(r *http.Request) repositories.PropertyFilter {
	q := r.URL.Query()
	var f repositories.PropertyFilter

	if v := strings.TrimSpace(q.Get("city")); v != "" {
		f.City = &v
	}
	if v := q.Get("type"); v != "" {
		t := models.PropertyType(strings.ToUpper(v))
		f.Type = &t
	}
	if v := q.Get("transaction"); v != "" {
		t := models.TransactionType(strings.ToUpper(v))
		f.Transaction = &t
	}
	if v, ok := queryFloat(r, "min_price"); ok {
		f.MinPrice = &v
	}
	if v, ok := queryFloat(r, "max_price"); ok {
		f.MaxPrice = &v
	}
	if v := queryInt(r, "min_bedrooms", 0); v > 0 {
		f.MinBedrooms = &v
	}
	if v := queryInt(r, "min_bathrooms", 0); v > 0 {
		f.MinBathrooms = &v
	}
	if v, ok := queryFloat(r, "min_area_m2"); ok {
		f.MinAreaM2 = &v
	}
	if v := strings.TrimSpace(q.Get("q")); v != "" {
		f.Keyword = &v
	}
	if v := q.Get("features"); v != "" {
		for _, feat := range strings.Split(v, ",") {
			if feat = strings.TrimSpace(feat); feat != "" {
				f.Features = append(f.Features, feat)
			}
		}
	}

	f.Sort = repositories.SortOption(q.Get("sort"))
	f.Page = queryInt(r, "page", 1)
	f.Size = queryInt(r, "size", constants.DefaultPageSize)
	return f
}

func propertiesToDTOs(props []*models.Property) []dtos.Property {
	out := make([]dtos.Property, 0, len(props))
	for _, p := range props {
		out = append(out, dtos.NewPropertyFromModel(p))
	}
	return out
}

func imagesToDTOs(images []*models.PropertyImage) []dtos.PropertyImage {
	out := make([]dtos.PropertyImage, 0, len(images))
	for _, img := range images {
		out = append(out, dtos.PropertyImage{
			ID:        img.ID.String(),
			URL:       img.URL,
			AltText:   img.AltText,
			SortOrder: img.SortOrder,
			IsCover:   img.IsCover,
		})
	}
	return out
}
