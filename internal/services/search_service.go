package services

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/juanqui-art/inmo-app-sub002/internal/constants"
	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// NearbyResult pairs a property with its great-circle distance from the
// query point.
type NearbyResult struct {
	Property   *models.Property
	DistanceKm float64
}

// SearchService serves the public catalog: filtered search, single
// listings, map pins and radius queries. List results only ever contain
// PUBLISHED listings.
type SearchService interface {
	Search(ctx context.Context, f repositories.PropertyFilter) ([]*models.Property, int, error)

	// GetVisible returns one listing. Anonymous viewers (uuid.Nil) only
	// see PUBLISHED; the owning agent and admins see any status.
	GetVisible(ctx context.Context, id, viewerID uuid.UUID, role models.UserRoleType) (*models.Property, error)
	ListInBounds(ctx context.Context, box repositories.BoundingBox) ([]*models.Property, error)
	ListNearby(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyResult, error)
}

type searchService struct {
	propRepo repositories.PropertyRepository
}

func NewSearchService(propRepo repositories.PropertyRepository) SearchService {
	return &searchService{propRepo: propRepo}
}

func (s *searchService) Search(ctx context.Context, f repositories.PropertyFilter) ([]*models.Property, int, error) {
	published := models.PropertyStatusPublished
	f.Status = &published

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Size < 1 {
		f.Size = constants.DefaultPageSize
	}
	if f.Size > constants.MaxPageSize {
		f.Size = constants.MaxPageSize
	}

	return s.propRepo.Search(ctx, f)
}

func (s *searchService) GetVisible(ctx context.Context, id, viewerID uuid.UUID, role models.UserRoleType) (*models.Property, error) {
	p, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrNotFound
	}
	if p.Status == models.PropertyStatusPublished ||
		role == models.UserRoleAdmin ||
		(viewerID != uuid.Nil && viewerID == p.AgentID) {
		return p, nil
	}
	return nil, utils.ErrNotFound
}

func (s *searchService) ListInBounds(ctx context.Context, box repositories.BoundingBox) ([]*models.Property, error) {
	return s.propRepo.ListInBoundingBox(ctx, box, models.PropertyStatusPublished, constants.MapMaxPins)
}

// ListNearby fetches candidates from a crude degree-delta bounding box,
// then ranks by exact haversine distance. One degree of latitude is
// ~111 km; the longitude delta widens with latitude but the exact
// distance check below discards the overshoot.
func (s *searchService) ListNearby(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyResult, error) {
	if radiusKm <= 0 {
		radiusKm = constants.NearbyDefaultKm
	}
	if radiusKm > constants.NearbyMaxRadiusKm {
		radiusKm = constants.NearbyMaxRadiusKm
	}

	delta := radiusKm / 111.0
	box := repositories.BoundingBox{
		NELat: lat + delta,
		NELng: lng + delta*2,
		SWLat: lat - delta,
		SWLng: lng - delta*2,
	}

	candidates, err := s.propRepo.ListInBoundingBox(ctx, box, models.PropertyStatusPublished, constants.MapMaxPins)
	if err != nil {
		return nil, err
	}

	var out []NearbyResult
	for _, p := range candidates {
		d := utils.DistanceKm(lat, lng, p.Latitude, p.Longitude)
		if d <= radiusKm {
			out = append(out, NearbyResult{Property: p, DistanceKm: d})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out, nil
}
