package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/juanqui-art/inmo-app-sub002/internal/config"
	"github.com/juanqui-art/inmo-app-sub002/internal/dtos"
	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// allowedStatusTransitions encodes the listing lifecycle. SOLD is terminal.
var allowedStatusTransitions = map[models.PropertyStatusType][]models.PropertyStatusType{
	models.PropertyStatusDraft:     {models.PropertyStatusPublished},
	models.PropertyStatusPublished: {models.PropertyStatusArchived, models.PropertyStatusSold},
	models.PropertyStatusArchived:  {models.PropertyStatusPublished},
	models.PropertyStatusSold:      {},
}

// PropertyService owns the agent-facing listing lifecycle.
type PropertyService interface {
	Create(ctx context.Context, agentID uuid.UUID, req dtos.CreatePropertyRequest) (*models.Property, error)
	Update(ctx context.Context, agentID, propertyID uuid.UUID, req dtos.UpdatePropertyRequest) (*models.Property, error)
	ChangeStatus(ctx context.Context, agentID, propertyID uuid.UUID, next models.PropertyStatusType) (*models.Property, error)

	// Delete removes a listing, or archives it when favorites or
	// appointments still reference it.
	Delete(ctx context.Context, agentID, propertyID uuid.UUID) (archived bool, err error)

	ListInventory(ctx context.Context, agentID uuid.UUID) ([]*models.Property, error)
	GetOwned(ctx context.Context, agentID, propertyID uuid.UUID) (*models.Property, error)

	AddImage(ctx context.Context, agentID, propertyID uuid.UUID, req dtos.AddPropertyImageRequest) (*models.PropertyImage, error)
	RemoveImage(ctx context.Context, agentID, propertyID, imageID uuid.UUID) error
	SetCoverImage(ctx context.Context, agentID, propertyID, imageID uuid.UUID) error
	ListImages(ctx context.Context, propertyID uuid.UUID) ([]*models.PropertyImage, error)
}

type propertyService struct {
	propRepo  repositories.PropertyRepository
	imageRepo repositories.PropertyImageRepository
	favRepo   repositories.FavoriteRepository
	apptRepo  repositories.AppointmentRepository
	cfg       *config.Config
}

func NewPropertyService(
	propRepo repositories.PropertyRepository,
	imageRepo repositories.PropertyImageRepository,
	favRepo repositories.FavoriteRepository,
	apptRepo repositories.AppointmentRepository,
	cfg *config.Config,
) PropertyService {
	return &propertyService{
		propRepo:  propRepo,
		imageRepo: imageRepo,
		favRepo:   favRepo,
		apptRepo:  apptRepo,
		cfg:       cfg,
	}
}

func (s *propertyService) Create(ctx context.Context, agentID uuid.UUID, req dtos.CreatePropertyRequest) (*models.Property, error) {
	lat, lng, err := s.resolveCoordinates(ctx, req.Latitude, req.Longitude, req.Address, req.City, req.State, req.ZipCode)
	if err != nil {
		return nil, err
	}

	p := &models.Property{
		ID:          uuid.New(),
		AgentID:     agentID,
		Title:       req.Title,
		Description: req.Description,
		Type:        models.PropertyType(req.Type),
		Transaction: models.TransactionType(req.Transaction),
		Status:      models.PropertyStatusDraft,
		Price:       req.Price,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaM2:      req.AreaM2,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Latitude:    lat,
		Longitude:   lng,
		Features:    req.Features,
	}

	if err := s.propRepo.Create(ctx, p); err != nil {
		utils.Logger.WithError(err).Error("Failed to create property")
		return nil, errors.New("internal server error")
	}
	return p, nil
}

func (s *propertyService) Update(ctx context.Context, agentID, propertyID uuid.UUID, req dtos.UpdatePropertyRequest) (*models.Property, error) {
	if _, err := s.GetOwned(ctx, agentID, propertyID); err != nil {
		return nil, err
	}

	err := s.propRepo.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
		applyPropertyPatch(p, req)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Re-geocode when the address moved and no explicit coordinates came in.
	addressChanged := req.Address != nil || req.City != nil || req.State != nil || req.ZipCode != nil
	if addressChanged && req.Latitude == nil && req.Longitude == nil {
		p, gErr := s.propRepo.GetByID(ctx, propertyID)
		if gErr == nil && p != nil {
			if lat, lng, cErr := s.resolveCoordinates(ctx, nil, nil, p.Address, p.City, p.State, p.ZipCode); cErr == nil {
				_ = s.propRepo.UpdateWithRetry(ctx, propertyID, func(q *models.Property) error {
					q.Latitude = lat
					q.Longitude = lng
					return nil
				})
			}
		}
	}

	return s.propRepo.GetByID(ctx, propertyID)
}

func (s *propertyService) ChangeStatus(ctx context.Context, agentID, propertyID uuid.UUID, next models.PropertyStatusType) (*models.Property, error) {
	if _, err := s.GetOwned(ctx, agentID, propertyID); err != nil {
		return nil, err
	}

	err := s.propRepo.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
		if !transitionAllowed(p.Status, next) {
			return utils.ErrBadStatusChange
		}
		p.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.propRepo.GetByID(ctx, propertyID)
}

func (s *propertyService) Delete(ctx context.Context, agentID, propertyID uuid.UUID) (bool, error) {
	if _, err := s.GetOwned(ctx, agentID, propertyID); err != nil {
		return false, err
	}

	favCount, err := s.favRepo.CountByPropertyID(ctx, propertyID)
	if err != nil {
		return false, err
	}
	hasAppts, err := s.apptRepo.ExistsByPropertyID(ctx, propertyID)
	if err != nil {
		return false, err
	}

	if favCount > 0 || hasAppts {
		uErr := s.propRepo.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
			p.Status = models.PropertyStatusArchived
			return nil
		})
		return true, uErr
	}

	if err := s.imageRepo.DeleteByPropertyID(ctx, propertyID); err != nil {
		return false, err
	}
	return false, s.propRepo.Delete(ctx, propertyID)
}

func (s *propertyService) ListInventory(ctx context.Context, agentID uuid.UUID) ([]*models.Property, error) {
	return s.propRepo.ListByAgentID(ctx, agentID)
}

func (s *propertyService) GetOwned(ctx context.Context, agentID, propertyID uuid.UUID) (*models.Property, error) {
	p, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrNotFound
	}
	if p.AgentID != agentID {
		return nil, utils.ErrOwnershipMismatch
	}
	return p, nil
}

func (s *propertyService) AddImage(ctx context.Context, agentID, propertyID uuid.UUID, req dtos.AddPropertyImageRequest) (*models.PropertyImage, error) {
	if _, err := s.GetOwned(ctx, agentID, propertyID); err != nil {
		return nil, err
	}

	img := &models.PropertyImage{
		ID:         uuid.New(),
		PropertyID: propertyID,
		URL:        req.URL,
		AltText:    req.AltText,
		SortOrder:  req.SortOrder,
		IsCover:    req.IsCover,
	}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		return nil, err
	}
	if req.IsCover {
		if err := s.imageRepo.SetCover(ctx, propertyID, img.ID); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func (s *propertyService) RemoveImage(ctx context.Context, agentID, propertyID, imageID uuid.UUID) error {
	if _, err := s.GetOwned(ctx, agentID, propertyID); err != nil {
		return err
	}
	img, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if img == nil || img.PropertyID != propertyID {
		return utils.ErrNotFound
	}
	return s.imageRepo.Delete(ctx, imageID)
}

func (s *propertyService) SetCoverImage(ctx context.Context, agentID, propertyID, imageID uuid.UUID) error {
	if _, err := s.GetOwned(ctx, agentID, propertyID); err != nil {
		return err
	}
	return s.imageRepo.SetCover(ctx, propertyID, imageID)
}

func (s *propertyService) ListImages(ctx context.Context, propertyID uuid.UUID) ([]*models.PropertyImage, error) {
	return s.imageRepo.ListByPropertyID(ctx, propertyID)
}

// resolveCoordinates falls back to geocoding when the agent omitted
// explicit coordinates and the geocoding flag is on.
func (s *propertyService) resolveCoordinates(
	ctx context.Context,
	lat, lng *float64,
	address, city, state, zip string,
) (float64, float64, error) {
	if lat != nil && lng != nil {
		return *lat, *lng, nil
	}
	if s.cfg.LDFlag_UseGMapsGeocoding && s.cfg.GMapsAPIKey != "" {
		gLat, gLng, err := utils.GeocodeAddress(ctx, s.cfg.GMapsAPIKey, address, city, state, zip)
		if err != nil {
			utils.Logger.WithError(err).Warn("Geocoding failed, listing saved without coordinates")
			return 0, 0, nil
		}
		return gLat, gLng, nil
	}
	return 0, 0, nil
}

func transitionAllowed(from, to models.PropertyStatusType) bool {
	for _, allowed := range allowedStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func applyPropertyPatch(p *models.Property, req dtos.UpdatePropertyRequest) {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Type != nil {
		p.Type = models.PropertyType(*req.Type)
	}
	if req.Transaction != nil {
		p.Transaction = models.TransactionType(*req.Transaction)
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Bedrooms != nil {
		p.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		p.Bathrooms = *req.Bathrooms
	}
	if req.AreaM2 != nil {
		p.AreaM2 = *req.AreaM2
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.State != nil {
		p.State = *req.State
	}
	if req.ZipCode != nil {
		p.ZipCode = *req.ZipCode
	}
	if req.Latitude != nil {
		p.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		p.Longitude = *req.Longitude
	}
	if req.Features != nil {
		p.Features = req.Features
	}
}
