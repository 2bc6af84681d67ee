package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// FavoriteService lets buyers save listings. Save and remove are both
// idempotent.
type FavoriteService interface {
	Save(ctx context.Context, userID, propertyID uuid.UUID) error
	Remove(ctx context.Context, userID, propertyID uuid.UUID) error
	ListProperties(ctx context.Context, userID uuid.UUID) ([]*models.Property, error)
}

type favoriteService struct {
	favRepo  repositories.FavoriteRepository
	propRepo repositories.PropertyRepository
}

func NewFavoriteService(
	favRepo repositories.FavoriteRepository,
	propRepo repositories.PropertyRepository,
) FavoriteService {
	return &favoriteService{favRepo: favRepo, propRepo: propRepo}
}

func (s *favoriteService) Save(ctx context.Context, userID, propertyID uuid.UUID) error {
	p, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if p == nil || p.Status != models.PropertyStatusPublished {
		return utils.ErrNotFound
	}

	_, err = s.favRepo.Upsert(ctx, userID, propertyID)
	return err
}

func (s *favoriteService) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	return s.favRepo.Delete(ctx, userID, propertyID)
}

// ListProperties returns the saved listings that are still visible.
// Archived or sold listings silently drop out of the list.
func (s *favoriteService) ListProperties(ctx context.Context, userID uuid.UUID) ([]*models.Property, error) {
	ids, err := s.favRepo.ListPropertyIDsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Property, 0, len(ids))
	for _, id := range ids {
		p, err := s.propRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil && p.Status == models.PropertyStatusPublished {
			out = append(out, p)
		}
	}
	return out, nil
}
