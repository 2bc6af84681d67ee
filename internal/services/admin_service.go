package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/juanqui-art/inmo-app-sub002/internal/dtos"
	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// AdminService backs the admin panel: user moderation, listing
// moderation and the dashboard stats.
type AdminService interface {
	ListUsers(ctx context.Context, page, size int) ([]*models.User, int, error)
	BanUser(ctx context.Context, id uuid.UUID, reason string) (*models.User, error)
	UnbanUser(ctx context.Context, id uuid.UUID) (*models.User, error)

	ListProperties(ctx context.Context, f repositories.PropertyFilter) ([]*models.Property, int, error)
	ForceStatus(ctx context.Context, propertyID uuid.UUID, next models.PropertyStatusType) (*models.Property, error)

	Stats(ctx context.Context) (*dtos.Stats, error)
}

type adminService struct {
	userRepo  repositories.UserRepository
	propRepo  repositories.PropertyRepository
	tokenRepo repositories.TokenRepository
}

func NewAdminService(
	userRepo repositories.UserRepository,
	propRepo repositories.PropertyRepository,
	tokenRepo repositories.TokenRepository,
) AdminService {
	return &adminService{
		userRepo:  userRepo,
		propRepo:  propRepo,
		tokenRepo: tokenRepo,
	}
}

func (s *adminService) ListUsers(ctx context.Context, page, size int) ([]*models.User, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 50
	}
	return s.userRepo.ListAll(ctx, page, size)
}

// BanUser bans the account and revokes every refresh token so open
// sessions die at access-token expiry.
func (s *adminService) BanUser(ctx context.Context, id uuid.UUID, reason string) (*models.User, error) {
	err := s.userRepo.UpdateWithRetry(ctx, id, func(u *models.User) error {
		if u.Role == models.UserRoleAdmin {
			return utils.ErrInvalidRole
		}
		now := time.Now().UTC()
		u.IsBanned = true
		u.BannedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if rErr := s.tokenRepo.RevokeAllByUserID(ctx, id); rErr != nil {
		utils.Logger.WithError(rErr).Errorf("Failed to revoke tokens for banned user %s", id)
	}
	utils.Logger.Infof("User %s banned: %s", id, reason)

	return s.userRepo.GetByID(ctx, id)
}

func (s *adminService) UnbanUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	err := s.userRepo.UpdateWithRetry(ctx, id, func(u *models.User) error {
		u.IsBanned = false
		u.BannedAt = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

func (s *adminService) ListProperties(ctx context.Context, f repositories.PropertyFilter) ([]*models.Property, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Size < 1 || f.Size > 100 {
		f.Size = 50
	}
	return s.propRepo.Search(ctx, f)
}

// ForceStatus bypasses the agent lifecycle rules. Moderation can pull
// any listing regardless of its current state.
func (s *adminService) ForceStatus(ctx context.Context, propertyID uuid.UUID, next models.PropertyStatusType) (*models.Property, error) {
	err := s.propRepo.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
		p.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.propRepo.GetByID(ctx, propertyID)
}

func (s *adminService) Stats(ctx context.Context) (*dtos.Stats, error) {
	byRole, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.propRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	out := &dtos.Stats{
		UsersByRole:        make(map[string]int, len(byRole)),
		PropertiesByStatus: make(map[string]int, len(byStatus)),
	}
	for role, n := range byRole {
		out.UsersByRole[string(role)] = n
	}
	for st, n := range byStatus {
		out.PropertiesByStatus[string(st)] = n
	}
	return out, nil
}
