package services

import (
	"context"
	"fmt"

	"github.com/juanqui-art/inmo-app-sub002/internal/config"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// RateLimiterService provides a high-level interface for checking various rate limits.
type RateLimiterService interface {
	CheckLoginRateLimits(ctx context.Context, ip string) error
	CheckRegisterRateLimits(ctx context.Context, ip string) error
	CheckAISearchRateLimits(ctx context.Context, ip string) error
}

type rateLimiterService struct {
	repo repositories.RateLimitRepository
	cfg  *config.Config
}

func NewRateLimiterService(repo repositories.RateLimitRepository, cfg *config.Config) RateLimiterService {
	return &rateLimiterService{repo: repo, cfg: cfg}
}

// CheckLoginRateLimits checks the global and per-IP limits for login attempts.
func (s *rateLimiterService) CheckLoginRateLimits(ctx context.Context, ip string) error {
	globalKey := "auth:global"
	allowed, err := s.repo.IncrementAndCheck(ctx, globalKey, s.cfg.GlobalAuthLimitPerHour, s.cfg.RateLimitWindow)
	if err != nil {
		return err
	}
	if !allowed {
		utils.Logger.Warnf("Global auth rate limit exceeded (key: %s)", globalKey)
		return utils.ErrRateLimitExceeded
	}

	ipKey := fmt.Sprintf("login:ip:%s", ip)
	allowed, err = s.repo.IncrementAndCheck(ctx, ipKey, s.cfg.LoginLimitPerIP, s.cfg.RateLimitWindow)
	if err != nil {
		return err
	}
	if !allowed {
		utils.Logger.Warnf("Per-IP login rate limit exceeded (key: %s)", ipKey)
		return utils.ErrRateLimitExceeded
	}

	return nil
}

// CheckRegisterRateLimits checks the global and per-IP limits for registrations.
func (s *rateLimiterService) CheckRegisterRateLimits(ctx context.Context, ip string) error {
	globalKey := "auth:global"
	allowed, err := s.repo.IncrementAndCheck(ctx, globalKey, s.cfg.GlobalAuthLimitPerHour, s.cfg.RateLimitWindow)
	if err != nil {
		return err
	}
	if !allowed {
		utils.Logger.Warnf("Global auth rate limit exceeded (key: %s)", globalKey)
		return utils.ErrRateLimitExceeded
	}

	ipKey := fmt.Sprintf("register:ip:%s", ip)
	allowed, err = s.repo.IncrementAndCheck(ctx, ipKey, s.cfg.RegisterLimitPerIP, s.cfg.RateLimitWindow)
	if err != nil {
		return err
	}
	if !allowed {
		utils.Logger.Warnf("Per-IP register rate limit exceeded (key: %s)", ipKey)
		return utils.ErrRateLimitExceeded
	}

	return nil
}

// CheckAISearchRateLimits protects the OpenAI-backed endpoint from abuse.
func (s *rateLimiterService) CheckAISearchRateLimits(ctx context.Context, ip string) error {
	globalKey := "ai_search:global"
	allowed, err := s.repo.IncrementAndCheck(ctx, globalKey, s.cfg.GlobalAISearchLimitHour, s.cfg.RateLimitWindow)
	if err != nil {
		return err
	}
	if !allowed {
		utils.Logger.Warnf("Global AI search rate limit exceeded (key: %s)", globalKey)
		return utils.ErrRateLimitExceeded
	}

	ipKey := fmt.Sprintf("ai_search:ip:%s", ip)
	allowed, err = s.repo.IncrementAndCheck(ctx, ipKey, s.cfg.AISearchLimitPerIP, s.cfg.RateLimitWindow)
	if err != nil {
		return err
	}
	if !allowed {
		utils.Logger.Warnf("Per-IP AI search rate limit exceeded (key: %s)", ipKey)
		return utils.ErrRateLimitExceeded
	}

	return nil
}
