package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/jackc/pgconn"

	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// One retry on transient network errors (EOF, closed connection) with a
// small back-off.
const cleanupRetryDelay = 3 * time.Second

// CleanupService hosts the periodic maintenance jobs: expired refresh
// tokens, stale rate-limit counters and passed appointments.
type CleanupService interface {
	CleanupExpiredTokens(ctx context.Context) error
	CleanupRateLimits(ctx context.Context) error
	SweepPastAppointments(ctx context.Context) error
}

type cleanupService struct {
	tokenRepo     repositories.TokenRepository
	rateLimitRepo repositories.RateLimitRepository
	apptRepo      repositories.AppointmentRepository
}

func NewCleanupService(
	tokenRepo repositories.TokenRepository,
	rateLimitRepo repositories.RateLimitRepository,
	apptRepo repositories.AppointmentRepository,
) CleanupService {
	return &cleanupService{
		tokenRepo:     tokenRepo,
		rateLimitRepo: rateLimitRepo,
		apptRepo:      apptRepo,
	}
}

// runWithRetry executes op(ctx) and, if it returns a transient network
// error (EOF, pgconn safe-to-retry, or the common closed-connection
// message), waits a moment then retries once.
func runWithRetry(ctx context.Context, op func(context.Context) error) error {
	if err := op(ctx); err != nil {
		if errors.Is(err, io.EOF) || pgconn.SafeToRetry(err) ||
			strings.Contains(err.Error(), "connection was closed") {
			utils.Logger.WithError(err).Warn("cleanup hit transient DB error; retrying once")
			time.Sleep(cleanupRetryDelay)
			return op(ctx)
		}
		return err
	}
	return nil
}

func (s *cleanupService) CleanupExpiredTokens(ctx context.Context) error {
	err := runWithRetry(ctx, func(c context.Context) error {
		n, err := s.tokenRepo.CleanupExpired(c)
		if err != nil {
			return err
		}
		if n > 0 {
			utils.Logger.Infof("Removed %d expired refresh tokens", n)
		}
		return nil
	})
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to cleanup expired refresh_tokens")
	}
	return err
}

func (s *cleanupService) CleanupRateLimits(ctx context.Context) error {
	err := runWithRetry(ctx, s.rateLimitRepo.CleanupExpired)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to cleanup expired rate_limit_attempts")
	}
	return err
}

// SweepPastAppointments flips live appointments whose slot has passed
// to COMPLETED so they stop blocking the grid.
func (s *cleanupService) SweepPastAppointments(ctx context.Context) error {
	err := runWithRetry(ctx, func(c context.Context) error {
		n, err := s.apptRepo.CompletePast(c, time.Now().UTC())
		if err != nil {
			return err
		}
		if n > 0 {
			utils.Logger.Infof("Marked %d past appointments as completed", n)
		}
		return nil
	})
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to sweep past appointments")
	}
	return err
}
