package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanqui-art/inmo-app-sub002/internal/config"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// fakeRateLimitRepo counts attempts per key in memory.
type fakeRateLimitRepo struct {
	counts map[string]int
}

func newFakeRateLimitRepo() *fakeRateLimitRepo {
	return &fakeRateLimitRepo{counts: make(map[string]int)}
}

func (f *fakeRateLimitRepo) IncrementAndCheck(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	f.counts[key]++
	return f.counts[key] <= limit, nil
}

func (f *fakeRateLimitRepo) CleanupExpired(context.Context) error { return nil }

func testRateLimitConfig() *config.Config {
	return &config.Config{
		RateLimitWindow:         time.Hour,
		LoginLimitPerIP:         3,
		RegisterLimitPerIP:      2,
		GlobalAuthLimitPerHour:  100,
		AISearchLimitPerIP:      2,
		GlobalAISearchLimitHour: 100,
	}
}

func TestLoginRateLimitPerIP(t *testing.T) {
	repo := newFakeRateLimitRepo()
	svc := NewRateLimiterService(repo, testRateLimitConfig())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.CheckLoginRateLimits(ctx, "203.0.113.7"))
	}
	err := svc.CheckLoginRateLimits(ctx, "203.0.113.7")
	assert.ErrorIs(t, err, utils.ErrRateLimitExceeded)

	// A different IP has its own budget.
	assert.NoError(t, svc.CheckLoginRateLimits(ctx, "203.0.113.8"))
}

func TestGlobalAuthLimitSharedAcrossEndpoints(t *testing.T) {
	repo := newFakeRateLimitRepo()
	cfg := testRateLimitConfig()
	cfg.GlobalAuthLimitPerHour = 2
	svc := NewRateLimiterService(repo, cfg)
	ctx := context.Background()

	require.NoError(t, svc.CheckLoginRateLimits(ctx, "198.51.100.1"))
	require.NoError(t, svc.CheckRegisterRateLimits(ctx, "198.51.100.2"))

	// Third auth attempt of any kind trips the shared global counter.
	err := svc.CheckLoginRateLimits(ctx, "198.51.100.3")
	assert.ErrorIs(t, err, utils.ErrRateLimitExceeded)
}

func TestAISearchRateLimitPerIP(t *testing.T) {
	repo := newFakeRateLimitRepo()
	svc := NewRateLimiterService(repo, testRateLimitConfig())
	ctx := context.Background()

	require.NoError(t, svc.CheckAISearchRateLimits(ctx, "192.0.2.10"))
	require.NoError(t, svc.CheckAISearchRateLimits(ctx, "192.0.2.10"))
	err := svc.CheckAISearchRateLimits(ctx, "192.0.2.10")
	assert.ErrorIs(t, err, utils.ErrRateLimitExceeded)
}
