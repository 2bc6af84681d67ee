package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanqui-art/inmo-app-sub002/internal/config"
	"github.com/juanqui-art/inmo-app-sub002/internal/middleware"
	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// fakeTokenRepo stores refresh tokens in a map keyed by hash.
type fakeTokenRepo struct {
	byHash map[string]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byHash: make(map[string]*models.RefreshToken)}
}

func (f *fakeTokenRepo) Create(_ context.Context, t *models.RefreshToken) error {
	f.byHash[t.TokenHash] = t
	return nil
}

func (f *fakeTokenRepo) GetByRawToken(_ context.Context, raw string) (*models.RefreshToken, error) {
	return f.byHash[repositories.HashToken(raw)], nil
}

func (f *fakeTokenRepo) Revoke(_ context.Context, id uuid.UUID, replacedBy *uuid.UUID) error {
	for _, t := range f.byHash {
		if t.ID == id {
			t.Revoked = true
			t.ReplacedByTokenID = replacedBy
		}
	}
	return nil
}

func (f *fakeTokenRepo) RevokeAllByUserID(_ context.Context, userID uuid.UUID) error {
	for _, t := range f.byHash {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (f *fakeTokenRepo) CleanupExpired(context.Context) (int64, error) { return 0, nil }

func newTestJWTService(t *testing.T, repo repositories.TokenRepository) JWTService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return NewJWTService(&config.Config{
		RSAPrivateKey: key,
		RSAPublicKey:  &key.PublicKey,
	}, repo)
}

func TestAccessTokenRoundtrip(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	svc := NewJWTService(&config.Config{RSAPrivateKey: key, RSAPublicKey: &key.PublicKey}, nil)

	userID := uuid.New()
	webClient := utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "203.0.113.7"}

	signed, err := svc.GenerateAccessToken(userID, models.UserRoleBuyer, webClient, 15*time.Minute)
	require.NoError(t, err)

	tok, err := middleware.ValidateToken(signed, webClient, &key.PublicKey)
	require.NoError(t, err)
	assert.True(t, tok.Valid)
}

func TestRefreshTokenRotation(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTestJWTService(t, repo)
	ctx := context.Background()

	userID := uuid.New()
	client := utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "203.0.113.7"}

	raw, err := svc.GenerateRefreshToken(ctx, userID, client, time.Hour)
	require.NoError(t, err)
	require.Len(t, raw, 64)

	// Only the hash is persisted.
	stored := repo.byHash[repositories.HashToken(raw)]
	require.NotNil(t, stored)
	assert.NotEqual(t, raw, stored.TokenHash)

	access, newRaw, err := svc.RefreshToken(ctx, raw, models.UserRoleBuyer, client, 15*time.Minute, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEqual(t, raw, newRaw)

	// The old token is revoked and linked to its replacement.
	assert.True(t, stored.Revoked)
	require.NotNil(t, stored.ReplacedByTokenID)
	newStored := repo.byHash[repositories.HashToken(newRaw)]
	require.NotNil(t, newStored)
	assert.Equal(t, newStored.ID, *stored.ReplacedByTokenID)

	// A revoked token cannot be replayed.
	_, _, err = svc.RefreshToken(ctx, raw, models.UserRoleBuyer, client, 15*time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestRefreshTokenRejectsClientMismatch(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTestJWTService(t, repo)
	ctx := context.Background()

	client := utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "203.0.113.7"}
	raw, err := svc.GenerateRefreshToken(ctx, uuid.New(), client, time.Hour)
	require.NoError(t, err)

	other := utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "198.51.100.9"}
	_, _, err = svc.RefreshToken(ctx, raw, models.UserRoleBuyer, other, 15*time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTestJWTService(t, repo)
	ctx := context.Background()

	raw, err := svc.GenerateRefreshToken(ctx, uuid.New(),
		utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "203.0.113.7"}, time.Hour)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, raw))
	assert.True(t, repo.byHash[repositories.HashToken(raw)].Revoked)

	// Logging out an unknown token is a no-op.
	assert.NoError(t, svc.Logout(ctx, "never-issued"))
}

func TestSubjectOf(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTestJWTService(t, repo)
	ctx := context.Background()

	userID := uuid.New()
	raw, err := svc.GenerateRefreshToken(ctx, userID,
		utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "203.0.113.7"}, time.Hour)
	require.NoError(t, err)

	got, err := svc.SubjectOf(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = svc.SubjectOf(ctx, "bogus")
	assert.Error(t, err)
}
