package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/juanqui-art/inmo-app-sub002/internal/config"
	"github.com/juanqui-art/inmo-app-sub002/internal/middleware"
	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// ---------------------------------------------------------------------
// JWTService interface
// ---------------------------------------------------------------------

type JWTService interface {
	GenerateAccessToken(
		subjectID uuid.UUID,
		role models.UserRoleType,
		clientIdentifier utils.ClientIdentifier,
		tokenExpiry time.Duration,
	) (string, error)

	// GenerateRefreshToken stores only the SHA-256 hash and returns the
	// raw token for the client.
	GenerateRefreshToken(
		ctx context.Context,
		subjectID uuid.UUID,
		clientIdentifier utils.ClientIdentifier,
		refreshExpiry time.Duration,
	) (string, error)

	// RefreshToken rotates the pair: the old refresh token is revoked and
	// linked to its replacement.
	RefreshToken(
		ctx context.Context,
		refreshTokenString string,
		role models.UserRoleType,
		clientIdentifier utils.ClientIdentifier,
		tokenExpiry time.Duration,
		refreshExpiry time.Duration,
	) (string, string, error)

	Logout(ctx context.Context, refreshTokenString string) error

	// SubjectOf resolves the user behind a refresh token without rotating it.
	SubjectOf(ctx context.Context, refreshTokenString string) (uuid.UUID, error)
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type jwtService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	tokenRepo  repositories.TokenRepository
}

func NewJWTService(cfg *config.Config, tokenRepo repositories.TokenRepository) JWTService {
	return &jwtService{
		privateKey: cfg.RSAPrivateKey,
		publicKey:  cfg.RSAPublicKey,
		tokenRepo:  tokenRepo,
	}
}

func (j *jwtService) GenerateAccessToken(
	subjectID uuid.UUID,
	role models.UserRoleType,
	clientIdentifier utils.ClientIdentifier,
	tokenExpiry time.Duration,
) (string, error) {

	tokenID := uuid.NewString()
	claims := jwt.MapClaims{
		"iss":  middleware.TokenIssuer,
		"sub":  subjectID.String(),
		"role": string(role),
		"exp":  time.Now().Add(tokenExpiry).Unix(),
		"iat":  time.Now().Unix(),
		"jti":  tokenID,
	}

	// IP or device
	switch clientIdentifier.Type {
	case utils.ClientIDTypeIP:
		claims["ip"] = clientIdentifier.Value
	case utils.ClientIDTypeDeviceID:
		claims["device_id"] = clientIdentifier.Value
	}

	return j.signClaims(claims)
}

func (j *jwtService) GenerateRefreshToken(
	ctx context.Context,
	subjectID uuid.UUID,
	clientIdentifier utils.ClientIdentifier,
	refreshExpiry time.Duration,
) (string, error) {

	if j.tokenRepo == nil {
		return "", errors.New("jwtService has nil tokenRepo")
	}

	rawToken := generateSecureToken(64)

	rt := &models.RefreshToken{
		ID:            uuid.New(),
		UserID:        subjectID,
		TokenHash:     repositories.HashToken(rawToken),
		ClientIDType:  clientIdentifier.Type.String(),
		ClientIDValue: clientIdentifier.Value,
		ExpiresAt:     time.Now().Add(refreshExpiry),
		CreatedAt:     time.Now(),
		Revoked:       false,
	}

	if err := j.tokenRepo.Create(ctx, rt); err != nil {
		return "", err
	}
	return rawToken, nil
}

func (j *jwtService) RefreshToken(
	ctx context.Context,
	refreshTokenString string,
	role models.UserRoleType,
	clientIdentifier utils.ClientIdentifier,
	tokenExpiry time.Duration,
	refreshExpiry time.Duration,
) (string, string, error) {

	if j.tokenRepo == nil {
		return "", "", errors.New("jwtService has nil tokenRepo")
	}

	oldToken, err := j.tokenRepo.GetByRawToken(ctx, refreshTokenString)
	if err != nil || oldToken == nil || oldToken.Revoked {
		utils.Logger.WithError(err).Error("invalid or missing refresh token in jwtService.RefreshToken")
		return "", "", errors.New("invalid refresh token")
	}

	if time.Now().After(oldToken.ExpiresAt) {
		utils.Logger.Error("refresh token expired in jwtService.RefreshToken")
		return "", "", errors.New("refresh token expired")
	}

	// check IP/device_id mismatch
	if oldToken.ClientIDValue != "" &&
		(oldToken.ClientIDType != clientIdentifier.Type.String() ||
			oldToken.ClientIDValue != clientIdentifier.Value) {
		utils.Logger.Error("client identifier mismatch in jwtService.RefreshToken")
		return "", "", errors.New("client identifier mismatch")
	}

	newAccess, aErr := j.GenerateAccessToken(oldToken.UserID, role, clientIdentifier, tokenExpiry)
	if aErr != nil {
		return "", "", aErr
	}

	newRaw, rErr := j.GenerateRefreshToken(ctx, oldToken.UserID, clientIdentifier, refreshExpiry)
	if rErr != nil {
		return "", "", rErr
	}

	newToken, gErr := j.tokenRepo.GetByRawToken(ctx, newRaw)
	if gErr != nil || newToken == nil {
		return "", "", errors.New("failed to load rotated refresh token")
	}
	if err := j.tokenRepo.Revoke(ctx, oldToken.ID, &newToken.ID); err != nil {
		utils.Logger.WithError(err).Error("failed to revoke old refresh token in jwtService.RefreshToken")
		return "", "", errors.New("failed to revoke old token")
	}

	return newAccess, newRaw, nil
}

func (j *jwtService) Logout(ctx context.Context, refreshTokenString string) error {
	if j.tokenRepo == nil {
		return errors.New("jwtService has nil tokenRepo")
	}

	oldToken, err := j.tokenRepo.GetByRawToken(ctx, refreshTokenString)
	if err != nil {
		utils.Logger.WithError(err).Error("logout fetch refresh token error in jwtService")
		return errors.New("logout server error")
	}
	if oldToken == nil {
		// already not found => no-op
		return nil
	}

	if err := j.tokenRepo.Revoke(ctx, oldToken.ID, nil); err != nil {
		utils.Logger.WithError(err).Error("failed to revoke token in jwtService.Logout")
		return errors.New("logout server error")
	}
	return nil
}

func (j *jwtService) SubjectOf(ctx context.Context, refreshTokenString string) (uuid.UUID, error) {
	t, err := j.tokenRepo.GetByRawToken(ctx, refreshTokenString)
	if err != nil {
		return uuid.Nil, err
	}
	if t == nil || t.Revoked || time.Now().After(t.ExpiresAt) {
		return uuid.Nil, errors.New("invalid refresh token")
	}
	return t.UserID, nil
}

// ---------------------------------------------------------------------
// signClaims – helper for RSA signing
// ---------------------------------------------------------------------

func (j *jwtService) signClaims(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(j.privateKey)
}

// ---------------------------------------------------------------------
// Secure random generator
// ---------------------------------------------------------------------

func generateSecureToken(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[secureRandomInt(len(charset))]
	}
	return string(b)
}

func secureRandomInt(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}
	return int(n.Int64())
}
