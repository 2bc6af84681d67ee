package testhelpers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// CreateWebJWT signs an access token bound to an IP, the way web
// clients receive them.
func (h *TestHelper) CreateWebJWT(userID uuid.UUID, role models.UserRoleType, ipAddress string) string {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"iss":  utils.OrganizationName,
		"sub":  userID.String(),
		"role": string(role),
		"iat":  now,
		"exp":  now + 15*60,
		"jti":  uuid.NewString(),
		"ip":   ipAddress,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(h.PrivateKey)
	require.NoError(h.T, err, "Failed to sign test JWT (web style)")
	return signed
}

// CreateMobileJWT signs an access token bound to a device ID.
func (h *TestHelper) CreateMobileJWT(userID uuid.UUID, role models.UserRoleType, deviceID string) string {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"iss":       utils.OrganizationName,
		"sub":       userID.String(),
		"role":      string(role),
		"iat":       now,
		"exp":       now + 15*60,
		"jti":       uuid.NewString(),
		"device_id": deviceID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(h.PrivateKey)
	require.NoError(h.T, err, "Failed to sign test JWT (mobile style)")
	return signed
}

// GenerateTOTPCode generates a valid TOTP code for a given secret.
func (h *TestHelper) GenerateTOTPCode(secret string) string {
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(h.T, err)
	return code
}
