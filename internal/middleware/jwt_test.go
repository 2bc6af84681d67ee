package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

func testKeyPair(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signTestToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func baseClaims() jwt.MapClaims {
	now := time.Now().Unix()
	return jwt.MapClaims{
		"iss":  TokenIssuer,
		"sub":  uuid.NewString(),
		"role": "BUYER",
		"iat":  now,
		"exp":  now + 900,
		"jti":  uuid.NewString(),
	}
}

func TestValidateTokenWebRoundtrip(t *testing.T) {
	key := testKeyPair(t)
	claims := baseClaims()
	claims["ip"] = "203.0.113.7"
	signed := signTestToken(t, key, claims)

	webClient := utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "203.0.113.7"}
	tok, err := ValidateToken(signed, webClient, &key.PublicKey)
	require.NoError(t, err)
	assert.True(t, tok.Valid)

	parsed, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, claims["sub"], parsed["sub"])
	assert.Equal(t, "BUYER", parsed["role"])
}

func TestValidateTokenMobileRoundtrip(t *testing.T) {
	key := testKeyPair(t)
	claims := baseClaims()
	claims["device_id"] = "device-abc-123"
	signed := signTestToken(t, key, claims)

	mobile := utils.ClientIdentifier{Type: utils.ClientIDTypeDeviceID, Value: "device-abc-123"}
	_, err := ValidateToken(signed, mobile, &key.PublicKey)
	assert.NoError(t, err)
}

func TestValidateTokenRejectsIPMismatch(t *testing.T) {
	key := testKeyPair(t)
	claims := baseClaims()
	claims["ip"] = "203.0.113.7"
	signed := signTestToken(t, key, claims)

	other := utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "198.51.100.9"}
	_, err := ValidateToken(signed, other, &key.PublicKey)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongIssuer(t *testing.T) {
	key := testKeyPair(t)
	claims := baseClaims()
	claims["iss"] = "SomeoneElse"
	claims["ip"] = "203.0.113.7"
	signed := signTestToken(t, key, claims)

	webClient := utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "203.0.113.7"}
	_, err := ValidateToken(signed, webClient, &key.PublicKey)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	key := testKeyPair(t)
	claims := baseClaims()
	claims["iat"] = time.Now().Add(-time.Hour).Unix()
	claims["exp"] = time.Now().Add(-30 * time.Minute).Unix()
	claims["ip"] = "203.0.113.7"
	signed := signTestToken(t, key, claims)

	webClient := utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "203.0.113.7"}
	_, err := ValidateToken(signed, webClient, &key.PublicKey)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	signingKey := testKeyPair(t)
	otherKey := testKeyPair(t)

	claims := baseClaims()
	claims["ip"] = "203.0.113.7"
	signed := signTestToken(t, signingKey, claims)

	webClient := utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "203.0.113.7"}
	_, err := ValidateToken(signed, webClient, &otherKey.PublicKey)
	assert.Error(t, err)
}

func TestValidateTokenRejectsMissingBindingClaim(t *testing.T) {
	key := testKeyPair(t)
	signed := signTestToken(t, key, baseClaims())

	webClient := utils.ClientIdentifier{Type: utils.ClientIDTypeIP, Value: "203.0.113.7"}
	_, err := ValidateToken(signed, webClient, &key.PublicKey)
	assert.Error(t, err)
}
