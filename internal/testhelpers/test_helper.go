package testhelpers

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"log"
	"os"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// TestHelper encapsulates everything the integration tests need: a DB
// pool, the JWT signing key and ready-made repositories. Designed to be
// built once from a TestMain function.
type TestHelper struct {
	T               *testing.T
	Ctx             context.Context
	BaseURL         string
	DB              *pgxpool.Pool
	PrivateKey      *rsa.PrivateKey
	DBEncryptionKey []byte

	// Repositories
	UserRepo      repositories.UserRepository
	PropertyRepo  repositories.PropertyRepository
	ImageRepo     repositories.PropertyImageRepository
	FavoriteRepo  repositories.FavoriteRepository
	ApptRepo      repositories.AppointmentRepository
	TokenRepo     repositories.TokenRepository
	RateLimitRepo repositories.RateLimitRepository
}

func NewTestHelper(t *testing.T) *TestHelper {
	baseURL := os.Getenv("APP_URL_FROM_ANYWHERE")
	if baseURL == "" {
		log.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Fatal("DB_URL env var is missing")
	}

	// CI runs connect as a per-run role so parallel pipelines stay
	// isolated from each other.
	if runnerID, runNumber := os.Getenv("RUNNER_ID"), os.Getenv("RUN_NUMBER"); runnerID != "" && runNumber != "" {
		isolated, err := utils.WithIsolatedRole(dbURL, runnerID, runNumber)
		if err != nil {
			log.Fatalf("Failed to build isolated DB URL: %v", err)
		}
		dbURL = isolated
	}

	ctx := context.Background()
	pool, err := pgxpool.Connect(ctx, dbURL)
	require.NoError(t, err, "Failed to connect to test database")

	privateKeyPEM, err := base64.StdEncoding.DecodeString(os.Getenv("RSA_PRIVATE_KEY_BASE64"))
	require.NoError(t, err, "Failed to decode RSA_PRIVATE_KEY_BASE64")
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	require.NoError(t, err, "Failed to parse RSA private key")

	encKey, err := base64.StdEncoding.DecodeString(os.Getenv("DB_ENCRYPTION_KEY_BASE64"))
	require.NoError(t, err, "Failed to decode DB_ENCRYPTION_KEY_BASE64")
	require.Len(t, encKey, 32, "DB encryption key must be 32 bytes")

	h := &TestHelper{
		T:               t,
		Ctx:             ctx,
		BaseURL:         baseURL,
		DB:              pool,
		PrivateKey:      privateKey,
		DBEncryptionKey: encKey,
	}

	h.UserRepo = repositories.NewUserRepository(pool, encKey)
	h.PropertyRepo = repositories.NewPropertyRepository(pool)
	h.ImageRepo = repositories.NewPropertyImageRepository(pool)
	h.FavoriteRepo = repositories.NewFavoriteRepository(pool)
	h.ApptRepo = repositories.NewAppointmentRepository(pool)
	h.TokenRepo = repositories.NewTokenRepository(pool)
	h.RateLimitRepo = repositories.NewRateLimitRepository(pool)

	return h
}

func (h *TestHelper) Close() {
	if h.DB != nil {
		h.DB.Close()
	}
}
