package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string
	Env              string

	DBUrl           string
	DBEncryptionKey []byte

	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey

	OpenAIAPIKey     string
	GMapsAPIKey      string
	TwilioAccountSID string
	TwilioAuthToken  string
	SendgridAPIKey   string

	LDSDKKey                   string
	LDFlag_SeedDbWithTestData  bool
	LDFlag_AISearchEnabled     bool
	LDFlag_UseGMapsGeocoding   bool
	LDFlag_CORSHighSecurity    bool
	LDFlag_SendgridSandboxMode bool
	LDFlag_SendgridFromEmail   string
	LDFlag_TwilioFromPhone     string

	// Abuse controls for the auth endpoints.
	RateLimitWindow         time.Duration
	LoginLimitPerIP         int
	RegisterLimitPerIP      int
	GlobalAuthLimitPerHour  int
	AISearchLimitPerIP      int
	GlobalAISearchLimitHour int
}

const (
	LDConnectionTimeout = 5 * time.Second
	LDContextKind       = "service"
)

// AppName is overridden via ldflags at build time.
var AppName string

func LoadConfig() *Config {
	if AppName == "" {
		AppName = "listings-service"
	}
	utils.Logger.Info("Loading config for app: ", AppName)

	// .env is optional; real deployments inject everything through the
	// environment.
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found, relying on environment")
	}

	env := mustEnv("ENV")
	appUrl := mustEnv("APP_URL_FROM_ANYWHERE")
	appPort := mustEnv("APP_PORT")
	dbURL := mustEnv("DB_URL")

	utils.Logger.Debugf("App can be accessed at: %s", appUrl)

	//----------------------------------------------------------------------
	// Column-encryption key (AES-256).
	//----------------------------------------------------------------------
	dbEncryptionKeyBase64 := mustEnv("DB_ENCRYPTION_KEY_BASE64")
	decodedKey, err := base64.StdEncoding.DecodeString(dbEncryptionKeyBase64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to decode DB_ENCRYPTION_KEY_BASE64 from base64")
	}
	if len(decodedKey) != 32 {
		utils.Logger.Fatal("DBEncryptionKey must be 32 bytes for AES-256 encryption")
	}

	//----------------------------------------------------------------------
	// RSA keypair for JWT signing.
	//----------------------------------------------------------------------
	privateKeyPEM, err := base64.StdEncoding.DecodeString(mustEnv("RSA_PRIVATE_KEY_BASE64"))
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to decode base64 private key")
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}

	publicKeyPEM, err := base64.StdEncoding.DecodeString(mustEnv("RSA_PUBLIC_KEY_BASE64"))
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to decode base64 public key")
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	cfg := &Config{
		OrganizationName: utils.OrganizationName,
		AppName:          AppName,
		AppPort:          appPort,
		AppUrl:           appUrl,
		Env:              env,
		DBUrl:            dbURL,
		DBEncryptionKey:  decodedKey,
		RSAPrivateKey:    privateKey,
		RSAPublicKey:     publicKey,

		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		GMapsAPIKey:      os.Getenv("GMAPS_API_KEY"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		SendgridAPIKey:   os.Getenv("SENDGRID_API_KEY"),

		LDSDKKey: os.Getenv("LD_SDK_KEY"),

		RateLimitWindow:         time.Hour,
		LoginLimitPerIP:         20,
		RegisterLimitPerIP:      10,
		GlobalAuthLimitPerHour:  5000,
		AISearchLimitPerIP:      60,
		GlobalAISearchLimitHour: 10000,
	}

	loadFeatureFlags(cfg)

	if cfg.OpenAIAPIKey == "" {
		utils.Logger.Warn("OPENAI_API_KEY not set, AI search will fall back to keyword search")
	}
	if cfg.GMapsAPIKey == "" {
		utils.Logger.Warn("GMAPS_API_KEY not set, listings are stored with the coordinates the agent provides")
	}

	return cfg
}

// loadFeatureFlags fetches runtime flags from LaunchDarkly. Without an
// SDK key every flag keeps its default.
func loadFeatureFlags(cfg *Config) {
	cfg.LDFlag_SendgridFromEmail = "listings@inmoapp.example"

	if cfg.LDSDKKey == "" {
		utils.Logger.Warn("LD_SDK_KEY not set, using feature flag defaults")
		return
	}

	ldClient, err := ld.MakeClient(cfg.LDSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	context := ldcontext.NewWithKind(LDContextKind, cfg.AppName)

	boolFlag := func(name string, def bool) bool {
		v, err := ldClient.BoolVariation(name, context, def)
		if err != nil {
			ldClient.Close()
			utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", name)
		}
		utils.Logger.Debugf("%s flag: %t", name, v)
		return v
	}
	stringFlag := func(name, def string) string {
		v, err := ldClient.StringVariation(name, context, def)
		if err != nil {
			ldClient.Close()
			utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", name)
		}
		utils.Logger.Debugf("%s flag: %s", name, v)
		return v
	}

	cfg.LDFlag_SeedDbWithTestData = boolFlag("seed_db_with_test_data", false)
	cfg.LDFlag_AISearchEnabled = boolFlag("ai_search_enabled", true)
	cfg.LDFlag_UseGMapsGeocoding = boolFlag("use_gmaps_geocoding", false)
	cfg.LDFlag_CORSHighSecurity = boolFlag("cors_high_security", false)
	cfg.LDFlag_SendgridSandboxMode = boolFlag("sendgrid_sandbox_mode", true)
	cfg.LDFlag_SendgridFromEmail = stringFlag("sendgrid_from_email", cfg.LDFlag_SendgridFromEmail)
	cfg.LDFlag_TwilioFromPhone = stringFlag("twilio_from_phone", "")
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}
