package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetClientPlatformDefaultsToWeb(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, PlatformWeb, GetClientPlatform(r))

	r.Header.Set("X-Platform", "toaster")
	assert.Equal(t, PlatformWeb, GetClientPlatform(r))
}

func TestGetClientPlatformParsesHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	r.Header.Set("X-Platform", "android")
	assert.Equal(t, PlatformAndroid, GetClientPlatform(r))

	r.Header.Set("X-Platform", "iOS")
	assert.Equal(t, PlatformIOS, GetClientPlatform(r))

	r.Header.Set("X-Platform", "WEB")
	assert.Equal(t, PlatformWeb, GetClientPlatform(r))
}

func TestGetClientIdentifierWebUsesIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7:51234"

	id := GetClientIdentifier(r, PlatformWeb)
	assert.Equal(t, ClientIDTypeIP, id.Type)
	assert.Equal(t, "203.0.113.7", id.Value)
}

func TestGetClientIdentifierPrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:443"
	r.Header.Set("X-Forwarded-For", "garbage, 198.51.100.9")

	id := GetClientIdentifier(r, PlatformWeb)
	assert.Equal(t, "198.51.100.9", id.Value)
}

func TestGetClientIdentifierMobileUsesDeviceID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Device-ID", "device-abc-123")

	id := GetClientIdentifier(r, PlatformAndroid)
	assert.Equal(t, ClientIDTypeDeviceID, id.Type)
	assert.Equal(t, "device-abc-123", id.Value)
}
