package utils

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAuthCookiesWritesBothCookies(t *testing.T) {
	w := httptest.NewRecorder()
	SetAuthCookies(w, "access-token", "refresh-token", 15*time.Minute, 30*24*time.Hour, "/api/v1/auth/refresh", true)

	cookies := w.Header().Values("Set-Cookie")
	require.Len(t, cookies, 2)

	access := cookies[0]
	assert.Contains(t, access, AccessTokenCookieName+"=access-token")
	assert.Contains(t, access, "Path=/;")
	assert.Contains(t, access, "SameSite=Lax")
	assert.Contains(t, access, "Secure")
	assert.Contains(t, access, "HttpOnly")
	assert.NotContains(t, access, "Partitioned")

	refresh := cookies[1]
	assert.Contains(t, refresh, RefreshTokenCookieName+"=refresh-token")
	assert.Contains(t, refresh, "Path=/api/v1/auth/refresh;")
	assert.Contains(t, refresh, "SameSite=Strict")
}

func TestSetAuthCookiesLowSecurityUsesSameSiteNone(t *testing.T) {
	w := httptest.NewRecorder()
	SetAuthCookies(w, "a", "r", time.Minute, time.Hour, "/api/v1/auth/refresh", false)

	for _, cookie := range w.Header().Values("Set-Cookie") {
		assert.Contains(t, cookie, "SameSite=None")
		assert.Contains(t, cookie, "Partitioned")
	}
}

func TestSetAuthCookiesSkipsEmptyTokens(t *testing.T) {
	w := httptest.NewRecorder()
	SetAuthCookies(w, "", "", time.Minute, time.Hour, "/r", true)
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}

func TestClearAuthCookiesExpiresBoth(t *testing.T) {
	w := httptest.NewRecorder()
	ClearAuthCookies(w, "/api/v1/auth/refresh", true)

	cookies := w.Header().Values("Set-Cookie")
	require.Len(t, cookies, 2)
	for _, cookie := range cookies {
		assert.Contains(t, cookie, "Max-Age=0")
	}
	assert.True(t, strings.HasPrefix(cookies[0], AccessTokenCookieName+"="))
	assert.True(t, strings.HasPrefix(cookies[1], RefreshTokenCookieName+"="))
}

func TestAddSecurityHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	AddSecurityHeaders(w)

	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}
