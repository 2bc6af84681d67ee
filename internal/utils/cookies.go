// Hardened helper for issuing / clearing JWT cookies plus the full
// security-header block applied to token-bearing responses.

package utils

import (
	"fmt"
	"net/http"
	"time"
)

// Cookie names follow the __Host- prefix rule (no Domain attribute allowed)
const (
	AccessTokenCookieName  = "__Host-accessToken"
	RefreshTokenCookieName = "auth_refreshToken"
)

// SetAuthCookies writes two secure cookies and every response
// header recommended for token-bearing responses.
func SetAuthCookies(
	w http.ResponseWriter,
	accessToken string,
	refreshToken string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
	refreshPath string,
	sameSiteHighSecurity bool,
) {
	if accessToken == "" || refreshToken == "" {
		return
	}

	accessSameSitePolicy := "Lax"
	refreshSameSitePolicy := "Strict"
	if !sameSiteHighSecurity {
		accessSameSitePolicy = "None"
		refreshSameSitePolicy = "None"
	}
	partitioned := !sameSiteHighSecurity
	Logger.Debugf("[cookies] SetAuthCookies: accessSameSite=%s, refreshSameSite=%s, partitioned=%t, refreshPath=%s",
		accessSameSitePolicy, refreshSameSitePolicy, partitioned, refreshPath)

	writeCookie(
		w,
		AccessTokenCookieName,
		accessToken,
		"/", // Access token accompanies every API call
		int(accessTTL.Seconds()),
		accessSameSitePolicy,
		partitioned,
	)

	writeCookie(
		w,
		RefreshTokenCookieName,
		refreshToken,
		refreshPath, // Only the refresh endpoint ever receives it
		int(refreshTTL.Seconds()),
		refreshSameSitePolicy,
		partitioned,
	)

	AddSecurityHeaders(w)
}

// ClearAuthCookies deletes both cookies (web logout).
func ClearAuthCookies(w http.ResponseWriter, refreshPath string, sameSiteHighSecurity bool) {
	expired := time.Now().Add(-1 * time.Hour).UTC().Format(http.TimeFormat)

	accessSameSitePolicy := "Lax"
	refreshSameSitePolicy := "Strict"
	if !sameSiteHighSecurity {
		accessSameSitePolicy = "None"
		refreshSameSitePolicy = "None"
	}
	partitioned := !sameSiteHighSecurity

	w.Header().Add("Set-Cookie",
		fmt.Sprintf("%s=; Path=/; Expires=%s; Max-Age=0; SameSite=%s; Secure; HttpOnly; Priority=High%s",
			AccessTokenCookieName,
			expired,
			accessSameSitePolicy,
			partitionAttr(partitioned),
		))

	w.Header().Add("Set-Cookie",
		fmt.Sprintf("%s=; Path=%s; Expires=%s; Max-Age=0; SameSite=%s; Secure; HttpOnly; Priority=High%s",
			RefreshTokenCookieName,
			refreshPath,
			expired,
			refreshSameSitePolicy,
			partitionAttr(partitioned),
		))

	AddSecurityHeaders(w)
}

func writeCookie(
	w http.ResponseWriter,
	name, value, path string,
	maxAge int,
	sameSitePolicy string,
	partitioned bool,
) {
	expires := time.Now().
		Add(time.Duration(maxAge) * time.Second).
		UTC().
		Format(http.TimeFormat)

	line := fmt.Sprintf("%s=%s; Path=%s; Max-Age=%d; Expires=%s; SameSite=%s; Secure; HttpOnly; Priority=High%s",
		name, value, path, maxAge, expires, sameSitePolicy, partitionAttr(partitioned))

	Logger.Debugf("[cookies] writing cookie %s path=%s SameSite=%s Partitioned=%t", name, path, sameSitePolicy, partitioned)
	w.Header().Add("Set-Cookie", line)
}

func partitionAttr(on bool) string {
	if on {
		return "; Partitioned"
	}
	return ""
}

// AddSecurityHeaders applies the transport, CSP, COOP/COEP and
// privacy headers expected on auth responses.
func AddSecurityHeaders(w http.ResponseWriter) {
	// transport / caching
	w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")

	// content isolation & click-jacking
	w.Header().Set("Content-Security-Policy", "default-src 'self'; object-src 'none'; base-uri 'none'; frame-ancestors 'none'")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY") // legacy fallback

	// Spectre / XS-leak mitigations
	w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
	w.Header().Set("Cross-Origin-Embedder-Policy", "require-corp")
	w.Header().Set("Cross-Origin-Resource-Policy", "same-site")

	// referrer & feature scoping
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("Permissions-Policy", "geolocation=(), camera=(), microphone=(), interest-cohort=()")
}
