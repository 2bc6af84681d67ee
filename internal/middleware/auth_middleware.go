package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

type contextKey string

const (
	ContextKeyUserID   = contextKey("userID")
	ContextKeyUserRole = contextKey("userRole")
)

// AuthMiddleware protects authenticated endpoints. Missing or invalid
// tokens get a 401.
//   - If platform == web  => the JWT is read from the access-token cookie
//   - If platform != web  => the JWT is read from Authorization: Bearer ...
func AuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			platform := utils.GetClientPlatform(r)
			clientID := utils.GetClientIdentifier(r, platform)

			tokenStr, err := extractAccessToken(r, platform)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil,
				)
				return
			}

			tok, vErr := ValidateToken(tokenStr, clientID, pub)
			if vErr != nil || !tok.Valid {
				if errors.Is(vErr, jwt.ErrTokenExpired) {
					utils.RespondErrorWithCode(
						w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Token expired", nil, vErr,
					)
					return
				}
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", nil, vErr,
				)
				return
			}

			ctx, ok := contextWithClaims(r.Context(), tok)
			if !ok {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing subject", nil,
				)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated subject, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextKeyUserID).(string)
	return id, ok
}

// UserRoleFromContext returns the role claim carried by the token.
func UserRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(ContextKeyUserRole).(string)
	return role, ok
}

func contextWithClaims(ctx context.Context, tok *jwt.Token) (context.Context, bool) {
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return ctx, false
	}
	ctx = context.WithValue(ctx, ContextKeyUserID, sub)
	if role, ok := claims["role"].(string); ok {
		ctx = context.WithValue(ctx, ContextKeyUserRole, role)
	}
	return ctx, true
}

// helper: read the token from cookie if web, or from Bearer if android/ios
func extractAccessToken(r *http.Request, p utils.PlatformType) (string, error) {
	if p == utils.PlatformWeb {
		c, err := r.Cookie(utils.AccessTokenCookieName)
		if err != nil || c.Value == "" {
			return "", errors.New("missing access_token cookie")
		}
		return c.Value, nil
	}

	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errors.New("missing Authorization header")
	}
	return strings.TrimPrefix(h, "Bearer "), nil
}
