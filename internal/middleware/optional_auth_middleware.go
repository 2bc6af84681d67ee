package middleware

import (
	"crypto/rsa"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// OptionalAuthMiddleware is identical to AuthMiddleware
// except that it lets the request through if *no* token is present.
func OptionalAuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			platform := utils.GetClientPlatform(r)
			clientID := utils.GetClientIdentifier(r, platform)

			tokenStr, _ := extractAccessToken(r, platform) // ignore error here
			if tokenStr == "" {
				next.ServeHTTP(w, r) // unauthenticated, allowed
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

			if ctx, ok := contextWithClaims(r.Context(), tok); ok {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
