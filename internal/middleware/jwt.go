package middleware

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// TokenIssuer identifies the service that issues all access/refresh tokens.
const TokenIssuer = utils.OrganizationName

// ValidateToken checks the token's signature, standard claims, and the
// IP/Device-ID binding. Web clients carry an "ip" claim, mobile clients a
// "device_id" claim; either must match the caller's current identifier.
//
// Any deviation returns a descriptive error.
func ValidateToken(
	tokenString string,
	clientIdentifier utils.ClientIdentifier,
	publicKey *rsa.PublicKey,
) (*jwt.Token, error) {

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return publicKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("missing expiration claim")
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, jwt.ErrTokenExpired
	}

	iss, ok := claims["iss"].(string)
	if !ok {
		return nil, errors.New("missing issuer claim")
	}
	if iss != TokenIssuer {
		return nil, errors.New("invalid token issuer")
	}

	switch clientIdentifier.Type {
	case utils.ClientIDTypeIP:
		ipClaim, hasIP := claims["ip"].(string)
		if !hasIP {
			return nil, errors.New("missing IP claim in token (web)")
		}
		if ipClaim != clientIdentifier.Value {
			return nil, errors.New("IP address mismatch")
		}
	case utils.ClientIDTypeDeviceID:
		devIDClaim, hasDev := claims["device_id"].(string)
		if !hasDev {
			return nil, errors.New("missing device_id claim in token (mobile)")
		}
		if devIDClaim != clientIdentifier.Value {
			return nil, errors.New("device_id mismatch")
		}
	default:
		return nil, errors.New("unsupported platform in ValidateToken")
	}

	return token, nil
}
