// Package auth reads identity out of the bearer tokens issued by the travel
// backend. The backend is the verifier; this side only needs the claims to
// key per-user state, so tokens are parsed without signature checks.
package auth

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrBadToken     = errors.New("malformed bearer token")
)

type Claims struct {
	Sub    string `json:"sub"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// BearerToken extracts the raw token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrBadToken
	}
	return parts[1], nil
}

// UserID pulls the user identifier from a token, preferring the explicit
// userId claim over the registered subject.
func UserID(token string) (string, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", ErrBadToken
	}
	if claims.UserID != "" {
		return claims.UserID, nil
	}
	if claims.Sub != "" {
		return claims.Sub, nil
	}
	return "", ErrBadToken
}
