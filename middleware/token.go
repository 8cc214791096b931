package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MintToken signs a bearer token for the given user id. Intended for dev
// tooling and tests; in production tokens come from the identity provider.
func MintToken(userID string, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
	})

	return token.SignedString(secret)
}
