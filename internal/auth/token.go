// Package auth holds the small token-inspection helpers the domain layer
// needs. Token issuance and signature verification belong to the backend
// and the transport interceptors, not to this module.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the registered exp claim from a JWT without
// verifying the signature. Used to backfill a session's expiry when the
// payload omits expires_at but carries the access token.
func TokenExpiry(token string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("parse token: no exp claim")
	}
	return claims.ExpiresAt.Time.UTC(), nil
}
