// Package auth resolves caller identity and entitlement. Tokens are issued
// by the main application; this service only verifies them.
package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// userIDClaim is the token claim carrying the numeric user id.
const userIDClaim = "ur"

// Authenticator validates HS256 bearer tokens and extracts the user id.
type Authenticator struct {
	secret   []byte
	audience string
}

// NewAuthenticator builds an Authenticator. audience may be empty to skip
// the aud check.
func NewAuthenticator(secret, audience string) *Authenticator {
	return &Authenticator{secret: []byte(secret), audience: audience}
}

// ResolveUserID verifies the token's signature and expiry and returns the
// user id it was issued for.
func (a *Authenticator) ResolveUserID(_ context.Context, token string) (int32, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.audience != "" {
		opts = append(opts, jwt.WithAudience(a.audience))
	}
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...); err != nil {
		return 0, errors.Wrap(err, "verify token")
	}
	raw, ok := claims[userIDClaim]
	if !ok {
		return 0, errors.Errorf("token is missing the %q claim", userIDClaim)
	}
	id, ok := raw.(float64)
	if !ok || id <= 0 {
		return 0, errors.Errorf("token carries an invalid %q claim", userIDClaim)
	}
	return int32(id), nil
}
