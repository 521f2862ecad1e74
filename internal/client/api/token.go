package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can read out of an access token locally.
// The backend issues JWTs, so expiry and subject are visible without a
// round trip; the gateway itself still treats tokens as opaque strings.
type TokenInfo struct {
	UserID    int64
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim has passed. Tokens without
// an exp claim are treated as unexpired.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// InspectAccessToken decodes the claims of an access token without
// verifying its signature (the server is the verifier; this is display
// metadata only).
func InspectAccessToken(token string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	info := &TokenInfo{}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if v, ok := claims["user_id"].(float64); ok {
		info.UserID = int64(v)
	}
	return info, nil
}
