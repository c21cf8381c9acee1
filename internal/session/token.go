package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/felixgeelhaar/merchdesk/internal/errors"
)

// DefaultSafetyBuffer is how close to expiry a token is treated as
// needing preemptive renewal.
const DefaultSafetyBuffer = 3 * time.Minute

// TokenStatus classifies a bearer token's usability.
type TokenStatus int

const (
	// TokenInvalid means the token is absent or cannot be decoded.
	TokenInvalid TokenStatus = iota
	// TokenExpired means the token's expiry is in the past.
	TokenExpired
	// TokenExpiringSoon means the token is usable but inside the safety buffer.
	TokenExpiringSoon
	// TokenValid means the token is usable beyond the safety buffer.
	TokenValid
)

// String returns the string representation of the status
func (s TokenStatus) String() string {
	switch s {
	case TokenExpired:
		return "expired"
	case TokenExpiringSoon:
		return "expiring-soon"
	case TokenValid:
		return "valid"
	default:
		return "invalid"
	}
}

// DecodeExpiry extracts the expiry claim from a bearer token without
// verifying its signature.
//
// The token is opaque to this client; only the embedded expiry is read.
// Cryptographic validation is the backend's job.
func DecodeExpiry(token string) (time.Time, error) {
	if token == "" {
		return time.Time{}, errors.New(errors.ErrCodeAuthTokenMalformed, "token is empty")
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeAuthTokenMalformed, "failed to decode token", err)
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New(errors.ErrCodeAuthTokenMalformed, "token has no expiry claim")
	}

	return claims.ExpiresAt.Time, nil
}

// CheckToken classifies a token relative to now and the safety buffer.
func CheckToken(token string, buffer time.Duration, now time.Time) TokenStatus {
	expiry, err := DecodeExpiry(token)
	if err != nil {
		return TokenInvalid
	}

	switch {
	case !expiry.After(now):
		return TokenExpired
	case expiry.Before(now.Add(buffer)):
		return TokenExpiringSoon
	default:
		return TokenValid
	}
}
