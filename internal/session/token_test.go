package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("test-secret-key-at-least-32-bytes-long")

// makeToken builds a signed token expiring at the given time. The
// signature is irrelevant to the client, which never verifies it.
func makeToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSigningKey)
	require.NoError(t, err)
	return token
}

func TestDecodeExpiry(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	token := makeToken(t, expiry)

	got, err := DecodeExpiry(token)
	require.NoError(t, err)
	assert.True(t, got.Equal(expiry))
}

func TestDecodeExpiry_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong segment count", token: "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeExpiry(tt.token)
			require.Error(t, err)
		})
	}
}

func TestDecodeExpiry_NoExpiryClaim(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "user-123"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSigningKey)
	require.NoError(t, err)

	_, err = DecodeExpiry(token)
	require.Error(t, err)
}

func TestCheckToken(t *testing.T) {
	now := time.Now()
	buffer := 3 * time.Minute

	tests := []struct {
		name  string
		token string
		want  TokenStatus
	}{
		{
			name:  "valid beyond buffer",
			token: makeToken(t, now.Add(time.Hour)),
			want:  TokenValid,
		},
		{
			name:  "expiring within buffer",
			token: makeToken(t, now.Add(time.Minute)),
			want:  TokenExpiringSoon,
		},
		{
			name:  "already expired",
			token: makeToken(t, now.Add(-time.Minute)),
			want:  TokenExpired,
		},
		{
			name:  "absent",
			token: "",
			want:  TokenInvalid,
		},
		{
			name:  "undecodable",
			token: "garbage",
			want:  TokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckToken(tt.token, buffer, now))
		})
	}
}
