package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestGateVerify(t *testing.T) {
	gate := NewGate(testSecret)
	future := time.Now().Add(time.Hour).Unix()
	past := time.Now().Add(-time.Hour).Unix()

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{
			name:  "valid HS256 token",
			token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"user": "admin", "exp": future}),
		},
		{
			name:  "valid token without expiry",
			token: sign(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.MapClaims{"user": "admin"}),
		},
		{
			name:    "expired token",
			token:   sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"exp": past}),
			wantErr: true,
		},
		{
			name:    "wrong secret",
			token:   sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"exp": future}),
			wantErr: true,
		},
		{
			name:    "unsigned token",
			token:   sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{}),
			wantErr: true,
		},
		{
			name:    "malformed token",
			token:   "not.a.jwt",
			wantErr: true,
		},
		{
			name:    "missing token",
			token:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Verify(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnauthorized))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGateWithoutSecret(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{})
	err := NewGate("").Verify(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTokenContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TokenFromContext(ctx))

	ctx = WithToken(ctx, "abc")
	assert.Equal(t, "abc", TokenFromContext(ctx))
}
