//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"travel-kernel/internal/domain/user"
	"travel-kernel/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, method gojwt.SigningMethod, key any, claims gojwt.Claims) string {
	t.Helper()
	token, err := gojwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestService_RoundTrip(t *testing.T) {
	svc := jwt.NewService(secret, time.Hour)

	token, err := svc.GenerateToken("user-1", user.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestService_ValidateToken(t *testing.T) {
	svc := jwt.NewService(secret, time.Hour)
	now := time.Now()
	valid := gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour))}

	t.Run("subject stands in for a missing user id", func(t *testing.T) {
		token := sign(t, gojwt.SigningMethodHS256, []byte(secret), jwt.Claims{
			RegisteredClaims: gojwt.RegisteredClaims{Subject: "user-9", ExpiresAt: valid.ExpiresAt},
		})

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-9", claims.UserID)
		assert.Equal(t, "user", claims.Role)
	})

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "expired beyond skew",
			token: func(t *testing.T) string {
				return sign(t, gojwt.SigningMethodHS256, []byte(secret), jwt.Claims{
					UserID:           "user-1",
					RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(now.Add(-time.Minute))},
				})
			},
			wantErr: jwt.ErrExpiredToken,
		},
		{
			name: "other secret",
			token: func(t *testing.T) string {
				return sign(t, gojwt.SigningMethodHS256, []byte("other"), jwt.Claims{UserID: "user-1", RegisteredClaims: valid})
			},
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name: "other algorithm",
			token: func(t *testing.T) string {
				return sign(t, gojwt.SigningMethodHS512, []byte(secret), jwt.Claims{UserID: "user-1", RegisteredClaims: valid})
			},
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name: "no identity",
			token: func(t *testing.T) string {
				return sign(t, gojwt.SigningMethodHS256, []byte(secret), jwt.Claims{RegisteredClaims: valid})
			},
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name:    "garbage",
			token:   func(*testing.T) string { return "not-a-token" },
			wantErr: jwt.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token(t))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
