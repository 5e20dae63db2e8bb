package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = config.JWT{
	Secret:   "super-secret-jwt-token-with-at-least-32-characters",
	Issuer:   "https://project.example.co/auth/v1",
	Audience: "authenticated",
}

func signTestToken(t *testing.T, secret, issuer, audience string) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "user-1",
			Issuer:   issuer,
			Audience: jwt.ClaimStrings{audience},
		},
		Email: "user@example.com",
	}, time.Hour, secret)
	require.NoError(t, err)
	return token
}

func TestAuthService_ParseToken_Valid(t *testing.T) {
	svc := NewAuthService(testJWT)

	claims, err := svc.ParseToken(context.Background(), signTestToken(t, testJWT.Secret, testJWT.Issuer, testJWT.Audience))

	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestAuthService_ParseToken_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "wrong secret", token: signTestToken(t, "another-secret", testJWT.Issuer, testJWT.Audience)},
		{name: "wrong issuer", token: signTestToken(t, testJWT.Secret, "https://evil.example.com/auth/v1", testJWT.Audience)},
		{name: "wrong audience", token: signTestToken(t, testJWT.Secret, testJWT.Issuer, "anon")},
		{name: "garbage", token: "not.a.jwt"},
		{name: "empty", token: ""},
	}

	svc := NewAuthService(testJWT)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
