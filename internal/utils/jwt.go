package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWTToken signs claims with HMAC-SHA256.
//
// IssuedAt is set to now, and ExpiresAt to now plus tokenDuration when the
// claims carry no expiry. Returns an error if the sign key is empty or the
// duration is not positive.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken(models.Claims{...}, time.Hour, "secret")
func GenerateJWTToken(claims models.Claims, tokenDuration time.Duration, signKey string) (string, error) {
	if tokenDuration <= 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(tokenDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return tokenString, nil
}

// ValidateAndParseJWTToken verifies an HS256 access token and returns its
// claims.
//
// Validation includes:
//   - Signature verification using the provided sign key (HS256 only)
//   - Issuer (iss) and audience (aud) checks
//   - Expiration (exp) presence and check
//   - Subject (sub) presence
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer, audience string) (models.Claims, error) {
	var claims models.Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Claims{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Claims{}, errors.New("empty subject error")
	}

	return claims, nil
}

// ParseBearerToken extracts the credential from an "Authorization: Bearer"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

// ParseUnverifiedClaims decodes the claims of tokenString without checking
// its signature. The client uses it to read sub, email and exp of tokens it
// received from its own auth provider.
func ParseUnverifiedClaims(tokenString string) (models.Claims, error) {
	var claims models.Claims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return models.Claims{}, fmt.Errorf("error parsing token claims: %w", err)
	}
	return claims, nil
}
