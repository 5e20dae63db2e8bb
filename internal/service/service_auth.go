package service

import (
	"context"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// authService checks HS256 tokens issued by the session provider.
type authService struct {
	signKey  string
	issuer   string
	audience string
}

func NewAuthService(cfg config.JWT) AuthService {
	return &authService{
		signKey:  cfg.Secret,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// ParseToken returns the verified claims of tokenString. Every failure,
// whether expired, foreign or malformed, is reported as ErrInvalidToken.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Claims, error) {
	claims, err := utils.ValidateAndParseJWTToken(tokenString, a.signKey, a.issuer, a.audience)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "authService.ParseToken").Msg("token rejected")
		return models.Claims{}, ErrInvalidToken
	}

	return claims, nil
}
