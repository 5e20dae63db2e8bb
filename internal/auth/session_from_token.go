package auth

import (
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// sessionFromToken builds a Session from a token response. The user is
// taken from the response body when present, otherwise from the id token
// or the access token claims.
func sessionFromToken(provider string, token models.TokenResponse, issuedAt time.Time) models.Session {
	session := models.Session{
		Provider:     provider,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry(issuedAt),
	}

	if token.User != nil {
		session.UserID = token.User.ID
		session.Email = token.User.Email
		return session
	}

	for _, raw := range []string{token.IDToken, token.AccessToken} {
		if raw == "" {
			continue
		}
		claims, err := utils.ParseUnverifiedClaims(raw)
		if err != nil {
			continue
		}
		session.UserID = claims.Subject
		session.Email = claims.Email
		if session.ExpiresAt.IsZero() && claims.ExpiresAt != nil {
			session.ExpiresAt = claims.ExpiresAt.Time
		}
		break
	}

	return session
}
