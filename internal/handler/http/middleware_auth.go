package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes-keeper/internal/app"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/rs/zerolog"
)

// auth rejects requests without a verified bearer token with 401 and a
// {"detail": ...} body. On success the token subject is added to the
// request logger as user_id.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug().Err(err).Str("func", "*Handler.auth").Send()
			unauthorized(w, app.MsgNotAuthenticated)
			return
		}

		ctx := r.Context()
		claims, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Debug().Err(err).Str("func", "*Handler.auth").Msg("error occurred during parsing token")
			unauthorized(w, app.MsgInvalidToken)
			return
		}

		log = log.GetChildLogger()
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("user_id", claims.Subject)
		})
		ctx = log.WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	utils.WriteError(w, detail, http.StatusUnauthorized)
}

// getTokenFromAuthHeader extracts the token of an "Authorization: Bearer"
// header value.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", ErrInvalidAuthorizationHeader
	}

	return token, nil
}
