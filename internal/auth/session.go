package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// sessionClient talks to the auth endpoints of a backend-as-a-service
// project under {url}/auth/v1.
type sessionClient struct {
	http *utils.HTTPClient
	now  func() time.Time
}

func newSessionClient(cfg config.SessionAuth, timeout time.Duration) *sessionClient {
	client := utils.NewHTTPClient(cfg.URL, timeout)
	client.SetHeader("apikey", cfg.AnonKey)

	return &sessionClient{http: client, now: time.Now}
}

func (c *sessionClient) name() string {
	return config.ProviderSession
}

func (c *sessionClient) password(ctx context.Context, creds models.Credentials) (models.Session, error) {
	return c.token(ctx, "session password grant", grantPassword, map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	})
}

func (c *sessionClient) refresh(ctx context.Context, session models.Session) (models.Session, error) {
	return c.token(ctx, "session refresh grant", grantRefreshToken, map[string]string{
		"refresh_token": session.RefreshToken,
	})
}

// revoke ends the session server-side. A 401 or 404 means it is already gone.
func (c *sessionClient) revoke(ctx context.Context, session models.Session) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(session.AccessToken).
		Post("/auth/v1/logout")
	if err == nil && (resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusNotFound) {
		return nil
	}
	return checkResponse("session logout", resp, err)
}

func (c *sessionClient) token(ctx context.Context, op, grantType string, body map[string]string) (models.Session, error) {
	issuedAt := c.now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("grant_type", grantType).
		SetBody(body).
		Post("/auth/v1/token")
	if err := checkResponse(op, resp, err); err != nil {
		return models.Session{}, err
	}

	token, err := decodeToken(op, resp)
	if err != nil {
		return models.Session{}, err
	}

	return sessionFromToken(c.name(), token, issuedAt), nil
}
