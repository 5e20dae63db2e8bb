package auth

import (
	"context"
	"strings"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/models"
)

const (
	grantPassword      = "password"
	grantPasswordRealm = "http://auth0.com/oauth/grant-type/password-realm"
	grantRefreshToken  = "refresh_token"
)

// identityClient talks to an OAuth tenant at https://{domain}.
type identityClient struct {
	cfg  config.Identity
	http *utils.HTTPClient
	now  func() time.Time
}

func newIdentityClient(cfg config.Identity, timeout time.Duration) *identityClient {
	base := cfg.Domain
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return &identityClient{
		cfg:  cfg,
		http: utils.NewHTTPClient(base, timeout),
		now:  time.Now,
	}
}

func (c *identityClient) name() string {
	return config.ProviderIdentity
}

func (c *identityClient) password(ctx context.Context, creds models.Credentials) (models.Session, error) {
	body := map[string]string{
		"grant_type": grantPassword,
		"username":   creds.Email,
		"password":   creds.Password,
		"client_id":  c.cfg.ClientID,
		"audience":   c.cfg.Audience,
		"scope":      c.cfg.Scope,
	}
	if c.cfg.Realm != "" {
		body["grant_type"] = grantPasswordRealm
		body["realm"] = c.cfg.Realm
	}

	return c.token(ctx, "identity password grant", body)
}

func (c *identityClient) refresh(ctx context.Context, session models.Session) (models.Session, error) {
	return c.token(ctx, "identity refresh grant", map[string]string{
		"grant_type":    grantRefreshToken,
		"client_id":     c.cfg.ClientID,
		"refresh_token": session.RefreshToken,
	})
}

func (c *identityClient) revoke(ctx context.Context, session models.Session) error {
	if session.RefreshToken == "" {
		return nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"client_id": c.cfg.ClientID,
			"token":     session.RefreshToken,
		}).
		Post("/oauth/revoke")
	return checkResponse("identity revoke", resp, err)
}

func (c *identityClient) token(ctx context.Context, op string, body map[string]string) (models.Session, error) {
	issuedAt := c.now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/oauth/token")
	if err := checkResponse(op, resp, err); err != nil {
		return models.Session{}, err
	}

	token, err := decodeToken(op, resp)
	if err != nil {
		return models.Session{}, err
	}

	return sessionFromToken(c.name(), token, issuedAt), nil
}
