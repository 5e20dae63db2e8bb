package auth

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/go-resty/resty/v2"
)

// checkResponse turns a failed token endpoint call into an error.
//
// invalid_grant, and 400/401/403 answers to a password or refresh grant,
// mean the credentials or refresh token were rejected.
func checkResponse(op string, resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrProviderRequest, err)
	}
	if resp.IsSuccess() {
		return nil
	}

	var body models.AuthError
	_ = json.Unmarshal(resp.Body(), &body)

	switch {
	case body.Code == "invalid_grant",
		resp.StatusCode() == http.StatusBadRequest,
		resp.StatusCode() == http.StatusUnauthorized,
		resp.StatusCode() == http.StatusForbidden:
		return fmt.Errorf("%s: %w: %s", op, ErrInvalidCredentials, body.Message())
	default:
		return fmt.Errorf("%s: %w: status %d: %s", op, ErrProviderRequest, resp.StatusCode(), body.Message())
	}
}

func decodeToken(op string, resp *resty.Response) (models.TokenResponse, error) {
	var token models.TokenResponse
	if err := json.Unmarshal(resp.Body(), &token); err != nil {
		return models.TokenResponse{}, fmt.Errorf("%s: %w: %w", op, ErrMalformedResponse, err)
	}
	if token.AccessToken == "" {
		return models.TokenResponse{}, fmt.Errorf("%s: %w: empty access token", op, ErrMalformedResponse)
	}
	return token, nil
}
