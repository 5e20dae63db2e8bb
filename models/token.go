package models

import (
	"time"
)

// TokenResponse is the OAuth 2.0 token endpoint response returned by both
// auth providers.
//
// The identity provider reports only ExpiresIn; the session provider also
// reports an absolute ExpiresAt and the signed-in User.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	TokenType    string `json:"token_type"`

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in"`

	// ExpiresAt is the access token expiry as a unix timestamp, when present.
	ExpiresAt int64 `json:"expires_at,omitempty"`

	User *AuthUser `json:"user,omitempty"`
}

// Expiry returns the absolute access token expiry, preferring ExpiresAt and
// falling back to issuedAt plus ExpiresIn. Zero when neither is set.
func (t TokenResponse) Expiry(issuedAt time.Time) time.Time {
	switch {
	case t.ExpiresAt > 0:
		return time.Unix(t.ExpiresAt, 0)
	case t.ExpiresIn > 0:
		return issuedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
	default:
		return time.Time{}
	}
}

// AuthError is the error body of an OAuth token endpoint.
//
// Providers disagree on field names, so both the RFC 6749 pair
// (error, error_description) and the "msg" variant are decoded.
type AuthError struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
	Msg         string `json:"msg"`
}

// Message returns the most descriptive non-empty field.
func (e AuthError) Message() string {
	switch {
	case e.Description != "":
		return e.Description
	case e.Msg != "":
		return e.Msg
	default:
		return e.Code
	}
}
