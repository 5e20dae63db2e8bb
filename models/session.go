// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is the authenticated state held by an auth provider.
//
// AccessToken is the bearer credential attached to every notes API call.
// The data-access layer only reads a Session; providers own its lifecycle.
type Session struct {
	// Provider is the name of the provider that issued the session.
	Provider string

	// UserID is the "sub" claim of the access token.
	UserID string

	// Email is the signed-in user's email, when the provider reports it.
	Email string

	// AccessToken is the bearer credential.
	AccessToken string

	// RefreshToken is used to obtain a new AccessToken before ExpiresAt.
	// Empty when the provider did not issue one.
	RefreshToken string

	// TokenType is normally "bearer".
	TokenType string

	// ExpiresAt is the access token expiry.
	ExpiresAt time.Time
}

// Valid reports whether the session carries a credential that has not
// expired at now.
func (s Session) Valid(now time.Time) bool {
	if s.AccessToken == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// ExpiresWithin reports whether the access token expires within d of now.
func (s Session) ExpiresWithin(now time.Time, d time.Duration) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(d).Before(s.ExpiresAt)
}

// AuthEvent is the kind of change broadcast by an auth provider.
type AuthEvent string

const (
	AuthEventSignedIn       AuthEvent = "SIGNED_IN"
	AuthEventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
	AuthEventSignedOut      AuthEvent = "SIGNED_OUT"
)

// AuthStateChange is delivered to auth subscribers after every session change.
type AuthStateChange struct {
	Event   AuthEvent
	Session Session
}
