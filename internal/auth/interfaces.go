// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth holds the client-side auth session providers.
//
// Two providers implement [Provider]: an OAuth identity provider using the
// password-realm grant, and a backend-as-a-service session provider. Both
// keep the current [models.Session] in memory, persist it through a
// [SessionStore], and broadcast SIGNED_IN, TOKEN_REFRESHED and SIGNED_OUT
// events to subscribers.
package auth

import (
	"context"

	"github.com/MKhiriev/go-notes-keeper/models"
)

// Provider is the auth session source read by the data-access layer.
//
//go:generate mockgen -source=interfaces.go -destination=../mock/auth_mock.go -package=mock
type Provider interface {
	// Name is the configured provider name ("identity" or "session").
	Name() string

	// IsAuthenticated reports whether a non-expired session is held.
	IsAuthenticated() bool

	// Loading is true until the persisted session has been restored and
	// while a login is in flight.
	Loading() bool

	// Err is the last login, restore or refresh error, nil after success.
	Err() error

	// Session returns the current session and whether it is valid.
	Session() (models.Session, bool)

	// Login exchanges credentials for a session.
	Login(ctx context.Context, creds models.Credentials) error

	// Logout drops the session locally and revokes it with the provider.
	Logout(ctx context.Context) error

	// Restore loads the persisted session, refreshing it when expired.
	Restore(ctx context.Context) error

	// Refresh exchanges the refresh token for a new access token.
	Refresh(ctx context.Context) error

	// Subscribe registers fn for auth state changes and returns a func
	// that unregisters it.
	Subscribe(fn func(models.AuthStateChange)) (unsubscribe func())
}

// SessionStore persists one session per provider name. Load reports
// found=false when nothing is stored for provider.
type SessionStore interface {
	Load(ctx context.Context, provider string) (session models.Session, found bool, err error)
	Save(ctx context.Context, session models.Session) error
	Delete(ctx context.Context, provider string) error
}

// grantClient talks to one provider's token endpoints.
type grantClient interface {
	name() string
	password(ctx context.Context, creds models.Credentials) (models.Session, error)
	refresh(ctx context.Context, session models.Session) (models.Session, error)
	revoke(ctx context.Context, session models.Session) error
}
