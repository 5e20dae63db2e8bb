package auth

import "errors"

var (
	ErrUnknownProvider    = errors.New("unknown auth provider")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrNoSession          = errors.New("no session")
	ErrNoRefreshToken     = errors.New("session has no refresh token")
	ErrSessionChanged     = errors.New("session changed while refreshing")
	ErrProviderRequest    = errors.New("auth provider request failed")
	ErrMalformedResponse  = errors.New("malformed auth provider response")
)
