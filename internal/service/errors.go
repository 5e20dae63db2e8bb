package service

import (
	"errors"
)

var (
	// ErrUnauthenticated is returned before any network call when no valid
	// session is held.
	ErrUnauthenticated = errors.New("user is not authenticated")

	// ErrNoteNotFound is returned when the requested note does not exist.
	ErrNoteNotFound = errors.New("note not found")

	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidToken        = errors.New("token is expired or invalid")
)

// APIError is a failed call to the notes API, normalized for display.
//
// Message is human readable and already includes the HTTP status when there
// was one. Err keeps the adapter error for errors.Is checks.
type APIError struct {
	Op      string
	NoteID  string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}
