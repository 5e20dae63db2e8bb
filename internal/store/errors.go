package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoteNotFound is returned when no note has the requested id.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrNoteAlreadyExists is returned when an insert collides with an
	// existing id.
	ErrNoteAlreadyExists = errors.New("note already exists")

	// ErrTemporarilyUnavailable wraps errors classified as [Retryable].
	ErrTemporarilyUnavailable = errors.New("database temporarily unavailable")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery   = errors.New("error building sql query")
	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("failed to executing statement")
	ErrScanningRow        = errors.New("failed to scan row")
	ErrScanningRows       = errors.New("failed to scan rows")
)
