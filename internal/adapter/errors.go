package adapter

import (
	"errors"
	"fmt"
)

// Status sentinels wrapped by [*StatusError].
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

var (
	// ErrTransport wraps network failures, timeouts and context errors.
	ErrTransport = errors.New("transport error")
	// ErrMalformedResponse wraps response bodies that are not the expected JSON.
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is a non-2xx response of the notes API.
type StatusError struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Detail is the "detail" field of the error body, or the raw body.
	Detail string
	// Err is the status sentinel, e.g. ErrNotFound.
	Err error
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP error! status: %d: %s", e.StatusCode, e.Detail)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}
