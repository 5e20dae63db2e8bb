// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-notes-keeper/internal/adapter"
	"github.com/MKhiriev/go-notes-keeper/internal/app"
	"github.com/MKhiriev/go-notes-keeper/internal/validators"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// mapAdapterError normalizes an adapter error into an *APIError. A non-empty
// prefix, such as "Failed to create a note", is prepended to the message.
func mapAdapterError(op, noteID, prefix string, err error) *APIError {
	msg := describe(err)
	if prefix != "" {
		msg = prefix + ": " + msg
	}

	return &APIError{
		Op:      op,
		NoteID:  noteID,
		Message: msg,
		Err:     err,
	}
}

// describe renders err the way it is shown to the user.
func describe(err error) string {
	var statusErr *adapter.StatusError

	switch {
	case errors.As(err, &statusErr):
		return statusErr.Error()
	case errors.Is(err, context.Canceled):
		return "Request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out"
	case errors.Is(err, adapter.ErrTransport):
		return "Could not reach the notes API"
	case errors.Is(err, adapter.ErrMalformedResponse):
		return "Unexpected response from the notes API"
	default:
		return err.Error()
	}
}

// stateFromError builds the NoteState a form shows for a failed mutation.
func stateFromError(err error) models.NoteState {
	var (
		verr   *validators.ValidationError
		apiErr *APIError
	)

	switch {
	case errors.As(err, &verr):
		return models.NoteState{
			Message: verr.Error(),
			Source:  models.ErrorSourceValidation,
			Errors:  verr.Fields,
		}
	case errors.As(err, &apiErr):
		return models.NoteState{
			Message: apiErr.Message,
			Source:  models.ErrorSourceAPI,
		}
	case errors.Is(err, ErrUnauthenticated):
		return models.NoteState{
			Message: app.MsgUserNotAuthenticated,
			Source:  models.ErrorSourceAPI,
		}
	default:
		return models.NoteState{
			Message: err.Error(),
			Source:  models.ErrorSourceAPI,
		}
	}
}
