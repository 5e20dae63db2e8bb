// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-notes-keeper/internal/app"
	"github.com/MKhiriev/go-notes-keeper/internal/auth"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/models"
)

var ErrUserQuit = errors.New("user quit the dashboard")

// describeError renders a query or login error for display.
func describeError(err error) string {
	var apiErr *service.APIError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrUnauthenticated):
		return app.MsgUserNotAuthenticated
	case errors.Is(err, service.ErrNoteNotFound):
		return app.MsgNoteNotFound
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.As(err, &apiErr):
		return apiErr.Message
	default:
		return err.Error()
	}
}

// sourceLabel names where a failed mutation was rejected.
func sourceLabel(source models.ErrorSource) string {
	switch source {
	case models.ErrorSourceValidation:
		return "Validation error"
	case models.ErrorSourceAPI:
		return "API error"
	default:
		return "Error"
	}
}
