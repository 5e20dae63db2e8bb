// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings shared by the notes
// API server, the client services and the terminal UI.
//
// Server messages are written into HTTP response bodies as {"detail": ...}
// or {"message": ...}; client messages end up in models.NoteState and on
// screen. Keeping them in one place keeps the wording consistent between
// both ends.
package app

// Server responses.
const (
	// MsgNoteNotFound is the 404 detail for an unknown note id.
	MsgNoteNotFound = "Note not found"

	// MsgNoteDeleted is the body message of a successful DELETE.
	MsgNoteDeleted = "Note deleted successfully"

	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "Invalid data provided"

	// MsgInvalidQueryParams is returned for a non-integer skip or limit.
	MsgInvalidQueryParams = "Invalid skip or limit"

	// MsgNotAuthenticated is returned when the Authorization header is
	// missing or not a bearer token.
	MsgNotAuthenticated = "Not authenticated"

	// MsgInvalidToken is returned when a bearer token fails verification.
	MsgInvalidToken = "Could not validate credentials"

	MsgMethodNotAllowed    = "Method not allowed"
	MsgInternalServerError = "Internal server error"
)

// Client outcomes.
const (
	MsgNoteCreated = "Note created successfully"
	MsgNoteUpdated = "Note updated successfully"

	MsgCreateNoteFailed = "Failed to create a note"
	MsgUpdateNoteFailed = "Failed to update a note"
	MsgDeleteNoteFailed = "Failed to delete a note"

	MsgUserNotAuthenticated = "User is not authenticated"
)
