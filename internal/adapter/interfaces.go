// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer used by the dashboard to talk
// to the remote notes API.
//
// The primary abstraction is [NotesAPI], which decouples the service layer
// from HTTP. The package ships an HTTP/REST implementation
// ([NewHTTPNotesAdapter]) built on resty.
//
// Every failure is returned as one of three shapes so callers can use
// [errors.Is] / [errors.As] without looking at HTTP details:
//   - [*StatusError] wrapping a status sentinel (e.g. [ErrNotFound] for 404)
//   - [ErrTransport] wrapping the network or context error
//   - [ErrMalformedResponse] wrapping the JSON decoding error
package adapter

import (
	"context"

	"github.com/MKhiriev/go-notes-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/notes_api_mock.go -package=mock

// NotesAPI defines the calls of the remote notes API. Every call carries the
// bearer credential passed in token; implementations never store it.
type NotesAPI interface {
	// GetNotesCount calls GET /notes-count and returns the "count" field.
	GetNotesCount(ctx context.Context, token string) (int64, error)

	// ListNotes calls GET /notes/?skip=&limit= and returns the page in the
	// order produced by the server.
	ListNotes(ctx context.Context, token string, skip, limit int) ([]models.Note, error)

	// GetNote calls GET /notes/{id}/. A missing note yields a [*StatusError]
	// wrapping [ErrNotFound].
	GetNote(ctx context.Context, token, id string) (models.Note, error)

	// CreateNote calls POST /notes/ and returns the server copy with id and
	// created_at assigned.
	CreateNote(ctx context.Context, token string, content models.NoteContent) (models.Note, error)

	// UpdateNote calls PUT /notes/{id} replacing the note content.
	UpdateNote(ctx context.Context, token, id string, content models.NoteContent) (models.Note, error)

	// DeleteNote calls DELETE /notes/{id}. Any 2xx is success.
	DeleteNote(ctx context.Context, token, id string) error
}
