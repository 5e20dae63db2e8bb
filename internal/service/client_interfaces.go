package service

import (
	"context"

	"github.com/MKhiriev/go-notes-keeper/models"
)

// NotesService is the client data-access layer over the notes API.
//
// Queries are served from the query cache while fresh. Mutations invalidate
// the cache entries they affect on success and leave the cache untouched on
// failure. Every operation returns ErrUnauthenticated without a network call
// when no valid session is held.
//
//go:generate mockgen -source=client_interfaces.go -destination=../mock/notes_service_mock.go -package=mock -exclude_interfaces=NotesServiceWrapper
type NotesService interface {
	// GetNotesCount returns the total number of notes.
	GetNotesCount(ctx context.Context) (int64, error)

	// ListNotes returns one page of notes.
	ListNotes(ctx context.Context, skip, limit int) ([]models.Note, error)

	// GetNoteByID returns the note with id, or ErrNoteNotFound.
	GetNoteByID(ctx context.Context, id string) (models.Note, error)

	// CreateNote creates a note and invalidates the list and the count.
	CreateNote(ctx context.Context, content string) (models.NoteState, error)

	// UpdateNote replaces the content of note id and invalidates the list
	// and that note.
	UpdateNote(ctx context.Context, id, content string) (models.NoteState, error)

	// DeleteNote deletes note id and invalidates the list, the count and
	// that note.
	DeleteNote(ctx context.Context, id string) (models.NoteState, error)
}

// NotesServiceWrapper decorates a NotesService, e.g. with validation.
type NotesServiceWrapper interface {
	Wrap(NotesService) NotesService
}

// SessionSource is the part of auth.Provider the notes service reads.
type SessionSource interface {
	Session() (models.Session, bool)
}
