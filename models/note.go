// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Note is a short text note owned by the remote notes API.
//
// ID and CreatedAt are assigned by the server on creation and never change.
// Content is replaced wholesale on update.
type Note struct {
	// ID is the server-issued identifier (UUIDv7 string).
	ID string `json:"id"`

	// Content is the note text.
	Content string `json:"content"`

	// CreatedAt is the server-side creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// NoteContent is the request body of create and update calls.
type NoteContent struct {
	Content string `json:"content"`
}

// NotesCount is the response body of the notes-count endpoint.
type NotesCount struct {
	Count int64 `json:"count"`
}

// NotesPage is a skip/limit window over the notes list.
type NotesPage struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// Default paging window used when the caller does not choose one.
const (
	DefaultNotesSkip  = 0
	DefaultNotesLimit = 10
)

// DefaultNotesPage returns the first page with the default limit.
func DefaultNotesPage() NotesPage {
	return NotesPage{Skip: DefaultNotesSkip, Limit: DefaultNotesLimit}
}

// Next returns the page following p.
func (p NotesPage) Next() NotesPage {
	return NotesPage{Skip: p.Skip + p.Limit, Limit: p.Limit}
}

// Prev returns the page preceding p, clamped at zero.
func (p NotesPage) Prev() NotesPage {
	skip := p.Skip - p.Limit
	if skip < 0 {
		skip = 0
	}
	return NotesPage{Skip: skip, Limit: p.Limit}
}
