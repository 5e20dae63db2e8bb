package tui

import (
	"github.com/MKhiriev/go-notes-keeper/models"
)

// NavigateTo switches the active page. NoteID selects the note of the edit
// page; Status is shown by the target page.
type NavigateTo struct {
	Page   string
	NoteID string
	Status string
}

type loginResultMsg struct {
	err error
}

type logoutDoneMsg struct {
	err error
}

type authChangedMsg struct {
	change models.AuthStateChange
}

type countLoadedMsg struct {
	gen   int
	count int64
	err   error
}

type notesLoadedMsg struct {
	gen   int
	page  models.NotesPage
	notes []models.Note
	err   error
}

type noteLoadedMsg struct {
	gen  int
	note models.Note
	err  error
}

type noteSavedMsg struct {
	gen   int
	state models.NoteState
	err   error
}

type noteDeletedMsg struct {
	gen   int
	id    string
	state models.NoteState
	err   error
}
