package tui

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

type formMode int

const (
	formCreate formMode = iota
	formEdit
)

// NoteFormModel is the create and edit page. In edit mode it loads the note
// first and shows a not-found page when it no longer exists.
type NoteFormModel struct {
	services *service.ClientServices
	mode     formMode
	scope    pageScope

	noteID string
	note   queryState[models.Note]

	area       textarea.Model
	submitting bool
	failure    models.NoteState

	logger *logger.Logger
}

func NewNoteFormModel(services *service.ClientServices, mode formMode, logger *logger.Logger) *NoteFormModel {
	return &NoteFormModel{
		services: services,
		mode:     mode,
		area:     newNoteArea(),
		logger:   logger,
	}
}

func newNoteArea() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Write your note..."
	ta.SetWidth(60)
	ta.SetHeight(8)
	ta.ShowLineNumbers = false
	return ta
}

func (m *NoteFormModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *NoteFormModel) Open(ctx context.Context, nav NavigateTo) tea.Cmd {
	m.scope.open(ctx)
	m.noteID = nav.NoteID
	m.submitting = false
	m.failure = models.NoteState{}
	m.note.reset()
	m.area.Reset()
	m.area.Focus()

	if m.mode == formCreate {
		return textarea.Blink
	}

	m.note.start()
	return tea.Batch(textarea.Blink, m.cmdLoadNote(m.noteID))
}

func (m *NoteFormModel) Close() {
	m.scope.close()
	m.area.Blur()
}

func (m *NoteFormModel) capturesText() bool { return m.editable() }

// editable is false while an edited note is loading or failed to load.
func (m *NoteFormModel) editable() bool {
	return m.mode == formCreate || m.note.ok()
}

func (m *NoteFormModel) notFound() bool {
	return m.note.failed() && errors.Is(m.note.err, service.ErrNoteNotFound)
}

func (m *NoteFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case noteLoadedMsg:
		if !m.scope.current(msg.gen) {
			return m, nil
		}
		m.note.resolve(msg.note, msg.err)
		if msg.err != nil {
			if !errors.Is(msg.err, service.ErrNoteNotFound) {
				m.logger.Err(msg.err).Str("func", "*NoteFormModel.Update").Str("note_id", m.noteID).Msg("error loading note")
			}
			return m, nil
		}
		m.area.SetValue(msg.note.Content)
		return m, nil

	case noteSavedMsg:
		if !m.scope.current(msg.gen) {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			m.failure = msg.state
			if !m.failure.Failed() {
				m.failure = models.NoteState{Message: describeError(msg.err), Source: models.ErrorSourceAPI}
			}
			return m, nil
		}
		return m, navigate(NavigateTo{Page: pageDashboard, Status: msg.state.Message})

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return m, navigate(NavigateTo{Page: pageDashboard})
		case key.Matches(msg, keys.save):
			return m.submit()
		}
		if !m.editable() {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

func (m *NoteFormModel) submit() (tea.Model, tea.Cmd) {
	if m.submitting || !m.editable() {
		return m, nil
	}

	m.submitting = true
	m.failure = models.NoteState{}
	return m, m.cmdSave(m.area.Value())
}

func (m *NoteFormModel) View() string {
	if m.mode == formEdit {
		switch {
		case m.notFound():
			return renderPage("NOTE NOT FOUND",
				"The note "+m.noteID+" does not exist.\nIt may have been deleted.", "esc back to dashboard")
		case m.note.loading():
			return renderPage("EDIT NOTE", "Loading note...", "esc back")
		case m.note.failed():
			return renderPage("EDIT NOTE", renderError("Error loading note", describeError(m.note.err)), "esc back")
		}
	}

	var b strings.Builder
	b.WriteString(m.area.View())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\nSaving...\n")
	}
	if m.failure.Failed() {
		b.WriteString("\n" + renderError(sourceLabel(m.failure.Source), m.failure.Message) + "\n")
		for _, field := range slices.Sorted(maps.Keys(m.failure.Errors)) {
			for _, fieldMsg := range m.failure.Errors[field] {
				b.WriteString("  " + field + ": " + fieldMsg + "\n")
			}
		}
	}

	title := "NEW NOTE"
	if m.mode == formEdit {
		title = "EDIT NOTE"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "ctrl+s save │ esc cancel")
}

func (m *NoteFormModel) cmdLoadNote(id string) tea.Cmd {
	ctx, gen, notes := m.scope.ctx, m.scope.gen, m.services.Notes

	return func() tea.Msg {
		note, err := notes.GetNoteByID(ctx, id)
		return noteLoadedMsg{gen: gen, note: note, err: err}
	}
}

func (m *NoteFormModel) cmdSave(content string) tea.Cmd {
	ctx, gen, notes := m.scope.mutationCtx(), m.scope.gen, m.services.Notes
	mode, id := m.mode, m.noteID

	return func() tea.Msg {
		var (
			state models.NoteState
			err   error
		)
		if mode == formCreate {
			state, err = notes.CreateNote(ctx, content)
		} else {
			state, err = notes.UpdateNote(ctx, id, content)
		}
		return noteSavedMsg{gen: gen, state: state, err: err}
	}
}
