package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/query"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const previewWidth = 48

// DashboardModel shows the notes count card and one page of notes.
//
// Delete errors are kept per note id and rendered under the row they belong
// to, independently of the page-level query state.
type DashboardModel struct {
	services *service.ClientServices
	scope    pageScope

	page  models.NotesPage
	count queryState[int64]
	notes queryState[[]models.Note]
	idx   int

	confirm    *confirmModel
	deleting   map[string]bool
	deleteErrs map[string]string

	status  string
	errMsg  string
	spinner spinner.Model

	copyText func(string) error
	logger   *logger.Logger
}

func NewDashboardModel(services *service.ClientServices, logger *logger.Logger) *DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return &DashboardModel{
		services:   services,
		page:       models.DefaultNotesPage(),
		deleting:   make(map[string]bool),
		deleteErrs: make(map[string]string),
		spinner:    s,
		copyText:   clipboard.WriteAll,
		logger:     logger,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return nil
}

func (m *DashboardModel) Open(ctx context.Context, nav NavigateTo) tea.Cmd {
	m.scope.open(ctx)
	m.status = nav.Status
	m.errMsg = ""
	m.confirm = nil
	clear(m.deleting)
	clear(m.deleteErrs)

	return m.load()
}

func (m *DashboardModel) Close() {
	m.scope.close()
}

// load (re)issues the count and list queries for the current page.
func (m *DashboardModel) load() tea.Cmd {
	m.count.start()
	m.notes.start()
	return tea.Batch(m.spinner.Tick, m.cmdCount(), m.cmdList(m.page))
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.count.loading() && !m.notes.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case countLoadedMsg:
		if !m.scope.current(msg.gen) {
			return m, nil
		}
		m.count.resolve(msg.count, msg.err)
		if msg.err != nil {
			m.logger.Err(msg.err).Str("func", "*DashboardModel.Update").Msg("error loading notes count")
		}
		return m, nil

	case notesLoadedMsg:
		if !m.scope.current(msg.gen) || msg.page != m.page {
			return m, nil
		}
		m.notes.resolve(msg.notes, msg.err)
		if msg.err != nil {
			m.logger.Err(msg.err).Str("func", "*DashboardModel.Update").Msg("error loading notes")
		}
		m.clampCursor()
		return m, nil

	case noteDeletedMsg:
		if !m.scope.current(msg.gen) {
			return m, nil
		}
		delete(m.deleting, msg.id)
		if msg.err != nil {
			m.deleteErrs[msg.id] = msg.state.Message
			return m, nil
		}
		delete(m.deleteErrs, msg.id)
		m.status = msg.state.Message
		return m, m.load()

	case noteSavedMsg:
		// a save that finished after its form was left
		if msg.err != nil {
			m.errMsg = "Save failed: " + msg.state.Message
			if msg.state.Message == "" {
				m.errMsg = "Save failed: " + describeError(msg.err)
			}
			return m, nil
		}
		m.status = msg.state.Message
		return m, m.load()

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *DashboardModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		note := m.confirm.note
		m.confirm = nil
		m.deleting[note.ID] = true
		delete(m.deleteErrs, note.ID)
		return m, m.cmdDelete(note.ID)
	case key.Matches(msg, keys.no):
		m.confirm = nil
	}
	return m, nil
}

func (m *DashboardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.notes.data)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.prevPage):
		if m.page.Skip == 0 {
			return m, nil
		}
		m.page = m.page.Prev()
		m.idx = 0
		m.notes.start()
		return m, tea.Batch(m.spinner.Tick, m.cmdList(m.page))
	case key.Matches(msg, keys.nextPage):
		if !m.hasNextPage() {
			return m, nil
		}
		m.page = m.page.Next()
		m.idx = 0
		m.notes.start()
		return m, tea.Batch(m.spinner.Tick, m.cmdList(m.page))
	case key.Matches(msg, keys.refresh):
		if m.services.Cache != nil {
			m.services.Cache.InvalidateTag(query.TagNotes, query.TagNotesCount)
		}
		m.status = ""
		return m, m.load()
	case key.Matches(msg, keys.newNote):
		return m, navigate(NavigateTo{Page: pageCreate})
	case key.Matches(msg, keys.edit, keys.enter):
		if note, ok := m.current(); ok {
			return m, navigate(NavigateTo{Page: pageEdit, NoteID: note.ID})
		}
	case key.Matches(msg, keys.delete):
		if note, ok := m.current(); ok && !m.deleting[note.ID] {
			m.confirm = &confirmModel{note: note}
		}
	case key.Matches(msg, keys.copy):
		m.copyCurrent()
	case key.Matches(msg, keys.logout):
		return m, m.cmdLogout()
	}

	return m, nil
}

func (m *DashboardModel) copyCurrent() {
	note, ok := m.current()
	if !ok {
		m.status = "Nothing to copy"
		return
	}
	if err := m.copyText(note.Content); err != nil {
		m.logger.Err(err).Str("func", "*DashboardModel.copyCurrent").Msg("clipboard write failed")
		m.errMsg = "Copy failed: " + err.Error()
		return
	}
	m.errMsg = ""
	m.status = "Copied to clipboard"
}

// hasNextPage is true when the count says more notes follow the current
// page, or, without a count, when the current page is full.
func (m *DashboardModel) hasNextPage() bool {
	if !m.notes.ok() {
		return false
	}
	if m.count.ok() {
		return int64(m.page.Skip+m.page.Limit) < m.count.data
	}
	return len(m.notes.data) == m.page.Limit
}

func (m *DashboardModel) current() (models.Note, bool) {
	if !m.notes.ok() || m.idx < 0 || m.idx >= len(m.notes.data) {
		return models.Note{}, false
	}
	return m.notes.data[m.idx], true
}

func (m *DashboardModel) clampCursor() {
	if m.idx >= len(m.notes.data) {
		m.idx = len(m.notes.data) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *DashboardModel) View() string {
	if m.confirm != nil {
		return appStyle.Render(m.confirm.View())
	}

	var b strings.Builder
	b.WriteString(m.viewCount())
	b.WriteString("\n\n")
	b.WriteString(m.viewNotes())

	if m.status != "" {
		b.WriteString("\n\n" + statusStyle.Render(m.status))
	}
	if m.errMsg != "" {
		b.WriteString("\n\n" + renderError("Error", m.errMsg))
	}

	title := "NOTES"
	if m.count.loading() || m.notes.loading() {
		title += "  " + m.spinner.View()
	}
	return renderPage(title, b.String(),
		"↑/↓ move │ ←/→ page │ n new │ e edit │ d delete │ c copy │ r refresh │ o sign out │ q quit")
}

func (m *DashboardModel) viewCount() string {
	var value string
	switch {
	case m.count.loading():
		value = "Loading..."
	case m.count.failed():
		value = renderError("Error", describeError(m.count.err))
	default:
		value = fmt.Sprintf("%d", m.count.data)
	}
	return cardStyle.Render("Total Notes\n" + value)
}

func (m *DashboardModel) viewNotes() string {
	switch {
	case m.notes.loading():
		return "Loading notes..."
	case m.notes.failed():
		return renderError("Error loading notes", describeError(m.notes.err))
	case len(m.notes.data) == 0:
		if m.page.Skip > 0 {
			return "No notes on this page"
		}
		return "No notes yet. Press n to create one."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Notes %d-%d\n\n", m.page.Skip+1, m.page.Skip+len(m.notes.data))
	for i, note := range m.notes.data {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%-*s  %s", cursor, previewWidth, fitText(note.Content, previewWidth),
			note.CreatedAt.Local().Format("2006-01-02 15:04"))
		if m.deleting[note.ID] {
			b.WriteString("  deleting...")
		}
		b.WriteString("\n")
		if msg, ok := m.deleteErrs[note.ID]; ok {
			b.WriteString("    " + renderError("Delete failed", msg) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *DashboardModel) cmdCount() tea.Cmd {
	ctx, gen, notes := m.scope.ctx, m.scope.gen, m.services.Notes

	return func() tea.Msg {
		count, err := notes.GetNotesCount(ctx)
		return countLoadedMsg{gen: gen, count: count, err: err}
	}
}

func (m *DashboardModel) cmdList(page models.NotesPage) tea.Cmd {
	ctx, gen, notes := m.scope.ctx, m.scope.gen, m.services.Notes

	return func() tea.Msg {
		list, err := notes.ListNotes(ctx, page.Skip, page.Limit)
		return notesLoadedMsg{gen: gen, page: page, notes: list, err: err}
	}
}

func (m *DashboardModel) cmdDelete(id string) tea.Cmd {
	ctx, gen, notes := m.scope.mutationCtx(), m.scope.gen, m.services.Notes

	return func() tea.Msg {
		state, err := notes.DeleteNote(ctx, id)
		return noteDeletedMsg{gen: gen, id: id, state: state, err: err}
	}
}

func (m *DashboardModel) cmdLogout() tea.Cmd {
	ctx, provider := m.scope.mutationCtx(), m.services.Auth

	return func() tea.Msg {
		return logoutDoneMsg{err: provider.Logout(ctx)}
	}
}
