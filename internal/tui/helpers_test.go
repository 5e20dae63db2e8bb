package tui

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/mock"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/mock/gomock"
)

type tuiFixture struct {
	notes    *mock.MockNotesService
	provider *mock.MockProvider
	services *service.ClientServices
}

func newTUIFixture(t *testing.T) *tuiFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	notes := mock.NewMockNotesService(ctrl)
	provider := mock.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("session").AnyTimes()

	return &tuiFixture{
		notes:    notes,
		provider: provider,
		services: &service.ClientServices{Auth: provider, Notes: notes},
	}
}

func (f *tuiFixture) dashboard() *DashboardModel {
	d := NewDashboardModel(f.services, logger.Nop())
	d.copyText = func(string) error { return nil }
	return d
}

// collect runs cmd and every command of a batch it yields, returning the
// produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// feed delivers every message produced by cmd to m and returns the
// commands m answered with.
func feed(m tea.Model, cmd tea.Cmd) []tea.Cmd {
	var cmds []tea.Cmd
	for _, msg := range collect(cmd) {
		_, next := m.Update(msg)
		if next != nil {
			cmds = append(cmds, next)
		}
	}
	return cmds
}

func firstOf[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if typed, ok := msg.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openPage(p page, nav NavigateTo) tea.Cmd {
	return p.Open(context.Background(), nav)
}
