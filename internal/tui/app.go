package tui

import (
	"context"

	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// textCapturer is implemented by pages whose focused input takes plain
// keys, so global hotkeys must not steal them.
type textCapturer interface {
	capturesText() bool
}

// RootModel is a TUI router:
// 1) keeps the active page and its per-visit context
// 2) handles global ctrl+c quit and the about overlay
// 3) handles NavigateTo messages and sign-out
// 4) delegates all other messages to the active page
type RootModel struct {
	ctx       context.Context
	pages     map[string]page
	start     string
	current   page
	buildInfo models.AppBuildInfo

	showAbout  bool
	quitByUser bool
}

// NewRootModel registers all pages. startPage is opened by Init.
func NewRootModel(ctx context.Context, pages map[string]page, startPage string, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		ctx:       ctx,
		pages:     pages,
		start:     startPage,
		current:   pages[startPage],
		buildInfo: buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return tea.Batch(r.current.Init(), r.current.Open(r.ctx, NavigateTo{Page: r.start}))
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+c" {
			r.quitByUser = true
			if r.current != nil {
				r.current.Close()
			}
			return r, tea.Quit
		}

		if r.showAbout {
			if key.Matches(keyMsg, keys.esc, keys.about) {
				r.showAbout = false
			}
			return r, nil
		}
		if key.Matches(keyMsg, keys.about) && !r.capturingText() {
			r.showAbout = true
			return r, nil
		}
	}

	switch msg := msg.(type) {
	case NavigateTo:
		return r.navigate(msg)
	case logoutDoneMsg:
		status := "Signed out"
		if msg.err != nil {
			status = "Signed out locally: " + describeError(msg.err)
		}
		return r.navigate(NavigateTo{Page: pageLogin, Status: status})
	case authChangedMsg:
		if msg.change.Event == models.AuthEventSignedOut && r.current != r.pages[pageLogin] {
			return r.navigate(NavigateTo{Page: pageLogin, Status: "Your session has ended"})
		}
		return r, nil
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	if p, ok := updated.(page); ok {
		r.current = p
	}
	return r, cmd
}

func (r RootModel) navigate(nav NavigateTo) (tea.Model, tea.Cmd) {
	next, exists := r.pages[nav.Page]
	if !exists {
		return r, nil
	}

	if r.current != nil {
		r.current.Close()
	}
	r.showAbout = false
	r.current = next

	return r, r.current.Open(r.ctx, nav)
}

func (r RootModel) capturingText() bool {
	c, ok := r.current.(textCapturer)
	return ok && c.capturesText()
}

func (r RootModel) View() string {
	if r.showAbout {
		return renderAbout(r.buildInfo)
	}
	if r.current == nil {
		return renderPage("NOTES", "", "")
	}
	return r.current.View()
}
