package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	pageLogin     = "login"
	pageDashboard = "dashboard"
	pageCreate    = "create"
	pageEdit      = "edit"
)

// page is a screen managed by RootModel. Open is called each time the page
// becomes active and Close when it is left.
type page interface {
	tea.Model
	Open(ctx context.Context, nav NavigateTo) tea.Cmd
	Close()
}

// pageScope is the per-visit context of a page. Queries run under ctx and
// are abandoned when the page is left. Mutations run under parent so a
// request the server may already have applied is never cut off. Commands
// started during a visit carry its generation; results of an older visit
// are dropped.
type pageScope struct {
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	gen    int
}

func (s *pageScope) open(parent context.Context) {
	s.close()
	s.parent = parent
	s.ctx, s.cancel = context.WithCancel(parent)
	s.gen++
}

// mutationCtx outlives the visit.
func (s *pageScope) mutationCtx() context.Context {
	if s.parent == nil {
		return context.Background()
	}
	return s.parent
}

func (s *pageScope) close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *pageScope) current(gen int) bool {
	return s.cancel != nil && gen == s.gen
}
