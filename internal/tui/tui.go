// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal dashboard of the notes client.
//
// It has four pages: sign-in, the dashboard (count card and paged list),
// and the create and edit forms. Each page visit owns a context that is
// cancelled when the page is left, so queries started by a page that is no
// longer shown never write the query cache.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

var errNoServices = errors.New("tui needs the auth provider and the notes service")

type TUI struct {
	services *service.ClientServices
	build    models.AppBuildInfo
	logger   *logger.Logger

	programOptions []tea.ProgramOption
}

func New(services *service.ClientServices, build models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil || services.Auth == nil || services.Notes == nil {
		return nil, errNoServices
	}

	return &TUI{
		services:       services,
		build:          build,
		logger:         logger,
		programOptions: []tea.ProgramOption{tea.WithAltScreen()},
	}, nil
}

// newRootModel opens the dashboard when a session is already held, and the
// sign-in page otherwise.
func (t *TUI) newRootModel(ctx context.Context) RootModel {
	pages := map[string]page{
		pageLogin:     NewLoginModel(t.services.Auth),
		pageDashboard: NewDashboardModel(t.services, t.logger),
		pageCreate:    NewNoteFormModel(t.services, formCreate, t.logger),
		pageEdit:      NewNoteFormModel(t.services, formEdit, t.logger),
	}

	start := pageLogin
	if t.services.Auth.IsAuthenticated() {
		start = pageDashboard
	}

	return NewRootModel(ctx, pages, start, t.build)
}

// Run shows the dashboard until the user quits or ctx is cancelled.
// It returns ErrUserQuit when the user pressed ctrl+c.
func (t *TUI) Run(ctx context.Context) error {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.programOptions...)
	program := tea.NewProgram(t.newRootModel(ctx), opts...)

	unsubscribe := t.services.Auth.Subscribe(func(change models.AuthStateChange) {
		program.Send(authChangedMsg{change: change})
	})
	defer unsubscribe()

	finalModel, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	if result, ok := finalModel.(RootModel); ok && result.quitByUser {
		return ErrUserQuit
	}
	return nil
}
