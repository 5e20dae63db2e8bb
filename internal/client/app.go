package client

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/internal/tui"
	"github.com/MKhiriev/go-notes-keeper/internal/workers"
)

var errNilDependency = errors.New("client: services, ui and workers are required")

// App owns the dashboard process lifecycle.
type App struct {
	services *service.ClientServices
	ui       UI
	workers  *workers.Workers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, ws *workers.Workers, log *logger.Logger) (*App, error) {
	if services == nil || services.Auth == nil || ui == nil || ws == nil {
		return nil, errNilDependency
	}

	return &App{
		services: services,
		ui:       ui,
		workers:  ws,
		logger:   log,
	}, nil
}

// Run restores the persisted session, starts background workers and blocks
// on the UI. Quitting from the UI is a normal exit.
func (a *App) Run(ctx context.Context) error {
	defer a.services.Close()

	if err := a.services.Auth.Restore(ctx); err != nil {
		// the login page takes over
		a.logger.Warn().Err(err).Str("func", "App.Run").Msg("could not restore session")
	}

	a.workers.Start(ctx)
	defer a.workers.Stop()

	err := a.ui.Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Msg("dashboard closed by user")
		return nil
	}

	return err
}
