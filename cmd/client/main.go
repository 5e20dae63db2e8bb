package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-notes-keeper/internal/adapter"
	"github.com/MKhiriev/go-notes-keeper/internal/auth"
	"github.com/MKhiriev/go-notes-keeper/internal/client"
	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/crypto"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/metrics"
	"github.com/MKhiriev/go-notes-keeper/internal/query"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
	"github.com/MKhiriev/go-notes-keeper/internal/tui"
	"github.com/MKhiriev/go-notes-keeper/internal/workers"
	"github.com/MKhiriev/go-notes-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(build.String())

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("notes-dashboard").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("notes-dashboard", logger.FileOptions{
		Path:       cfg.Log.FilePath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Level:      cfg.Log.Level,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	sealer, err := crypto.NewSealer(cfg.App.SessionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("create session sealer")
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, sealer, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing local storage")
		}
	}()

	provider, err := auth.NewProvider(cfg.Auth, cfg.Adapter.RequestTimeout, storages.SessionRepository, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create auth provider")
	}

	api, err := adapter.NewHTTPNotesAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create notes adapter")
	}

	cache := query.NewCache(cfg.Cache, metrics.NewManager("notes", "dashboard", metrics.NewRegistry()), log)
	services := service.NewClientServices(api, provider, cache, log)

	ui, err := tui.New(services, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, workers.NewWorkers(
		workers.NewSessionRefreshJob(provider, cfg.Workers, log),
	), log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Err(err).Msg("client run error")
	}
}
