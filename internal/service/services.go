package service

import (
	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/metrics"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
)

// Services groups the server-side services.
type Services struct {
	AuthService  AuthService
	NotesService NotesAPIService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, m *metrics.Manager) *Services {
	return &Services{
		AuthService:  NewAuthService(cfg.JWT),
		NotesService: NewNotesAPIValidationService().Wrap(NewNotesAPIService(storages.NotesRepository, m)),
	}
}
