package service

import (
	"github.com/MKhiriev/go-notes-keeper/internal/adapter"
	"github.com/MKhiriev/go-notes-keeper/internal/auth"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/query"
	"github.com/MKhiriev/go-notes-keeper/internal/validators"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// ClientServices bundles the services used by the terminal UI.
type ClientServices struct {
	Auth  auth.Provider
	Notes NotesService
	Cache *query.Cache

	unsubscribe func()
}

// NewClientServices wires the validated notes service and clears the query
// cache whenever the signed-in user changes.
func NewClientServices(api adapter.NotesAPI, provider auth.Provider, cache *query.Cache, log *logger.Logger) *ClientServices {
	notes := NewNotesValidationService(validators.NewNoteValidator()).
		Wrap(NewNotesService(api, provider, cache, log))

	unsubscribe := provider.Subscribe(func(change models.AuthStateChange) {
		switch change.Event {
		case models.AuthEventSignedIn, models.AuthEventSignedOut:
			log.Debug().Str("event", string(change.Event)).Msg("clearing query cache")
			cache.Clear()
		}
	})

	return &ClientServices{
		Auth:        provider,
		Notes:       notes,
		Cache:       cache,
		unsubscribe: unsubscribe,
	}
}

// Close detaches the services from the auth provider.
func (s *ClientServices) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
