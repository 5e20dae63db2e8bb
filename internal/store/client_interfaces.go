package store

import (
	"context"

	"github.com/MKhiriev/go-notes-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SessionRepository persists the signed-in session on the client device,
// one row per auth provider.
type SessionRepository interface {
	Load(ctx context.Context, provider string) (models.Session, bool, error)
	Save(ctx context.Context, session models.Session) error
	Delete(ctx context.Context, provider string) error
}
