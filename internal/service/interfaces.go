package service

import (
	"context"

	"github.com/MKhiriev/go-notes-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=NotesAPIServiceWrapper

// NotesAPIService is the server side of the notes REST API.
type NotesAPIService interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, page models.NotesPage) ([]models.Note, error)
	Get(ctx context.Context, id string) (models.Note, error)
	Create(ctx context.Context, content string) (models.Note, error)
	Update(ctx context.Context, id, content string) (models.Note, error)
	Delete(ctx context.Context, id string) error
}

// AuthService verifies the bearer tokens presented to the notes API.
type AuthService interface {
	ParseToken(ctx context.Context, tokenString string) (models.Claims, error)
}

// NotesAPIServiceWrapper decorates a NotesAPIService.
type NotesAPIServiceWrapper interface {
	Wrap(NotesAPIService) NotesAPIService
}
