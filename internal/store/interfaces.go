package store

import (
	"context"

	"github.com/MKhiriev/go-notes-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// NotesRepository is the server-side notes table.
type NotesRepository interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, page models.NotesPage) ([]models.Note, error)
	Get(ctx context.Context, id string) (models.Note, error)
	Create(ctx context.Context, note models.Note) (models.Note, error)
	Update(ctx context.Context, id, content string) (models.Note, error)
	Delete(ctx context.Context, id string) error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
