package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/internal/validators"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/google/uuid"
)

// MaxNotesLimit caps the page size the API serves.
const MaxNotesLimit = 100

// NotesAPIValidationService rejects malformed requests before they reach
// storage.
type NotesAPIValidationService struct {
	inner     NotesAPIService
	validator validators.Validator
}

// NewNotesAPIValidationService validates with trimmed, non-empty content and
// a page size of at most MaxNotesLimit.
func NewNotesAPIValidationService() NotesAPIServiceWrapper {
	return &NotesAPIValidationService{
		validator: validators.NewNoteValidator(
			validators.WithTrimmedContent(),
			validators.WithMinContentLength(1),
			validators.WithMaxLimit(MaxNotesLimit),
		),
	}
}

func (v *NotesAPIValidationService) Wrap(inner NotesAPIService) NotesAPIService {
	v.inner = inner
	return v
}

func (v *NotesAPIValidationService) Count(ctx context.Context) (int64, error) {
	return v.inner.Count(ctx)
}

func (v *NotesAPIValidationService) List(ctx context.Context, page models.NotesPage) ([]models.Note, error) {
	if err := v.validator.Validate(ctx, page); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.List(ctx, page)
}

func (v *NotesAPIValidationService) Get(ctx context.Context, id string) (models.Note, error) {
	if !isNoteID(id) {
		return models.Note{}, ErrNoteNotFound
	}
	return v.inner.Get(ctx, id)
}

func (v *NotesAPIValidationService) Create(ctx context.Context, content string) (models.Note, error) {
	if err := v.validator.Validate(ctx, models.NoteContent{Content: content}); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Create(ctx, content)
}

func (v *NotesAPIValidationService) Update(ctx context.Context, id, content string) (models.Note, error) {
	if !isNoteID(id) {
		return models.Note{}, ErrNoteNotFound
	}
	if err := v.validator.Validate(ctx, models.NoteContent{Content: content}); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Update(ctx, id, content)
}

func (v *NotesAPIValidationService) Delete(ctx context.Context, id string) error {
	if !isNoteID(id) {
		return ErrNoteNotFound
	}
	return v.inner.Delete(ctx, id)
}

// isNoteID reports whether id can name a stored note. Anything else cannot
// exist, so it is answered with not found rather than a database error.
func isNoteID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
