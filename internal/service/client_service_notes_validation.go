package service

import (
	"context"

	"github.com/MKhiriev/go-notes-keeper/internal/validators"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// NotesValidationService rejects invalid input before it reaches the inner
// service, so no request is sent.
type NotesValidationService struct {
	inner     NotesService
	validator validators.Validator
}

func NewNotesValidationService(validator validators.Validator) NotesServiceWrapper {
	return &NotesValidationService{validator: validator}
}

func (v *NotesValidationService) Wrap(inner NotesService) NotesService {
	v.inner = inner
	return v
}

func (v *NotesValidationService) GetNotesCount(ctx context.Context) (int64, error) {
	return v.inner.GetNotesCount(ctx)
}

func (v *NotesValidationService) ListNotes(ctx context.Context, skip, limit int) ([]models.Note, error) {
	if err := v.validator.Validate(ctx, models.NotesPage{Skip: skip, Limit: limit}); err != nil {
		return nil, err
	}
	return v.inner.ListNotes(ctx, skip, limit)
}

func (v *NotesValidationService) GetNoteByID(ctx context.Context, id string) (models.Note, error) {
	if err := v.validator.Validate(ctx, models.Note{ID: id}, validators.FieldID); err != nil {
		return models.Note{}, err
	}
	return v.inner.GetNoteByID(ctx, id)
}

func (v *NotesValidationService) CreateNote(ctx context.Context, content string) (models.NoteState, error) {
	if err := v.validator.Validate(ctx, models.NoteContent{Content: content}); err != nil {
		return stateFromError(err), err
	}
	return v.inner.CreateNote(ctx, content)
}

func (v *NotesValidationService) UpdateNote(ctx context.Context, id, content string) (models.NoteState, error) {
	if err := v.validator.Validate(ctx, models.Note{ID: id, Content: content}); err != nil {
		return stateFromError(err), err
	}
	return v.inner.UpdateNote(ctx, id, content)
}

func (v *NotesValidationService) DeleteNote(ctx context.Context, id string) (models.NoteState, error) {
	if err := v.validator.Validate(ctx, models.Note{ID: id}, validators.FieldID); err != nil {
		return stateFromError(err), err
	}
	return v.inner.DeleteNote(ctx, id)
}
