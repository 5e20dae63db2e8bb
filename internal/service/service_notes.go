package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/metrics"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/models"
)

type notesAPIService struct {
	notes   store.NotesRepository
	ids     *utils.UUIDGenerator
	metrics *metrics.Manager
	now     func() time.Time
}

// NewNotesAPIService returns the repository-backed notes service. Input is
// expected to be validated by a wrapper; content is trimmed before storing.
func NewNotesAPIService(notes store.NotesRepository, m *metrics.Manager) NotesAPIService {
	return &notesAPIService{
		notes:   notes,
		ids:     utils.NewUUIDGenerator(),
		metrics: m,
		now:     time.Now,
	}
}

func (s *notesAPIService) Count(ctx context.Context) (int64, error) {
	count, err := s.notes.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting notes: %w", err)
	}
	return count, nil
}

func (s *notesAPIService) List(ctx context.Context, page models.NotesPage) ([]models.Note, error) {
	notes, err := s.notes.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	return notes, nil
}

func (s *notesAPIService) Get(ctx context.Context, id string) (models.Note, error) {
	note, err := s.notes.Get(ctx, id)
	if err != nil {
		return models.Note{}, storeError("getting note", err)
	}
	return note, nil
}

func (s *notesAPIService) Create(ctx context.Context, content string) (models.Note, error) {
	note := models.Note{
		ID:        s.ids.Generate(),
		Content:   strings.TrimSpace(content),
		CreatedAt: s.now().UTC(),
	}

	created, err := s.notes.Create(ctx, note)
	if err != nil {
		return models.Note{}, storeError("creating note", err)
	}

	s.metrics.CounterNotesCreated.Inc()
	logger.FromContext(ctx).Info().Str("note_id", created.ID).Msg("note created")

	return created, nil
}

func (s *notesAPIService) Update(ctx context.Context, id, content string) (models.Note, error) {
	note, err := s.notes.Update(ctx, id, strings.TrimSpace(content))
	if err != nil {
		return models.Note{}, storeError("updating note", err)
	}
	return note, nil
}

func (s *notesAPIService) Delete(ctx context.Context, id string) error {
	if err := s.notes.Delete(ctx, id); err != nil {
		return storeError("deleting note", err)
	}

	s.metrics.CounterNotesDeleted.Inc()
	logger.FromContext(ctx).Info().Str("note_id", id).Msg("note deleted")

	return nil
}

func storeError(op string, err error) error {
	if errors.Is(err, store.ErrNoteNotFound) {
		return ErrNoteNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
