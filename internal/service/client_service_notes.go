package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/internal/adapter"
	"github.com/MKhiriev/go-notes-keeper/internal/app"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/query"
	"github.com/MKhiriev/go-notes-keeper/models"
)

type notesService struct {
	api    adapter.NotesAPI
	auth   SessionSource
	cache  *query.Cache
	logger *logger.Logger
}

// NewNotesService creates the client notes service. It performs no input
// validation; wrap it with NewNotesValidationService for that.
func NewNotesService(api adapter.NotesAPI, auth SessionSource, cache *query.Cache, log *logger.Logger) NotesService {
	return &notesService{
		api:    api,
		auth:   auth,
		cache:  cache,
		logger: log,
	}
}

func (s *notesService) GetNotesCount(ctx context.Context) (int64, error) {
	token, err := s.token()
	if err != nil {
		return 0, err
	}

	count, err := query.Fetch(ctx, s.cache, query.NotesCountKey(), func(ctx context.Context) (int64, error) {
		return s.api.GetNotesCount(ctx, token)
	})
	if err != nil {
		s.logger.Err(err).Str("func", "notesService.GetNotesCount").Msg("error getting notes count")
		return 0, mapAdapterError("get notes count", "", "", err)
	}

	return count, nil
}

func (s *notesService) ListNotes(ctx context.Context, skip, limit int) ([]models.Note, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}

	notes, err := query.Fetch(ctx, s.cache, query.NotesKey(skip, limit), func(ctx context.Context) ([]models.Note, error) {
		return s.api.ListNotes(ctx, token, skip, limit)
	})
	if err != nil {
		s.logger.Err(err).Str("func", "notesService.ListNotes").
			Int("skip", skip).Int("limit", limit).Msg("error listing notes")
		return nil, mapAdapterError("list notes", "", "", err)
	}

	return notes, nil
}

func (s *notesService) GetNoteByID(ctx context.Context, id string) (models.Note, error) {
	token, err := s.token()
	if err != nil {
		return models.Note{}, err
	}

	note, err := query.Fetch(ctx, s.cache, query.NoteKey(id), func(ctx context.Context) (models.Note, error) {
		return s.api.GetNote(ctx, token, id)
	})
	if errors.Is(err, adapter.ErrNotFound) {
		s.logger.Info().Str("func", "notesService.GetNoteByID").Str("note_id", id).Msg("note not found")
		return models.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	if err != nil {
		s.logger.Err(err).Str("func", "notesService.GetNoteByID").Str("note_id", id).Msg("error getting note")
		return models.Note{}, mapAdapterError("get note", id, "", err)
	}

	return note, nil
}

func (s *notesService) CreateNote(ctx context.Context, content string) (models.NoteState, error) {
	token, err := s.token()
	if err != nil {
		return stateFromError(err), err
	}

	note, err := s.api.CreateNote(ctx, token, models.NoteContent{Content: content})
	if err != nil {
		s.logger.Err(err).Str("func", "notesService.CreateNote").Msg("error creating note")
		apiErr := mapAdapterError("create note", "", app.MsgCreateNoteFailed, err)
		return stateFromError(apiErr), apiErr
	}

	s.cache.InvalidateTag(query.TagNotes, query.TagNotesCount)

	return models.NoteState{Note: &note, Message: app.MsgNoteCreated}, nil
}

func (s *notesService) UpdateNote(ctx context.Context, id, content string) (models.NoteState, error) {
	token, err := s.token()
	if err != nil {
		return stateFromError(err), err
	}

	note, err := s.api.UpdateNote(ctx, token, id, models.NoteContent{Content: content})
	if err != nil {
		s.logger.Err(err).Str("func", "notesService.UpdateNote").Str("note_id", id).Msg("error updating note")
		apiErr := mapAdapterError("update note", id, app.MsgUpdateNoteFailed, err)
		return stateFromError(apiErr), apiErr
	}

	s.cache.InvalidateTag(query.TagNotes)
	s.cache.Invalidate(query.NoteKey(id))

	return models.NoteState{Note: &note, Message: app.MsgNoteUpdated}, nil
}

func (s *notesService) DeleteNote(ctx context.Context, id string) (models.NoteState, error) {
	token, err := s.token()
	if err != nil {
		return stateFromError(err), err
	}

	if err := s.api.DeleteNote(ctx, token, id); err != nil {
		s.logger.Err(err).Str("func", "notesService.DeleteNote").Str("note_id", id).Msg("error deleting note")
		apiErr := mapAdapterError("delete note", id, app.MsgDeleteNoteFailed, err)
		return stateFromError(apiErr), apiErr
	}

	s.cache.InvalidateTag(query.TagNotes, query.TagNotesCount)
	s.cache.Invalidate(query.NoteKey(id))

	return models.NoteState{Message: app.MsgNoteDeleted}, nil
}

func (s *notesService) token() (string, error) {
	session, ok := s.auth.Session()
	if !ok {
		return "", ErrUnauthenticated
	}
	return session.AccessToken, nil
}
