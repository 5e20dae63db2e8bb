package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/jackc/pgerrcode"
)

type notesRepository struct {
	*DB
}

func NewNotesRepository(db *DB) NotesRepository {
	return &notesRepository{DB: db}
}

func (r *notesRepository) Count(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := countNotesQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = r.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "notesRepository.Count").Msg("error counting notes")
		return 0, r.wrapDriverError(ErrScanningRow, err)
	}

	return count, nil
}

func (r *notesRepository) List(ctx context.Context, page models.NotesPage) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := listNotesQuery(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "notesRepository.List").Msg("error listing notes")
		return nil, r.wrapDriverError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, page.Limit)
	for rows.Next() {
		var note models.Note
		if err = rows.Scan(&note.ID, &note.Content, &note.CreatedAt); err != nil {
			log.Err(err).Str("func", "notesRepository.List").Msg("error scanning note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		notes = append(notes, note)
	}
	if err = rows.Err(); err != nil {
		return nil, r.wrapDriverError(ErrScanningRows, err)
	}

	return notes, nil
}

func (r *notesRepository) Get(ctx context.Context, id string) (models.Note, error) {
	query, args, err := getNoteQuery(id)
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanNote(ctx, "notesRepository.Get", query, args)
}

func (r *notesRepository) Create(ctx context.Context, note models.Note) (models.Note, error) {
	query, args, err := insertNoteQuery(note)
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := r.scanNote(ctx, "notesRepository.Create", query, args)
	if err != nil && postgresError(err) == pgerrcode.UniqueViolation {
		return models.Note{}, fmt.Errorf("%w: %s", ErrNoteAlreadyExists, note.ID)
	}

	return created, err
}

func (r *notesRepository) Update(ctx context.Context, id, content string) (models.Note, error) {
	query, args, err := updateNoteQuery(id, content)
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanNote(ctx, "notesRepository.Update", query, args)
}

func (r *notesRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := deleteNoteQuery(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "notesRepository.Delete").Msg("error deleting note")
		return r.wrapDriverError(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// scanNote runs a query returning one note row.
func (r *notesRepository) scanNote(ctx context.Context, fn, query string, args []any) (models.Note, error) {
	var note models.Note
	err := r.QueryRowContext(ctx, query, args...).Scan(&note.ID, &note.Content, &note.CreatedAt)
	if isNoRows(err) {
		return models.Note{}, ErrNoteNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error querying note")
		return models.Note{}, r.wrapDriverError(ErrScanningRow, err)
	}

	return note, nil
}
