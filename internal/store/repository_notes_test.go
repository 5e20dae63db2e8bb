package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotesRepo(t *testing.T) (NotesRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return NewNotesRepository(&DB{
		DB:                 db,
		logger:             logger.Nop(),
		errorClassificator: NewPostgresErrorClassifier(),
	}), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var noteRowColumns = []string{"id", "content", "created_at"}

// ── Count ───────────────────────────────────────────────────────────────────

func TestNotesRepository_Count_Success(t *testing.T) {
	repo, mock := newTestNotesRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM notes")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	count, err := repo.Count(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestNotesRepository_Count_ConnectionLostIsRetryable(t *testing.T) {
	repo, mock := newTestNotesRepo(t)

	mock.ExpectQuery("SELECT COUNT").WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.Count(context.Background())

	assert.ErrorIs(t, err, ErrTemporarilyUnavailable)
	assert.ErrorIs(t, err, ErrScanningRow)
}

// ── List ────────────────────────────────────────────────────────────────────

func TestNotesRepository_List_Success(t *testing.T) {
	repo, mock := newTestNotesRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, content, created_at FROM notes ORDER BY created_at ASC, id ASC LIMIT 2 OFFSET 4")).
		WillReturnRows(sqlmock.NewRows(noteRowColumns).
			AddRow("n1", "first note", now).
			AddRow("n2", "second note", now.Add(time.Second)))

	notes, err := repo.List(context.Background(), models.NotesPage{Skip: 4, Limit: 2})

	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "n1", notes[0].ID)
	assert.Equal(t, "second note", notes[1].Content)
}

func TestNotesRepository_List_Empty(t *testing.T) {
	repo, mock := newTestNotesRepo(t)

	mock.ExpectQuery("SELECT id, content, created_at FROM notes").
		WillReturnRows(sqlmock.NewRows(noteRowColumns))

	notes, err := repo.List(context.Background(), models.DefaultNotesPage())

	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestNotesRepository_List_ScanError(t *testing.T) {
	repo, mock := newTestNotesRepo(t)

	mock.ExpectQuery("SELECT id, content, created_at FROM notes").
		WillReturnRows(sqlmock.NewRows(noteRowColumns).AddRow("n1", "text", "not a time"))

	_, err := repo.List(context.Background(), models.DefaultNotesPage())

	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestNotesRepository_List_QueryError(t *testing.T) {
	repo, mock := newTestNotesRepo(t)

	mock.ExpectQuery("SELECT id, content, created_at FROM notes").
		WillReturnError(pgError(pgerrcode.UndefinedTable))

	_, err := repo.List(context.Background(), models.DefaultNotesPage())

	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrTemporarilyUnavailable)
}

// ── Get ─────────────────────────────────────────────────────────────────────

func TestNotesRepository_Get_Success(t *testing.T) {
	repo, mock := newTestNotesRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, content, created_at FROM notes WHERE id = $1")).
		WithArgs("n1").
		WillReturnRows(sqlmock.NewRows(noteRowColumns).AddRow("n1", "hello world", now))

	note, err := repo.Get(context.Background(), "n1")

	require.NoError(t, err)
	assert.Equal(t, "hello world", note.Content)
	assert.True(t, now.Equal(note.CreatedAt))
}

func TestNotesRepository_Get_NotFound(t *testing.T) {
	repo, mock := newTestNotesRepo(t)

	mock.ExpectQuery("SELECT id, content, created_at FROM notes WHERE").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNoteNotFound)
}

// ── Create ──────────────────────────────────────────────────────────────────

func TestNotesRepository_Create_Success(t *testing.T) {
	repo, mock := newTestNotesRepo(t)
	note := models.Note{ID: "n1", Content: "hello world", CreatedAt: time.Now().UTC()}

	mock.ExpectQuery("INSERT INTO notes").
		WithArgs(note.ID, note.Content, note.CreatedAt).
		WillReturnRows(sqlmock.NewRows(noteRowColumns).AddRow(note.ID, note.Content, note.CreatedAt))

	created, err := repo.Create(context.Background(), note)

	require.NoError(t, err)
	assert.Equal(t, note.ID, created.ID)
}

func TestNotesRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newTestNotesRepo(t)

	mock.ExpectQuery("INSERT INTO notes").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.Create(context.Background(), models.Note{ID: "n1", Content: "hello world"})

	assert.ErrorIs(t, err, ErrNoteAlreadyExists)
}

// ── Update ──────────────────────────────────────────────────────────────────

func TestNotesRepository_Update_Success(t *testing.T) {
	repo, mock := newTestNotesRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE notes SET content = $1 WHERE id = $2")).
		WithArgs("new text", "n1").
		WillReturnRows(sqlmock.NewRows(noteRowColumns).AddRow("n1", "new text", now))

	note, err := repo.Update(context.Background(), "n1", "new text")

	require.NoError(t, err)
	assert.Equal(t, "new text", note.Content)
}

func TestNotesRepository_Update_NotFound(t *testing.T) {
	repo, mock := newTestNotesRepo(t)

	mock.ExpectQuery("UPDATE notes").
		WithArgs("new text", "missing").
		WillReturnRows(sqlmock.NewRows(noteRowColumns))

	_, err := repo.Update(context.Background(), "missing", "new text")

	assert.ErrorIs(t, err, ErrNoteNotFound)
}

// ── Delete ──────────────────────────────────────────────────────────────────

func TestNotesRepository_Delete(t *testing.T) {
	tests := []struct {
		name    string
		result  driverResult
		wantErr error
	}{
		{name: "deleted", result: driverResult{affected: 1}},
		{name: "not found", result: driverResult{affected: 0}, wantErr: ErrNoteNotFound},
		{name: "deadlock", result: driverResult{err: pgError(pgerrcode.DeadlockDetected)}, wantErr: ErrTemporarilyUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestNotesRepo(t)

			exp := mock.ExpectExec(regexp.QuoteMeta("DELETE FROM notes WHERE id = $1")).WithArgs("n1")
			if tt.result.err != nil {
				exp.WillReturnError(tt.result.err)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.result.affected))
			}

			err := repo.Delete(context.Background(), "n1")
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

type driverResult struct {
	affected int64
	err      error
}
