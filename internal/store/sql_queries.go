package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-notes-keeper/models"
)

const (
	notesTable    = "notes"
	sessionsTable = "sessions"
)

var (
	psql   = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

	noteColumns    = []string{"id", "content", "created_at"}
	sessionColumns = []string{"provider", "user_id", "email", "access_token", "refresh_token", "token_type", "expires_at"}
)

func countNotesQuery() (string, []any, error) {
	return psql.Select("COUNT(*)").From(notesTable).ToSql()
}

func listNotesQuery(page models.NotesPage) (string, []any, error) {
	return psql.Select(noteColumns...).
		From(notesTable).
		OrderBy("created_at ASC", "id ASC").
		Offset(uint64(page.Skip)).
		Limit(uint64(page.Limit)).
		ToSql()
}

func getNoteQuery(id string) (string, []any, error) {
	return psql.Select(noteColumns...).
		From(notesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func insertNoteQuery(note models.Note) (string, []any, error) {
	return psql.Insert(notesTable).
		Columns(noteColumns...).
		Values(note.ID, note.Content, note.CreatedAt).
		Suffix("RETURNING id, content, created_at").
		ToSql()
}

func updateNoteQuery(id, content string) (string, []any, error) {
	return psql.Update(notesTable).
		Set("content", content).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, content, created_at").
		ToSql()
}

func deleteNoteQuery(id string) (string, []any, error) {
	return psql.Delete(notesTable).Where(sq.Eq{"id": id}).ToSql()
}

func loadSessionQuery(provider string) (string, []any, error) {
	return sqlite.Select(sessionColumns...).
		From(sessionsTable).
		Where(sq.Eq{"provider": provider}).
		ToSql()
}

// saveSessionQuery upserts the single row kept per provider.
func saveSessionQuery(row sessionRow, now time.Time) (string, []any, error) {
	return sqlite.Insert(sessionsTable).
		Columns(append(sessionColumns, "updated_at")...).
		Values(row.Provider, row.UserID, row.Email, row.AccessToken, row.RefreshToken, row.TokenType, row.ExpiresAt, now.Unix()).
		Suffix(`ON CONFLICT (provider) DO UPDATE SET
			user_id = excluded.user_id,
			email = excluded.email,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type = excluded.token_type,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`).
		ToSql()
}

func deleteSessionQuery(provider string) (string, []any, error) {
	return sqlite.Delete(sessionsTable).Where(sq.Eq{"provider": provider}).ToSql()
}
