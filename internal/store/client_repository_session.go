package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/crypto"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// sessionRow is a sessions table row. Token columns hold sealed blobs.
type sessionRow struct {
	Provider     string
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresAt    int64
}

type sessionRepository struct {
	*DB
	sealer crypto.Sealer
	logger *logger.Logger
	now    func() time.Time
}

// NewSessionRepository returns a SessionRepository that seals both tokens
// with sealer before they reach the database.
func NewSessionRepository(db *DB, sealer crypto.Sealer, log *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		sealer: sealer,
		logger: log,
		now:    time.Now,
	}
}

func (r *sessionRepository) Load(ctx context.Context, provider string) (models.Session, bool, error) {
	query, args, err := loadSessionQuery(provider)
	if err != nil {
		return models.Session{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row sessionRow
	err = r.QueryRowContext(ctx, query, args...).Scan(
		&row.Provider, &row.UserID, &row.Email,
		&row.AccessToken, &row.RefreshToken, &row.TokenType, &row.ExpiresAt,
	)
	if isNoRows(err) {
		return models.Session{}, false, nil
	}
	if err != nil {
		r.logger.Err(err).Str("func", "sessionRepository.Load").Msg("error loading session")
		return models.Session{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	session, err := r.open(row)
	if errors.Is(err, crypto.ErrSealedDataCorrupted) {
		// written under another key or tampered with; sign in again
		r.logger.Warn().Str("func", "sessionRepository.Load").Str("provider", provider).Msg("dropping unreadable session")
		return models.Session{}, false, r.Delete(ctx, provider)
	}
	if err != nil {
		return models.Session{}, false, err
	}

	return session, true, nil
}

func (r *sessionRepository) Save(ctx context.Context, session models.Session) error {
	row, err := r.seal(session)
	if err != nil {
		return err
	}

	query, args, err := saveSessionQuery(row, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "sessionRepository.Save").Msg("error saving session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, provider string) error {
	query, args, err := deleteSessionQuery(provider)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "sessionRepository.Delete").Msg("error deleting session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) seal(s models.Session) (sessionRow, error) {
	access, err := r.sealer.Seal([]byte(s.AccessToken))
	if err != nil {
		return sessionRow{}, fmt.Errorf("sealing access token: %w", err)
	}

	var refresh string
	if s.RefreshToken != "" {
		if refresh, err = r.sealer.Seal([]byte(s.RefreshToken)); err != nil {
			return sessionRow{}, fmt.Errorf("sealing refresh token: %w", err)
		}
	}

	var expiresAt int64
	if !s.ExpiresAt.IsZero() {
		expiresAt = s.ExpiresAt.Unix()
	}

	return sessionRow{
		Provider:     s.Provider,
		UserID:       s.UserID,
		Email:        s.Email,
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    s.TokenType,
		ExpiresAt:    expiresAt,
	}, nil
}

func (r *sessionRepository) open(row sessionRow) (models.Session, error) {
	access, err := r.sealer.Open(row.AccessToken)
	if err != nil {
		return models.Session{}, err
	}

	var refresh []byte
	if row.RefreshToken != "" {
		if refresh, err = r.sealer.Open(row.RefreshToken); err != nil {
			return models.Session{}, err
		}
	}

	var expiresAt time.Time
	if row.ExpiresAt > 0 {
		expiresAt = time.Unix(row.ExpiresAt, 0)
	}

	return models.Session{
		Provider:     row.Provider,
		UserID:       row.UserID,
		Email:        row.Email,
		AccessToken:  string(access),
		RefreshToken: string(refresh),
		TokenType:    row.TokenType,
		ExpiresAt:    expiresAt,
	}, nil
}
