package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/crypto"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
)

// ClientStorages groups the client-side repositories. It holds only the
// session repository; notes live on the remote API.
type ClientStorages struct {
	SessionRepository SessionRepository

	db *DB
}

// NewClientStorages opens the SQLite file at cfg.SessionDSN, creating it when
// missing, runs migrations and wires a [SessionRepository] sealing tokens
// with sealer.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, sealer crypto.Sealer, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(ctx, cfg.SessionDSN, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SessionRepository: NewSessionRepository(db, sealer, log),
		db:                db,
	}, nil
}

func (s *ClientStorages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
