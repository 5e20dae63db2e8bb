package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/migrations"
)

// DB is a database handle plus the classifier used to translate driver
// errors.
type DB struct {
	*sql.DB
	dialect            migrations.Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the migrations of the handle's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// wrapDriverError tags err with ErrTemporarilyUnavailable when the classifier
// deems it retryable, and with base otherwise.
func (db *DB) wrapDriverError(base, err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", base, ErrTemporarilyUnavailable, err)
	}
	return fmt.Errorf("%w: %w", base, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
