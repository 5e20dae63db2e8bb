// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	// no expectations registered, so goose's first statement fails
	err = Migrate(db, Postgres)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, Postgres)
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	err = Migrate(db, Dialect("oracle"))
	if err == nil || !strings.Contains(err.Error(), "unknown dialect") {
		t.Errorf("expected unknown dialect error, got: %v", err)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, dir := range []string{string(Postgres), string(SQLite)} {
		entries, err := fs.ReadDir(embedMigrations, dir)
		if err != nil {
			t.Fatalf("reading %s migrations: %v", dir, err)
		}
		if len(entries) == 0 {
			t.Errorf("no %s migrations embedded", dir)
		}

		for _, e := range entries {
			body, err := fs.ReadFile(embedMigrations, dir+"/"+e.Name())
			if err != nil {
				t.Fatalf("reading %s: %v", e.Name(), err)
			}
			if !strings.Contains(string(body), "-- +goose Up") || !strings.Contains(string(body), "-- +goose Down") {
				t.Errorf("%s/%s lacks goose annotations", dir, e.Name())
			}
		}
	}
}
