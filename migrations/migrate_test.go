// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // no expectations: goose's first query fails

	err = Migrate(context.Background(), db, DialectPostgres)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(context.Background(), db, DialectSQLite)
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

func TestMigrate_UnsupportedDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	err = Migrate(context.Background(), db, "mysql")
	if err == nil || !strings.Contains(err.Error(), "unsupported dialect") {
		t.Fatalf("expected unsupported dialect error, got: %v", err)
	}
}

func TestMigrate_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "accounts.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := Migrate(ctx, db, DialectSQLite); err != nil {
		t.Fatalf("first migration: %v", err)
	}
	// applying again is a no-op
	if err := Migrate(ctx, db, DialectSQLite); err != nil {
		t.Fatalf("second migration: %v", err)
	}

	var name string
	err = db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'accounts'`).Scan(&name)
	if err != nil {
		t.Fatalf("accounts table missing: %v", err)
	}

	if _, err := db.ExecContext(ctx, `INSERT INTO accounts (username, credential, registered_at) VALUES ('alice', 'x', '2026-01-01 00:00:00+00:00')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO accounts (username, credential, registered_at) VALUES ('alice', 'y', '2026-01-01 00:00:00+00:00')`); err == nil {
		t.Fatal("expected unique violation for duplicate username")
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO accounts (username, credential, registered_at) VALUES ('Alice', 'y', '2026-01-01 00:00:00+00:00')`); err != nil {
		t.Fatalf("usernames must be case-sensitive: %v", err)
	}
	if _, err := db.ExecContext(ctx, `UPDATE accounts SET failed_attempts = -1 WHERE username = 'alice'`); err == nil {
		t.Fatal("expected check violation for negative failed attempts")
	}

	var active bool
	var failed int
	err = db.QueryRowContext(ctx, `SELECT is_active, failed_attempts FROM accounts WHERE username = 'alice'`).Scan(&active, &failed)
	if err != nil {
		t.Fatalf("select defaults: %v", err)
	}
	if !active || failed != 0 {
		t.Errorf("expected defaults is_active=true failed_attempts=0, got %v %d", active, failed)
	}
}
