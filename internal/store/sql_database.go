package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/migrations"
)

// ErrorClassificator maps driver-specific errors onto an [ErrorClassification].
// There is one implementation per supported driver.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB is a *sql.DB bound to one dialect, together with the error classifier
// and per-call timeout that go with it.
type DB struct {
	*sql.DB
	dialect            string
	location           string
	queryTimeout       time.Duration
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies all pending schema migrations for the connection's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect)
}

// Location describes where the data lives: an absolute file path for SQLite,
// a password-redacted URL for PostgreSQL.
func (db *DB) Location() string {
	return db.location
}

// withTimeout bounds ctx by the configured per-call timeout.
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, db.queryTimeout)
}

// translate maps a driver or database/sql error onto the store's sentinel
// errors, keeping the original error in the chain. Errors it does not
// recognise are returned unchanged.
//
// accounts.username is the only unique column written by the application,
// so every unique violation is reported as [ErrDuplicateUsername].
func (db *DB) translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	switch db.errorClassificator.Classify(err) {
	case UniqueViolation:
		return fmt.Errorf("%w: %w", ErrDuplicateUsername, err)
	case Retryable:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return err
}
