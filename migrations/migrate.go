// Package migrations embeds the database schema and applies it with goose.
// Each supported dialect keeps its own directory of migrations.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Dialects understood by [Migrate].
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

var dialects = map[string]struct {
	dir     string
	dialect goose.Dialect
}{
	DialectSQLite:   {dir: "sqlite", dialect: goose.DialectSQLite3},
	DialectPostgres: {dir: "postgres", dialect: goose.DialectPostgres},
}

// Migrate applies every pending migration of dialect to db.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	d, ok := dialects[dialect]
	if !ok {
		return fmt.Errorf("migration error: unsupported dialect %q", dialect)
	}

	fsys, err := fs.Sub(embedMigrations, d.dir)
	if err != nil {
		return fmt.Errorf("migration error opening %s migrations: %w", d.dir, err)
	}

	provider, err := goose.NewProvider(d.dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("migration error creating provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
