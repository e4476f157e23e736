package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/migrations"
)

const memoryDSN = ":memory:"

// NewConnectSQLite opens the SQLite database file at cfg.DSN, creating its
// directory if needed.
//
// The handle is limited to one open connection, so concurrent writers queue
// inside database/sql instead of failing with SQLITE_BUSY. Other processes
// holding the file are waited on for up to cfg.QueryTimeout via
// _busy_timeout.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	location, err := prepareLocalDBFile(cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error preparing database file")
		return nil, fmt.Errorf("error preparing database file: %w", err)
	}

	conn, err := sql.Open(config.DriverSQLite, sqliteDSN(cfg))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	conn.SetMaxOpenConns(1)
	// an in-memory database lives only as long as its connection
	conn.SetConnMaxLifetime(0)
	conn.SetConnMaxIdleTime(0)

	db := &DB{
		DB:                 conn,
		dialect:            migrations.DialectSQLite,
		location:           location,
		queryTimeout:       cfg.QueryTimeout,
		logger:             log,
		errorClassificator: NewSQLiteErrorClassifier(),
	}

	// ping database
	pingCtx, cancel := db.withTimeout(ctx)
	defer cancel()
	if err = conn.PingContext(pingCtx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, db.translate(err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("location", location).Msg("connected to database successfully")

	return db, nil
}

// sqliteDSN appends the busy timeout to the configured DSN, keeping any
// query parameters the user already set.
func sqliteDSN(cfg config.DB) string {
	sep := "?"
	if strings.Contains(cfg.DSN, "?") {
		sep = "&"
	}
	return cfg.DSN + sep + "_busy_timeout=" + strconv.FormatInt(cfg.QueryTimeout.Milliseconds(), 10)
}

// prepareLocalDBFile makes sure the directory of a file-backed DSN exists and
// returns the absolute path of the database file.
func prepareLocalDBFile(dsn string) (string, error) {
	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == memoryDSN || path == "" {
		return memoryDSN, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve database path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o750); err != nil {
		return "", fmt.Errorf("create database directory: %w", err)
	}

	return abs, nil
}
