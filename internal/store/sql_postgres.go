package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/migrations"
)

// NewConnectPostgres opens a pgx-backed *sql.DB pool sized by
// cfg.MaxOpenConns and pings it within cfg.QueryTimeout.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open(config.DriverPostgres, cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxOpenConns)

	db := &DB{
		DB:                 conn,
		dialect:            migrations.DialectPostgres,
		location:           redactDSN(cfg.DSN),
		queryTimeout:       cfg.QueryTimeout,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}

	// ping database
	pingCtx, cancel := db.withTimeout(ctx)
	defer cancel()
	if err = conn.PingContext(pingCtx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, db.translate(err)
	}
	log.Info().Str("func", "NewConnectPostgres").Str("location", db.location).Msg("connected to database successfully")

	return db, nil
}

// redactDSN hides the password of URL-style DSNs. Key/value DSNs are
// replaced entirely since they cannot be redacted reliably.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "postgres (key/value DSN)"
	}
	return u.Redacted()
}
