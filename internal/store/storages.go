package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
)

// Storages owns the database handle and the repositories built on it.
type Storages struct {
	AccountRepository AccountRepository

	db *DB
}

// NewStorages connects to the configured backend, applies pending migrations
// and builds the repositories. The caller must Close the result.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg, log)
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error migrating database")
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		AccountRepository: NewAccountRepository(db, log),
		db:                db,
	}, nil
}

// Location describes where account data is stored, for display.
func (s *Storages) Location() string {
	return s.db.Location()
}

// Close releases the database handle.
func (s *Storages) Close() error {
	return s.db.Close()
}
