package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDuplicateUsername is returned by CreateAccount when the UNIQUE
	// constraint on accounts.username rejects the insert.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrAccountNotFound is returned when a lookup matches no row or an
	// update affects no row.
	ErrAccountNotFound = errors.New("account not found")

	// ErrStoreUnavailable is returned when the database could not be reached
	// in time: the per-call timeout expired, the connection was lost, or the
	// database stayed busy/locked past its busy timeout.
	ErrStoreUnavailable = errors.New("account store unavailable")

	// ErrCorrupt is returned when a persisted row cannot be decoded into an
	// account or holds values the schema should have made impossible.
	ErrCorrupt = errors.New("account store returned corrupt data")
)

// Low-level database operation errors. These are wrapped by repository
// methods when a SQL-level step fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrUnsupportedDriver is returned when the configured driver is neither
	// sqlite3 nor pgx.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)
