package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-auth-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/account_repository_mock.go -package=mock

// AccountRepository persists accounts and their login telemetry in the
// accounts table. Every method is a single SQL statement, so a failed call
// leaves no partial state behind.
type AccountRepository interface {
	// CreateAccount inserts a new active account with zero failed attempts
	// and no last login. A taken username yields ErrDuplicateUsername.
	CreateAccount(ctx context.Context, username string, credential models.Credential) (models.Account, error)

	// FindAccountByUsername returns the account with exactly this username
	// (case-sensitive) or ErrAccountNotFound.
	FindAccountByUsername(ctx context.Context, username string) (models.Account, error)

	// RecordSuccessfulLogin sets last_login_at to now (never earlier than
	// registered_at), resets failed_attempts to 0 and returns the updated row.
	RecordSuccessfulLogin(ctx context.Context, id int64) (models.Account, error)

	// RecordFailedAttempt increments failed_attempts by exactly one.
	RecordFailedAttempt(ctx context.Context, id int64) error

	// SetActive enables or soft-disables an account.
	SetActive(ctx context.Context, id int64, active bool) error

	// UpdateCredential replaces the stored credential.
	UpdateCredential(ctx context.Context, id int64, credential models.Credential) error

	// ListAccounts returns every account without its credential, newest
	// registration first.
	ListAccounts(ctx context.Context) ([]models.AccountSummary, error)

	// AggregateStats counts all accounts, active accounts, and accounts whose
	// last login falls within window of now.
	AggregateStats(ctx context.Context, window time.Duration) (models.AccountStats, error)
}
