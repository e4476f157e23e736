package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// accountRepository is the database/sql implementation of [AccountRepository]
// shared by the SQLite and PostgreSQL connections.
//
// All methods obtain a context-scoped logger via [logger.FromContext] and run
// under the connection's per-call timeout.
type accountRepository struct {
	db     *DB
	now    func() time.Time
	logger *logger.Logger
}

// NewAccountRepository constructs an [AccountRepository] backed by db.
// Timestamps come from the wall clock in UTC.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		now:    func() time.Time { return time.Now() },
		logger: logger,
	}
}

// timestamp is the repository's single clock reading, normalised to UTC at
// the precision both backends store.
func (r *accountRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

// CreateAccount implements [AccountRepository].
func (r *accountRepository) CreateAccount(ctx context.Context, username string, credential models.Credential) (models.Account, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	account, err := r.queryAccount(ctx, createAccount, username, string(credential), r.timestamp())
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			log.Info().Str("func", "*accountRepository.CreateAccount").Str("username", username).Msg("username already taken")
		} else {
			log.Err(err).Str("func", "*accountRepository.CreateAccount").Str("username", username).Msg("error creating account")
		}
		return models.Account{}, err
	}

	return account, nil
}

// FindAccountByUsername implements [AccountRepository].
func (r *accountRepository) FindAccountByUsername(ctx context.Context, username string) (models.Account, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	account, err := r.queryAccount(ctx, findAccountByUsername, username)
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		log.Err(err).Str("func", "*accountRepository.FindAccountByUsername").Str("username", username).Msg("error finding account")
	}

	return account, err
}

// RecordSuccessfulLogin implements [AccountRepository].
func (r *accountRepository) RecordSuccessfulLogin(ctx context.Context, id int64) (models.Account, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	account, err := r.queryAccount(ctx, recordSuccessfulLogin, r.timestamp(), id)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.RecordSuccessfulLogin").Int64("account_id", id).Msg("error recording successful login")
		return models.Account{}, err
	}

	return account, nil
}

// RecordFailedAttempt implements [AccountRepository]. The increment happens
// inside the UPDATE, so concurrent failures are never lost.
func (r *accountRepository) RecordFailedAttempt(ctx context.Context, id int64) error {
	return r.execUpdate(ctx, "*accountRepository.RecordFailedAttempt", id, recordFailedAttempt, id)
}

// SetActive implements [AccountRepository].
func (r *accountRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.execUpdate(ctx, "*accountRepository.SetActive", id, setActive, active, id)
}

// UpdateCredential implements [AccountRepository].
func (r *accountRepository) UpdateCredential(ctx context.Context, id int64, credential models.Credential) error {
	return r.execUpdate(ctx, "*accountRepository.UpdateCredential", id, updateCredential, string(credential), id)
}

// ListAccounts implements [AccountRepository].
func (r *accountRepository) ListAccounts(ctx context.Context) ([]models.AccountSummary, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAccountsQuery()
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ListAccounts").Msg("error building query")
		return nil, err
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err = r.db.translate(err)
		log.Err(err).Str("func", "*accountRepository.ListAccounts").Msg("error querying accounts")
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.AccountSummary, 0)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			log.Err(err).Str("func", "*accountRepository.ListAccounts").Msg("error scanning account row")
			return nil, fmt.Errorf("list accounts: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		err = r.db.translate(err)
		log.Err(err).Str("func", "*accountRepository.ListAccounts").Msg("error iterating accounts")
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return summaries, nil
}

// AggregateStats implements [AccountRepository].
func (r *accountRepository) AggregateStats(ctx context.Context, window time.Duration) (models.AccountStats, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildAggregateStatsQuery(r.timestamp().Add(-window))
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.AggregateStats").Msg("error building query")
		return models.AccountStats{}, err
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err = r.db.translate(err)
		log.Err(err).Str("func", "*accountRepository.AggregateStats").Msg("error querying stats")
		return models.AccountStats{}, fmt.Errorf("aggregate stats: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		err := r.db.translate(rows.Err())
		if err == nil {
			err = fmt.Errorf("%w: aggregate query returned no row", ErrCorrupt)
		}
		log.Err(err).Str("func", "*accountRepository.AggregateStats").Msg("error reading stats")
		return models.AccountStats{}, fmt.Errorf("aggregate stats: %w", err)
	}

	stats := models.AccountStats{Window: window}
	if err := rows.Scan(&stats.Total, &stats.Active, &stats.RecentLogins); err != nil {
		log.Err(err).Str("func", "*accountRepository.AggregateStats").Msg("error scanning stats")
		return models.AccountStats{}, fmt.Errorf("%w: aggregate stats: %w", ErrCorrupt, err)
	}

	return stats, nil
}

// queryAccount runs a statement returning at most one full account row.
//
// Driver errors (from the query itself or from stepping to the row) go
// through [DB.translate]; a row that cannot be decoded is [ErrCorrupt]; no
// row is [ErrAccountNotFound].
func (r *accountRepository) queryAccount(ctx context.Context, query string, args ...any) (models.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return models.Account{}, r.db.translate(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return models.Account{}, r.db.translate(err)
		}
		return models.Account{}, ErrAccountNotFound
	}

	account, err := scanAccount(rows)
	if err != nil {
		return models.Account{}, err
	}

	if err := rows.Close(); err != nil {
		return models.Account{}, r.db.translate(err)
	}

	return account, nil
}

// execUpdate runs a single-row UPDATE and reports [ErrAccountNotFound] when
// no row matched.
func (r *accountRepository) execUpdate(ctx context.Context, funcName string, id int64, query string, args ...any) error {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		err = r.db.translate(err)
		log.Err(err).Str("func", funcName).Int64("account_id", id).Msg("error executing update")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Int64("account_id", id).Msg("error reading affected rows")
		return r.db.translate(err)
	}
	if affected == 0 {
		log.Warn().Str("func", funcName).Int64("account_id", id).Msg("no account was updated")
		return ErrAccountNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var (
		account      models.Account
		credential   string
		registeredAt nullTime
		lastLogin    nullTime
	)

	if err := row.Scan(&account.ID, &account.Username, &credential, &registeredAt, &lastLogin, &account.FailedAttempts, &account.IsActive); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	switch {
	case !registeredAt.Valid:
		return models.Account{}, fmt.Errorf("%w: account %d has no registration time", ErrCorrupt, account.ID)
	case account.FailedAttempts < 0:
		return models.Account{}, fmt.Errorf("%w: account %d has negative failed attempts", ErrCorrupt, account.ID)
	case credential == "":
		return models.Account{}, fmt.Errorf("%w: account %d has an empty credential", ErrCorrupt, account.ID)
	}

	account.Credential = models.Credential(credential)
	account.RegisteredAt = registeredAt.Time
	account.LastLoginAt = lastLogin.Ptr()

	return account, nil
}

func scanSummary(row rowScanner) (models.AccountSummary, error) {
	var (
		summary      models.AccountSummary
		registeredAt nullTime
		lastLogin    nullTime
	)

	if err := row.Scan(&summary.ID, &summary.Username, &registeredAt, &lastLogin, &summary.FailedAttempts, &summary.IsActive); err != nil {
		return models.AccountSummary{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	switch {
	case !registeredAt.Valid:
		return models.AccountSummary{}, fmt.Errorf("%w: account %d has no registration time", ErrCorrupt, summary.ID)
	case summary.FailedAttempts < 0:
		return models.AccountSummary{}, fmt.Errorf("%w: account %d has negative failed attempts", ErrCorrupt, summary.ID)
	}

	summary.RegisteredAt = registeredAt.Time
	summary.LastLoginAt = lastLogin.Ptr()

	return summary, nil
}
