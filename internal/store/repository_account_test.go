package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow     = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	registeredAt = time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

	accountRowColumns = []string{"id", "username", "credential", "registered_at", "last_login_at", "failed_attempts", "is_active"}
	summaryRowColumns = []string{"id", "username", "registered_at", "last_login_at", "failed_attempts", "is_active"}
)

// timeArg matches a bound time.Time by instant rather than representation.
type timeArg struct{ want time.Time }

func (a timeArg) Match(v driver.Value) bool {
	got, ok := v.(time.Time)
	return ok && got.Equal(a.want)
}

func newTestAccountRepo(t *testing.T, classifier ErrorClassificator) (*accountRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	l := logger.Nop()
	repo := &accountRepository{
		db: &DB{
			DB:                 db,
			dialect:            "postgres",
			queryTimeout:       time.Second,
			errorClassificator: classifier,
			logger:             l,
		},
		now:    func() time.Time { return fixedNow },
		logger: l,
	}
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func sqliteError(code sqlite3.ErrNo, extended sqlite3.ErrNoExtended) error {
	return sqlite3.Error{Code: code, ExtendedCode: extended}
}

func TestCreateAccount_Success(t *testing.T) {
	repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())

	mock.ExpectQuery(regexp.QuoteMeta(createAccount)).
		WithArgs("alice", "argon2id$cred", timeArg{fixedNow}).
		WillReturnRows(sqlmock.NewRows(accountRowColumns).
			AddRow(1, "alice", "argon2id$cred", fixedNow, nil, 0, true))

	account, err := repo.CreateAccount(context.Background(), "alice", "argon2id$cred")
	require.NoError(t, err)

	assert.Equal(t, models.Account{
		ID:           1,
		Username:     "alice",
		Credential:   "argon2id$cred",
		RegisteredAt: fixedNow,
		IsActive:     true,
	}, account)
}

func TestCreateAccount_Errors(t *testing.T) {
	tests := []struct {
		name       string
		classifier ErrorClassificator
		err        error
		want       error
	}{
		{name: "postgres unique violation", classifier: NewPostgresErrorClassifier(), err: pgError(pgerrcode.UniqueViolation), want: ErrDuplicateUsername},
		{name: "sqlite unique violation", classifier: NewSQLiteErrorClassifier(), err: sqliteError(sqlite3.ErrConstraint, sqlite3.ErrConstraintUnique), want: ErrDuplicateUsername},
		{name: "sqlite busy", classifier: NewSQLiteErrorClassifier(), err: sqliteError(sqlite3.ErrBusy, 0), want: ErrStoreUnavailable},
		{name: "postgres serialization failure", classifier: NewPostgresErrorClassifier(), err: pgError(pgerrcode.SerializationFailure), want: ErrStoreUnavailable},
		{name: "deadline", classifier: NewPostgresErrorClassifier(), err: context.DeadlineExceeded, want: ErrStoreUnavailable},
		{name: "bad connection", classifier: NewSQLiteErrorClassifier(), err: driver.ErrBadConn, want: ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestAccountRepo(t, tt.classifier)

			mock.ExpectQuery(regexp.QuoteMeta(createAccount)).
				WithArgs("alice", "cred", sqlmock.AnyArg()).
				WillReturnError(tt.err)

			_, err := repo.CreateAccount(context.Background(), "alice", "cred")
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateAccount_UnexpectedErrorPassesThrough(t *testing.T) {
	repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())
	boom := pgError(pgerrcode.UndefinedTable)

	mock.ExpectQuery(regexp.QuoteMeta(createAccount)).WillReturnError(boom)

	_, err := repo.CreateAccount(context.Background(), "alice", "cred")
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDuplicateUsername)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
}

func TestCreateAccount_ScanError(t *testing.T) {
	repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())

	mock.ExpectQuery(regexp.QuoteMeta(createAccount)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1)) // intentionally wrong shape

	_, err := repo.CreateAccount(context.Background(), "alice", "cred")
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestFindAccountByUsername(t *testing.T) {
	lastLogin := fixedNow.Add(-time.Hour)

	t.Run("found", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())

		mock.ExpectQuery(regexp.QuoteMeta(findAccountByUsername)).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(accountRowColumns).
				AddRow(7, "alice", "cred", registeredAt, lastLogin, 2, false))

		account, err := repo.FindAccountByUsername(context.Background(), "alice")
		require.NoError(t, err)

		assert.Equal(t, int64(7), account.ID)
		assert.Equal(t, models.Credential("cred"), account.Credential)
		assert.Equal(t, registeredAt, account.RegisteredAt)
		require.NotNil(t, account.LastLoginAt)
		assert.True(t, lastLogin.Equal(*account.LastLoginAt))
		assert.Equal(t, 2, account.FailedAttempts)
		assert.False(t, account.IsActive)
	})

	t.Run("text timestamps", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t, NewSQLiteErrorClassifier())

		mock.ExpectQuery(regexp.QuoteMeta(findAccountByUsername)).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(accountRowColumns).
				AddRow(7, "alice", "cred", "2026-10-01 09:30:00+00:00", nil, 0, true))

		account, err := repo.FindAccountByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.True(t, registeredAt.Equal(account.RegisteredAt))
		assert.Nil(t, account.LastLoginAt)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())

		mock.ExpectQuery(regexp.QuoteMeta(findAccountByUsername)).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(accountRowColumns))

		_, err := repo.FindAccountByUsername(context.Background(), "ghost")
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("corrupt rows", func(t *testing.T) {
		rows := map[string][]driver.Value{
			"negative failed attempts": {7, "alice", "cred", registeredAt, nil, -1, true},
			"empty credential":         {7, "alice", "", registeredAt, nil, 0, true},
			"null registration":        {7, "alice", "cred", nil, nil, 0, true},
			"garbage timestamp":        {7, "alice", "cred", "yesterday", nil, 0, true},
		}

		for name, row := range rows {
			t.Run(name, func(t *testing.T) {
				repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())

				mock.ExpectQuery(regexp.QuoteMeta(findAccountByUsername)).
					WillReturnRows(sqlmock.NewRows(accountRowColumns).AddRow(row...))

				_, err := repo.FindAccountByUsername(context.Background(), "alice")
				require.ErrorIs(t, err, ErrCorrupt)
			})
		}
	})

	t.Run("row iteration error", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t, NewSQLiteErrorClassifier())

		mock.ExpectQuery(regexp.QuoteMeta(findAccountByUsername)).
			WillReturnRows(sqlmock.NewRows(accountRowColumns).
				AddRow(7, "alice", "cred", registeredAt, nil, 0, true).
				RowError(0, sqliteError(sqlite3.ErrLocked, 0)))

		_, err := repo.FindAccountByUsername(context.Background(), "alice")
		require.ErrorIs(t, err, ErrStoreUnavailable)
	})
}

func TestRecordSuccessfulLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())

		mock.ExpectQuery(regexp.QuoteMeta(recordSuccessfulLogin)).
			WithArgs(timeArg{fixedNow}, int64(7)).
			WillReturnRows(sqlmock.NewRows(accountRowColumns).
				AddRow(7, "alice", "cred", registeredAt, fixedNow, 0, true))

		account, err := repo.RecordSuccessfulLogin(context.Background(), 7)
		require.NoError(t, err)
		require.NotNil(t, account.LastLoginAt)
		assert.True(t, fixedNow.Equal(*account.LastLoginAt))
		assert.Zero(t, account.FailedAttempts)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())

		mock.ExpectQuery(regexp.QuoteMeta(recordSuccessfulLogin)).
			WithArgs(sqlmock.AnyArg(), int64(99)).
			WillReturnRows(sqlmock.NewRows(accountRowColumns))

		_, err := repo.RecordSuccessfulLogin(context.Background(), 99)
		require.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestUpdates(t *testing.T) {
	tests := []struct {
		name  string
		query string
		args  []driver.Value
		call  func(r *accountRepository) error
	}{
		{
			name:  "RecordFailedAttempt",
			query: recordFailedAttempt,
			args:  []driver.Value{int64(7)},
			call: func(r *accountRepository) error {
				return r.RecordFailedAttempt(context.Background(), 7)
			},
		},
		{
			name:  "SetActive",
			query: setActive,
			args:  []driver.Value{false, int64(7)},
			call: func(r *accountRepository) error {
				return r.SetActive(context.Background(), 7, false)
			},
		},
		{
			name:  "UpdateCredential",
			query: updateCredential,
			args:  []driver.Value{"new-cred", int64(7)},
			call: func(r *accountRepository) error {
				return r.UpdateCredential(context.Background(), 7, "new-cred")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/success", func(t *testing.T) {
			repo, mock := newTestAccountRepo(t, NewSQLiteErrorClassifier())
			mock.ExpectExec(regexp.QuoteMeta(tt.query)).
				WithArgs(tt.args...).
				WillReturnResult(sqlmock.NewResult(0, 1))

			require.NoError(t, tt.call(repo))
		})

		t.Run(tt.name+"/not found", func(t *testing.T) {
			repo, mock := newTestAccountRepo(t, NewSQLiteErrorClassifier())
			mock.ExpectExec(regexp.QuoteMeta(tt.query)).
				WithArgs(tt.args...).
				WillReturnResult(sqlmock.NewResult(0, 0))

			require.ErrorIs(t, tt.call(repo), ErrAccountNotFound)
		})

		t.Run(tt.name+"/busy", func(t *testing.T) {
			repo, mock := newTestAccountRepo(t, NewSQLiteErrorClassifier())
			mock.ExpectExec(regexp.QuoteMeta(tt.query)).
				WillReturnError(sqliteError(sqlite3.ErrBusy, 0))

			require.ErrorIs(t, tt.call(repo), ErrStoreUnavailable)
		})

		t.Run(tt.name+"/rows affected error", func(t *testing.T) {
			repo, mock := newTestAccountRepo(t, NewSQLiteErrorClassifier())
			mock.ExpectExec(regexp.QuoteMeta(tt.query)).
				WillReturnResult(sqlmock.NewErrorResult(errors.New("no rows affected info")))

			require.Error(t, tt.call(repo))
		})
	}
}

func TestListAccounts(t *testing.T) {
	query, _, err := buildListAccountsQuery()
	require.NoError(t, err)

	t.Run("ordered rows", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())
		later := registeredAt.Add(time.Hour)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WillReturnRows(sqlmock.NewRows(summaryRowColumns).
				AddRow(2, "bob", later, nil, 3, false).
				AddRow(1, "alice", registeredAt, fixedNow, 0, true))

		summaries, err := repo.ListAccounts(context.Background())
		require.NoError(t, err)
		require.Len(t, summaries, 2)

		assert.Equal(t, "bob", summaries[0].Username)
		assert.Nil(t, summaries[0].LastLoginAt)
		assert.Equal(t, 3, summaries[0].FailedAttempts)
		assert.False(t, summaries[0].IsActive)

		assert.Equal(t, "alice", summaries[1].Username)
		require.NotNil(t, summaries[1].LastLoginAt)
	})

	t.Run("empty", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())
		mock.ExpectQuery(regexp.QuoteMeta(query)).WillReturnRows(sqlmock.NewRows(summaryRowColumns))

		summaries, err := repo.ListAccounts(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, summaries)
		assert.Empty(t, summaries)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())
		mock.ExpectQuery(regexp.QuoteMeta(query)).WillReturnError(pgError(pgerrcode.CannotConnectNow))

		_, err := repo.ListAccounts(context.Background())
		require.ErrorIs(t, err, ErrStoreUnavailable)
	})

	t.Run("corrupt row", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WillReturnRows(sqlmock.NewRows(summaryRowColumns).AddRow(1, "alice", registeredAt, nil, -4, true))

		_, err := repo.ListAccounts(context.Background())
		require.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestAggregateStats(t *testing.T) {
	window := 7 * 24 * time.Hour
	query, _, err := buildAggregateStatsQuery(fixedNow.Add(-window))
	require.NoError(t, err)

	t.Run("counts", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(timeArg{fixedNow.Add(-window)}).
			WillReturnRows(sqlmock.NewRows([]string{"total", "active", "recent"}).AddRow(5, 4, 2))

		stats, err := repo.AggregateStats(context.Background(), window)
		require.NoError(t, err)
		assert.Equal(t, models.AccountStats{Total: 5, Active: 4, RecentLogins: 2, Window: window}, stats)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())
		mock.ExpectQuery(regexp.QuoteMeta(query)).WillReturnError(context.DeadlineExceeded)

		_, err := repo.AggregateStats(context.Background(), window)
		require.ErrorIs(t, err, ErrStoreUnavailable)
	})

	t.Run("no row", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WillReturnRows(sqlmock.NewRows([]string{"total", "active", "recent"}))

		_, err := repo.AggregateStats(context.Background(), window)
		require.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("scan error", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t, NewPostgresErrorClassifier())
		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WillReturnRows(sqlmock.NewRows([]string{"total", "active", "recent"}).AddRow("many", 1, 1))

		_, err := repo.AggregateStats(context.Background(), window)
		require.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestTimestamp_UTCMicroseconds(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	repo := &accountRepository{now: func() time.Time {
		return time.Date(2026, 10, 18, 15, 0, 0, 123456789, moscow)
	}}

	got := repo.timestamp()
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, time.Date(2026, 10, 18, 12, 0, 0, 123456000, time.UTC), got)
}
