package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Positional parameters use the $N form for both drivers. SQLite numbers
// $N parameters in order of first appearance, so each statement introduces
// $1, $2, ... left to right.
const (
	accountColumns = `id, username, credential, registered_at, last_login_at, failed_attempts, is_active`

	createAccount = `INSERT INTO accounts (username, credential, registered_at, failed_attempts, is_active)
		VALUES ($1, $2, $3, 0, TRUE)
		RETURNING ` + accountColumns + `;`

	findAccountByUsername = `SELECT ` + accountColumns + `
		FROM accounts
		WHERE username = $1;`

	// last_login_at never precedes registered_at, even if the clock stepped back.
	recordSuccessfulLogin = `UPDATE accounts
		SET last_login_at = CASE WHEN $1 < registered_at THEN registered_at ELSE $1 END,
			failed_attempts = 0
		WHERE id = $2
		RETURNING ` + accountColumns + `;`

	recordFailedAttempt = `UPDATE accounts
		SET failed_attempts = failed_attempts + 1
		WHERE id = $1;`

	setActive = `UPDATE accounts
		SET is_active = $1
		WHERE id = $2;`

	updateCredential = `UPDATE accounts
		SET credential = $1
		WHERE id = $2;`
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListAccountsQuery selects every account without its credential,
// newest registration first; id breaks ties between equal timestamps.
func buildListAccountsQuery() (string, []any, error) {
	query, args, err := builder.
		Select("id", "username", "registered_at", "last_login_at", "failed_attempts", "is_active").
		From("accounts").
		OrderBy("registered_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: list accounts: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildAggregateStatsQuery counts all, active, and recently logged-in
// accounts in a single pass using conditional aggregates.
func buildAggregateStatsQuery(since time.Time) (string, []any, error) {
	query, args, err := builder.
		Select("COUNT(*)").
		Column("COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0)").
		Column(sq.Expr("COALESCE(SUM(CASE WHEN last_login_at >= ? THEN 1 ELSE 0 END), 0)", since)).
		From("accounts").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: aggregate stats: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
