package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildListAccountsQuery(t *testing.T) {
	query, args, err := buildListAccountsQuery()
	require.NoError(t, err)

	assert.Empty(t, args)
	assert.Equal(t,
		"SELECT id, username, registered_at, last_login_at, failed_attempts, is_active FROM accounts ORDER BY registered_at DESC, id DESC",
		query)
	assert.NotContains(t, query, "credential", "listings must never read credentials")
}

func Test_buildAggregateStatsQuery(t *testing.T) {
	since := time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC)

	query, args, err := buildAggregateStatsQuery(since)
	require.NoError(t, err)

	require.Len(t, args, 1)
	assert.Equal(t, since, args[0])

	upper := strings.ToUpper(query)
	assert.True(t, strings.HasPrefix(upper, "SELECT COUNT(*)"))
	assert.Contains(t, query, "CASE WHEN is_active THEN 1 ELSE 0 END")
	assert.Contains(t, query, "last_login_at >= $1")
	assert.Contains(t, query, "FROM accounts")
	assert.NotContains(t, query, "?", "placeholders must be rewritten to $N")
}

// SQLite numbers $N parameters by first appearance, so every hand-written
// statement must introduce them in ascending order.
func Test_staticQueries_PlaceholdersAscend(t *testing.T) {
	queries := map[string]string{
		"createAccount":         createAccount,
		"findAccountByUsername": findAccountByUsername,
		"recordSuccessfulLogin": recordSuccessfulLogin,
		"recordFailedAttempt":   recordFailedAttempt,
		"setActive":             setActive,
		"updateCredential":      updateCredential,
	}

	for name, q := range queries {
		t.Run(name, func(t *testing.T) {
			next := 1
			for i := 0; i < len(q); i++ {
				if q[i] != '$' {
					continue
				}
				j := i + 1
				for j < len(q) && q[j] >= '0' && q[j] <= '9' {
					j++
				}
				n := 0
				for _, c := range q[i+1 : j] {
					n = n*10 + int(c-'0')
				}
				require.LessOrEqual(t, n, next, "placeholder $%d introduced before $%d", n, next)
				if n == next {
					next++
				}
			}
		})
	}
}
