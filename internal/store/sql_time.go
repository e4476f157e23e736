package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// nullTime scans a nullable timestamp column. pgx always hands back
// time.Time; go-sqlite3 only does so when it knows the declared column type,
// which it does not for RETURNING clauses, so text values are parsed with the
// driver's own timestamp layouts.
type nullTime struct {
	Time  time.Time
	Valid bool
}

// Scan implements [database/sql.Scanner].
func (t *nullTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v.UTC(), true
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (t *nullTime) parse(s string) error {
	s = strings.TrimSuffix(s, "Z")
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time, t.Valid = parsed.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("unparsable timestamp %q", s)
}

// Ptr returns nil for NULL and a pointer to the UTC time otherwise.
func (t nullTime) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	utc := t.Time
	return &utc
}
