package store

import (
	"fmt"
	"strings"
	"time"
)

// columnList joins column names for a RETURNING clause.
func columnList(columns []string) string {
	return strings.Join(columns, ", ")
}

// prefixed qualifies every column with a table alias.
func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

// sqliteTimeLayouts are the text forms sqlite hands back when it cannot
// attach a declared column type, as happens for RETURNING values.
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	time.RFC3339Nano,
}

// scanTime is a nullable timestamp that accepts native time values as well
// as the text encodings produced by sqlite.
type scanTime struct {
	Time  time.Time
	Valid bool
}

// Scan implements [database/sql.Scanner].
func (t *scanTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v, true
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (t *scanTime) parse(s string) error {
	for _, layout := range sqliteTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time, t.Valid = parsed, true
			return nil
		}
	}
	return fmt.Errorf("unparsable timestamp %q", s)
}

// ptr returns nil for NULL.
func (t scanTime) ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	tt := t.Time
	return &tt
}
