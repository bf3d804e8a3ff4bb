package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPgError(t *testing.T) {
	tests := []struct {
		code string
		want ErrorClassification
	}{
		{pgerrcode.SerializationFailure, Retryable},
		{pgerrcode.DeadlockDetected, Retryable},
		{pgerrcode.ConnectionFailure, Retryable},
		{pgerrcode.CannotConnectNow, Retryable},
		{pgerrcode.LockNotAvailable, Retryable},
		{pgerrcode.AdminShutdown, Retryable},
		{pgerrcode.UniqueViolation, NonRetryable},
		{pgerrcode.SyntaxError, NonRetryable},
		{"XX000", NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPgError(&pgconn.PgError{Code: tt.code}))
		})
	}
}

func TestPostgresErrorClassifier_Wrapped(t *testing.T) {
	c := NewPostgresErrorClassifier()

	wrapped := fmt.Errorf("tx: %w", &pgconn.PgError{Code: pgerrcode.DeadlockDetected})
	assert.Equal(t, Retryable, c.Classify(wrapped))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
	assert.Equal(t, NonRetryable, c.Classify(nil))
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(fmt.Errorf("x: %w", sqlite3.Error{Code: sqlite3.ErrLocked})))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
}

func TestMapUserUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"pg email", pgError(pgerrcode.UniqueViolation, "users_email_key"), ErrEmailAlreadyExists},
		{"pg username", pgError(pgerrcode.UniqueViolation, "users_username_key"), ErrUsernameAlreadyExists},
		{"pg unnamed", pgError(pgerrcode.UniqueViolation, ""), ErrUsernameAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapUserUniqueViolation(tt.err), tt.want)
		})
	}

	other := errors.New("other")
	assert.Same(t, other, mapUserUniqueViolation(other))
	notUnique := pgError(pgerrcode.NotNullViolation, "users_email_key")
	assert.Equal(t, notUnique, mapUserUniqueViolation(notUnique))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "./data/app.db?_foreign_keys=on", sqliteDSN("sqlite://./data/app.db"))
	assert.Equal(t, "file::memory:?cache=shared&_foreign_keys=on", sqliteDSN("file::memory:?cache=shared"))
	assert.Equal(t, "file:x.db?_fk=1", sqliteDSN("file:x.db?_fk=1"))
}

func TestSQLiteFilePath(t *testing.T) {
	assert.Equal(t, "./data/app.db", sqliteFilePath("./data/app.db?_foreign_keys=on"))
	assert.Equal(t, "x.db", sqliteFilePath("file:x.db?_fk=1"))
	assert.Equal(t, "", sqliteFilePath("file::memory:?_foreign_keys=on"))
	assert.Equal(t, "", sqliteFilePath("file:db?mode=memory"))
}

func TestScanTime(t *testing.T) {
	want := time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		src  any
	}{
		{"native", want},
		{"sqlite text", "2026-05-01 10:30:00+00:00"},
		{"bytes", []byte("2026-05-01T10:30:00Z")},
		{"no zone", "2026-05-01 10:30:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st scanTime
			require.NoError(t, st.Scan(tt.src))
			assert.True(t, st.Valid)
			assert.True(t, st.Time.Equal(want), "got %v", st.Time)
		})
	}

	var null scanTime
	require.NoError(t, null.Scan(nil))
	assert.Nil(t, null.ptr())

	var bad scanTime
	assert.Error(t, bad.Scan("yesterday"))
	assert.Error(t, bad.Scan(42))
}
