package store

import (
	"strings"

	"github.com/jackc/pgerrcode"
)

// ErrorClassification tells [DB.WithTx] whether a failed transaction may be
// run again.
type ErrorClassification int

const (
	// NonRetryable is the default for unknown errors, constraint violations
	// and malformed statements.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures such as deadlocks or a dropped
	// connection.
	Retryable
)

// uniqueViolation reports whether err is a unique constraint failure from
// either driver and returns a hint naming the violated constraint or column.
func uniqueViolation(err error) (string, bool) {
	if postgresError(err) == pgerrcode.UniqueViolation {
		return postgresConstraint(err), true
	}
	if hint := sqliteConstraint(err); hint != "" {
		return hint, true
	}
	return "", false
}

// mapUserUniqueViolation turns a unique violation on the users table into
// the matching sentinel. Other errors are returned unchanged.
func mapUserUniqueViolation(err error) error {
	hint, ok := uniqueViolation(err)
	if !ok {
		return err
	}

	switch {
	case strings.Contains(hint, "email"):
		return ErrEmailAlreadyExists
	case strings.Contains(hint, "username"):
		return ErrUsernameAlreadyExists
	}

	// unnamed constraint: username is the primary natural key
	return ErrUsernameAlreadyExists
}
