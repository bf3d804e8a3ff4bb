package service

import (
	"errors"

	"github.com/MKhiriev/go-upload-desk/internal/validators"
)

var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrUserInactive        = errors.New("user inactive or deleted")
	ErrNoActiveToken       = errors.New("no active token found")
	ErrLogoutFailed        = errors.New("logout failed")
	ErrTokenRefreshFailed  = errors.New("token refresh failed")
	ErrTokenCreationFailed = errors.New("token creation failed")

	ErrFileNotFound      = errors.New("file not found")
	ErrFileAccessDenied  = errors.New("file belongs to another user")
	ErrFileDeleted       = errors.New("file is deleted")
	ErrInvalidTransition = errors.New("invalid file status transition")

	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidRole      = errors.New("invalid role")
	ErrPermissionDenied = errors.New("permission denied")

	ErrInvalidCSRFToken = errors.New("invalid csrf token")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// ValidationError reports malformed or conflicting input field by field.
// Problems spanning several fields are listed under
// [validators.FieldNonField].
type ValidationError struct {
	Fields validators.FieldErrors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

// NonFieldMessage returns the first cross-field message, if any.
func (e *ValidationError) NonFieldMessage() string {
	if msgs := e.Fields[validators.FieldNonField]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func newValidationError(fields validators.FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

func nonFieldError(msg string) *ValidationError {
	return newValidationError(validators.FieldErrors{validators.FieldNonField: {msg}})
}

// AsValidationError extracts a ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// toValidationError converts validator field errors into a ValidationError
// and passes any other error through.
func toValidationError(err error) error {
	if fe, ok := validators.AsFieldErrors(err); ok {
		return newValidationError(fe)
	}
	return err
}
