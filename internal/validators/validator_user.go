package validators

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-upload-desk/models"
)

const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPasswordConfirm = "password_confirm"
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
)

const (
	maxUsernameLength = 150
	maxNameLength     = 150
	maxEmailLength    = 254
)

const (
	MsgInvalidUsername  = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgInvalidEmail     = "Invalid email format."
	MsgPasswordMismatch = "Passwords don't match."
)

var (
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidEmail reports whether email matches the accepted address format.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// UserValidator checks registration payloads and profile updates.
type UserValidator struct {
	passwords *PasswordValidator
}

// NewUserValidator returns a UserValidator that delegates password strength
// to passwords.
func NewUserValidator(passwords *PasswordValidator) Validator {
	return &UserValidator{passwords: passwords}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(ctx, *value, fields...)

	case models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, value, fields...)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegister(_ context.Context, req models.RegisterRequest, fields ...string) error {
	errs := FieldErrors{}

	if wants(fields, FieldUsername) {
		checkUsername(errs, req.Username)
	}
	if wants(fields, FieldEmail) {
		if req.Email == "" {
			errs.Add(FieldEmail, msgBlank)
		} else {
			checkEmail(errs, req.Email)
		}
	}
	if wants(fields, FieldFirstName) {
		checkMaxLength(errs, FieldFirstName, req.FirstName, maxNameLength)
	}
	if wants(fields, FieldLastName) {
		checkMaxLength(errs, FieldLastName, req.LastName, maxNameLength)
	}
	if wants(fields, FieldPassword) {
		if req.Password == "" {
			errs.Add(FieldPassword, msgBlank)
		} else if v.passwords != nil {
			attrs := []UserAttribute{
				{Name: "username", Value: req.Username},
				{Name: "first name", Value: req.FirstName},
				{Name: "last name", Value: req.LastName},
				{Name: "email address", Value: req.Email},
			}
			for _, msg := range v.passwords.Check(req.Password, attrs...) {
				errs.Add(FieldPassword, msg)
			}
		}
	}
	if wants(fields, FieldPasswordConfirm) {
		if req.PasswordConfirm == "" {
			errs.Add(FieldPasswordConfirm, msgBlank)
		} else if req.Password != "" && req.Password != req.PasswordConfirm {
			errs.Add(FieldNonField, MsgPasswordMismatch)
		}
	}

	return errs.Err()
}

func (v *UserValidator) validateProfileUpdate(_ context.Context, upd models.ProfileUpdate, fields ...string) error {
	errs := FieldErrors{}

	for _, field := range fields {
		switch field {
		case FieldEmail, FieldFirstName, FieldLastName:
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	if upd.Email != nil && wants(fields, FieldEmail) {
		if *upd.Email == "" {
			errs.Add(FieldEmail, msgBlank)
		} else {
			checkEmail(errs, *upd.Email)
		}
	}
	if upd.FirstName != nil && wants(fields, FieldFirstName) {
		checkMaxLength(errs, FieldFirstName, *upd.FirstName, maxNameLength)
	}
	if upd.LastName != nil && wants(fields, FieldLastName) {
		checkMaxLength(errs, FieldLastName, *upd.LastName, maxNameLength)
	}

	return errs.Err()
}

func checkUsername(errs FieldErrors, username string) {
	if strings.TrimSpace(username) == "" {
		errs.Add(FieldUsername, msgBlank)
		return
	}
	checkMaxLength(errs, FieldUsername, username, maxUsernameLength)
	if !usernamePattern.MatchString(username) {
		errs.Add(FieldUsername, MsgInvalidUsername)
	}
}

func checkEmail(errs FieldErrors, email string) {
	checkMaxLength(errs, FieldEmail, email, maxEmailLength)
	if !ValidEmail(email) {
		errs.Add(FieldEmail, MsgInvalidEmail)
	}
}

func checkMaxLength(errs FieldErrors, field, value string, limit int) {
	if utf8.RuneCountInString(value) > limit {
		errs.Add(field, fmt.Sprintf(msgTooLong, limit))
	}
}
