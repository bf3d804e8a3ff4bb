package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-upload-desk/internal/app"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/store"
	"github.com/MKhiriev/go-upload-desk/internal/utils"
	"github.com/MKhiriev/go-upload-desk/internal/validators"
	"github.com/MKhiriev/go-upload-desk/models"
)

// authService is the concrete implementation of AuthService.
// Passwords are stored as argon2id hashes; tokens are random opaque keys
// persisted through the TokenRepository, one per user.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenRepository stores the single live token of every user.
	tokenRepository store.TokenRepository

	// validator checks registration payloads, password strength included.
	validator validators.Validator

	// generateKey produces new token keys.
	generateKey func() (string, error)

	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(users store.UserRepository, tokens store.TokenRepository, validator validators.Validator, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  users,
		tokenRepository: tokens,
		validator:       validator,
		generateKey:     utils.GenerateTokenKey,
		now:             time.Now,
		logger:          logger,
	}
}

// Register creates a new account and issues its token.
//
// Format rules, password strength and username/email uniqueness are checked
// together so the caller sees every failing field at once. A uniqueness race
// lost at insert time is reported the same way.
//
// Returns the persisted user and token or:
//   - *ValidationError when any field is rejected.
//   - A wrapped storage error if a repository call fails.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.AuthToken, error) {
	log := logger.FromContext(ctx)

	fields := validators.FieldErrors{}
	if err := a.validator.Validate(ctx, req); err != nil {
		fe, ok := validators.AsFieldErrors(err)
		if !ok {
			return models.User{}, models.AuthToken{}, fmt.Errorf("registration validation: %w", err)
		}
		fields.Merge(fe)
	}

	if !fields.Has(validators.FieldUsername) {
		taken, err := a.userRepository.UsernameTaken(ctx, req.Username, 0)
		if err != nil {
			return models.User{}, models.AuthToken{}, fmt.Errorf("username uniqueness check failed: %w", err)
		}
		if taken {
			fields.Add(validators.FieldUsername, app.MsgUsernameTaken)
		}
	}
	if !fields.Has(validators.FieldEmail) {
		taken, err := a.userRepository.EmailTaken(ctx, req.Email, 0)
		if err != nil {
			return models.User{}, models.AuthToken{}, fmt.Errorf("email uniqueness check failed: %w", err)
		}
		if taken {
			fields.Add(validators.FieldEmail, app.MsgEmailTaken)
		}
	}

	if len(fields) > 0 {
		log.Debug().Str("username", req.Username).Any("errors", fields).Msg("registration rejected")
		return models.User{}, models.AuthToken{}, newValidationError(fields)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return models.User{}, models.AuthToken{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  true,
		Role:      models.DefaultRole,
	})
	switch {
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return models.User{}, models.AuthToken{}, newValidationError(validators.FieldErrors{validators.FieldUsername: {app.MsgUsernameTaken}})
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return models.User{}, models.AuthToken{}, newValidationError(validators.FieldErrors{validators.FieldEmail: {app.MsgEmailTaken}})
	case err != nil:
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, models.AuthToken{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.issueToken(ctx, user.ID)
	if err != nil {
		return models.User{}, models.AuthToken{}, err
	}

	log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, token, nil
}

// Login authenticates an existing user.
//
// An unknown username, a wrong password and a deactivated account all yield
// the same *ValidationError so the response does not reveal which one it was.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.AuthToken, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" {
		return models.User{}, models.AuthToken{}, nonFieldError(app.MsgMissingCredentials)
	}

	user, err := a.userRepository.FindUserByUsername(ctx, req.Username)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("username", req.Username).Msg("login for unknown user")
		return models.User{}, models.AuthToken{}, nonFieldError(app.MsgInvalidCredentials)
	}
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user search by username failed")
		return models.User{}, models.AuthToken{}, fmt.Errorf("user search by username failed: %w", err)
	}

	ok, err := utils.CheckPassword(req.Password, user.Password)
	if err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("stored password hash is unreadable")
	}
	if !ok || !user.IsActive {
		log.Debug().Int64("user_id", user.ID).Bool("active", user.IsActive).Msg("login rejected")
		return models.User{}, models.AuthToken{}, nonFieldError(app.MsgInvalidCredentials)
	}

	token, err := a.issueToken(ctx, user.ID)
	if err != nil {
		return models.User{}, models.AuthToken{}, err
	}

	if err = a.userRepository.TouchLastLogin(ctx, user.ID, a.now().UTC()); err != nil {
		log.Warn().Err(err).Int64("user_id", user.ID).Msg("last login not recorded")
	}

	return user, token, nil
}

// Logout deletes the token identified by key.
//
// Returns ErrNoActiveToken when no such token exists and ErrLogoutFailed
// wrapping the cause for any storage failure.
func (a *authService) Logout(ctx context.Context, key string) error {
	deleted, err := a.tokenRepository.DeleteByKey(ctx, key)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("token deletion failed")
		return fmt.Errorf("%w: %w", ErrLogoutFailed, err)
	}
	if !deleted {
		return ErrNoActiveToken
	}
	return nil
}

// Authenticate resolves a presented token key to its owner.
//
// Malformed and unknown keys yield ErrInvalidToken; a deactivated owner
// yields ErrUserInactive.
func (a *authService) Authenticate(ctx context.Context, key string) (models.User, error) {
	if !utils.IsWellFormedTokenKey(key) {
		return models.User{}, ErrInvalidToken
	}

	user, err := a.tokenRepository.FindUserByKey(ctx, key)
	if errors.Is(err, store.ErrTokenNotFound) {
		return models.User{}, ErrInvalidToken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("token lookup failed: %w", err)
	}
	if !user.IsActive {
		return models.User{}, ErrUserInactive
	}
	return user, nil
}

// RefreshToken replaces the user's token in a single upsert. The previous
// key stops working as soon as the statement commits.
func (a *authService) RefreshToken(ctx context.Context, user models.User) (models.AuthToken, error) {
	key, err := a.generateKey()
	if err != nil {
		return models.AuthToken{}, fmt.Errorf("%w: %w", ErrTokenRefreshFailed, err)
	}

	token, err := a.tokenRepository.Rotate(ctx, user.ID, key)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", user.ID).Msg("token rotation failed")
		return models.AuthToken{}, fmt.Errorf("%w: %w", ErrTokenRefreshFailed, err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", user.ID).Msg("token refreshed")
	return token, nil
}

// issueToken returns the user's token, creating it when absent.
func (a *authService) issueToken(ctx context.Context, userID int64) (models.AuthToken, error) {
	key, err := a.generateKey()
	if err != nil {
		return models.AuthToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	token, err := a.tokenRepository.GetOrCreate(ctx, userID, key)
	if err != nil {
		return models.AuthToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token, nil
}
