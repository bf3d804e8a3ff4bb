package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-upload-desk/internal/app"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/store"
	"github.com/MKhiriev/go-upload-desk/internal/validators"
	"github.com/MKhiriev/go-upload-desk/models"
)

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator

	logger *logger.Logger
}

func NewUserService(users store.UserRepository, validator validators.Validator, logger *logger.Logger) UserService {
	return &userService{
		userRepository: users,
		validator:      validator,
		logger:         logger,
	}
}

func (s *userService) Profile(ctx context.Context, id int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, mapUserError(err)
	}
	return user, nil
}

// UpdateProfile writes the non-nil fields of update to the user's own
// record. An empty update returns the stored profile unchanged.
func (s *userService) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (models.User, error) {
	if update.IsEmpty() {
		return s.Profile(ctx, id)
	}

	fields := validators.FieldErrors{}
	if err := s.validator.Validate(ctx, update); err != nil {
		fe, ok := validators.AsFieldErrors(err)
		if !ok {
			return models.User{}, fmt.Errorf("profile validation: %w", err)
		}
		fields.Merge(fe)
	}

	if update.Email != nil && !fields.Has(validators.FieldEmail) {
		taken, err := s.userRepository.EmailTaken(ctx, *update.Email, id)
		if err != nil {
			return models.User{}, fmt.Errorf("email uniqueness check failed: %w", err)
		}
		if taken {
			fields.Add(validators.FieldEmail, app.MsgEmailTaken)
		}
	}

	if len(fields) > 0 {
		return models.User{}, newValidationError(fields)
	}

	user, err := s.userRepository.UpdateProfile(ctx, id, update)
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, newValidationError(validators.FieldErrors{validators.FieldEmail: {app.MsgEmailTaken}})
	}
	if err != nil {
		return models.User{}, mapUserError(err)
	}
	return user, nil
}

func (s *userService) Activate(ctx context.Context, id int64) (models.User, error) {
	user, err := s.userRepository.SetActive(ctx, id, true)
	if err != nil {
		return models.User{}, mapUserError(err)
	}
	logger.FromContext(ctx).Info().Int64("user_id", id).Msg("user activated")
	return user, nil
}

// Deactivate clears the active flag and revokes the user's token in the
// same transaction.
func (s *userService) Deactivate(ctx context.Context, id int64) (models.User, error) {
	user, err := s.userRepository.SetActive(ctx, id, false)
	if err != nil {
		return models.User{}, mapUserError(err)
	}
	logger.FromContext(ctx).Info().Int64("user_id", id).Msg("user deactivated")
	return user, nil
}

func (s *userService) SetRole(ctx context.Context, id int64, role models.Role) (models.User, error) {
	if !role.Valid() {
		return models.User{}, ErrInvalidRole
	}
	user, err := s.userRepository.SetRole(ctx, id, role)
	if err != nil {
		return models.User{}, mapUserError(err)
	}
	logger.FromContext(ctx).Info().Int64("user_id", id).Str("role", string(role)).Msg("user role changed")
	return user, nil
}

func (s *userService) Stats(ctx context.Context) (models.UserStats, error) {
	stats, err := s.userRepository.Stats(ctx)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("user stats: %w", err)
	}
	return stats, nil
}

func mapUserError(err error) error {
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return err
}
