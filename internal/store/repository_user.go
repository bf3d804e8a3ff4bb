// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/models"
)

// userColumns is the column order shared by every user SELECT and RETURNING
// clause; [scanUser] depends on it.
var userColumns = []string{
	"id", "username", "email", "password", "first_name", "last_name",
	"is_active", "is_staff", "is_superuser", "role", "date_joined", "last_login",
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// userRepository is the database/sql implementation of [UserRepository].
// It handles account creation, lookup and administration against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns it with server-assigned
// fields (ID) filled in from the RETURNING clause.
//
// Error handling:
//   - unique violation on username → [ErrUsernameAlreadyExists].
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now().UTC()
	}
	if user.Role == "" {
		user.Role = models.DefaultRole
	}

	query, args, err := r.db.builder.
		Insert(user.TableName()).
		Columns("username", "email", "password", "first_name", "last_name",
			"is_active", "is_staff", "is_superuser", "role", "date_joined").
		Values(user.Username, user.Email, user.Password, user.FirstName, user.LastName,
			user.IsActive, user.IsStaff, user.IsSuperuser, string(user.Role), user.DateJoined).
		Suffix("RETURNING " + columnList(userColumns)).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		if mapped := mapUserUniqueViolation(err); mapped != err {
			return models.User{}, mapped
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindUserByID returns the user with the given id or [ErrUserNotFound].
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", sq.Eq{"id": id})
}

// FindUserByUsername returns the user with the given username or
// [ErrUserNotFound]. The match is exact.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByUsername", sq.Eq{"username": username})
}

func (r *userRepository) findOne(ctx context.Context, funcName string, where sq.Sqlizer) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

func (r *userRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.taken(ctx, "email", email, excludeID)
}

func (r *userRepository) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	return r.taken(ctx, "username", username, excludeID)
}

func (r *userRepository) taken(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	builder := r.db.builder.
		Select("1").
		From("users").
		Where(sq.Eq{column: value}).
		Limit(1)
	if excludeID != 0 {
		builder = builder.Where(sq.NotEq{"id": excludeID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*userRepository.taken").
			Str("column", column).
			Msg("error checking uniqueness")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

// UpdateProfile writes the non-nil fields of update. An empty update just
// returns the stored user.
func (r *userRepository) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	set := make(map[string]any, 3)
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.FirstName != nil {
		set["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		set["last_name"] = *update.LastName
	}
	if len(set) == 0 {
		return r.FindUserByID(ctx, id)
	}

	query, args, err := r.db.builder.
		Update("users").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList(userColumns)).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrUserNotFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", id).Msg("error updating profile")
		if mapped := mapUserUniqueViolation(err); mapped != err {
			return models.User{}, mapped
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// SetActive flips the active flag. Deactivating also deletes the user's
// auth token inside the same transaction, so the old key stops working the
// moment the flag is committed.
func (r *userRepository) SetActive(ctx context.Context, id int64, active bool) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update("users").
		Set("is_active", active).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList(userColumns)).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	revokeQuery, revokeArgs, err := r.db.builder.
		Delete("auth_tokens").
		Where(sq.Eq{"user_id": id}).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		var scanErr error
		user, scanErr = scanUser(tx.QueryRowContext(ctx, query, args...))
		if errors.Is(scanErr, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		if scanErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, scanErr)
		}

		if !active {
			if _, execErr := tx.ExecContext(ctx, revokeQuery, revokeArgs...); execErr != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Str("func", "*userRepository.SetActive").Int64("user_id", id).Msg("error setting active flag")
		}
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) SetRole(ctx context.Context, id int64, role models.Role) (models.User, error) {
	query, args, err := r.db.builder.
		Update("users").
		Set("role", string(role)).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList(userColumns)).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.SetRole").Int64("user_id", id).Msg("error setting role")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	query, args, err := r.db.builder.
		Update("users").
		Set("last_login", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Stats counts users by state.
func (r *userRepository) Stats(ctx context.Context) (models.UserStats, error) {
	query, args, err := r.db.builder.
		Select(
			"COUNT(*)",
			"COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0)",
			"COALESCE(SUM(CASE WHEN is_staff THEN 1 ELSE 0 END), 0)",
		).
		From("users").
		ToSql()
	if err != nil {
		return models.UserStats{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var stats models.UserStats
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&stats.TotalUsers, &stats.ActiveUsers, &stats.StaffUsers); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.Stats").Msg("error counting users")
		return models.UserStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	stats.InactiveUsers = stats.TotalUsers - stats.ActiveUsers

	return stats, nil
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user       models.User
		role       string
		dateJoined scanTime
		lastLogin  scanTime
	)

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.IsActive,
		&user.IsStaff,
		&user.IsSuperuser,
		&role,
		&dateJoined,
		&lastLogin,
	)
	if err != nil {
		return models.User{}, err
	}

	user.Role = models.Role(role)
	user.DateJoined = dateJoined.Time
	user.LastLogin = lastLogin.ptr()

	return user, nil
}
