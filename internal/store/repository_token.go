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

// tokenRepository is the database/sql implementation of [TokenRepository]
// over the "auth_tokens" table. The table has a UNIQUE constraint on user_id,
// which every write below relies on.
type tokenRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

// GetOrCreate inserts a token with candidateKey unless the user already has
// one, then reads whichever token is stored. Both statements share one
// transaction so two concurrent logins always agree on the same key.
func (t *tokenRepository) GetOrCreate(ctx context.Context, userID int64, candidateKey string) (models.AuthToken, error) {
	log := logger.FromContext(ctx)

	insertQuery, insertArgs, err := t.db.builder.
		Insert("auth_tokens").
		Columns("token", "user_id", "created_at").
		Values(candidateKey, userID, time.Now().UTC()).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return models.AuthToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	selectQuery, selectArgs, err := t.db.builder.
		Select("token", "user_id", "created_at").
		From("auth_tokens").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return models.AuthToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var token models.AuthToken
	err = t.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		if _, execErr := tx.ExecContext(ctx, insertQuery, insertArgs...); execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		var scanErr error
		token, scanErr = scanToken(tx.QueryRowContext(ctx, selectQuery, selectArgs...))
		if scanErr != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*tokenRepository.GetOrCreate").
			Int64("user_id", userID).
			Msg("error getting or creating token")
		return models.AuthToken{}, err
	}

	return token, nil
}

// Rotate replaces the user's token with newKey using a single upsert. There
// is no moment where the user has zero or two tokens, and the previous key is
// invalid as soon as the statement commits.
func (t *tokenRepository) Rotate(ctx context.Context, userID int64, newKey string) (models.AuthToken, error) {
	query, args, err := t.db.builder.
		Insert("auth_tokens").
		Columns("token", "user_id", "created_at").
		Values(newKey, userID, time.Now().UTC()).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET token = excluded.token, created_at = excluded.created_at RETURNING token, user_id, created_at").
		ToSql()
	if err != nil {
		return models.AuthToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	token, err := scanToken(t.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*tokenRepository.Rotate").
			Int64("user_id", userID).
			Msg("error rotating token")
		return models.AuthToken{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return token, nil
}

// DeleteByKey removes the token with the given key.
func (t *tokenRepository) DeleteByKey(ctx context.Context, key string) (bool, error) {
	query, args, err := t.db.builder.
		Delete("auth_tokens").
		Where(sq.Eq{"token": key}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenRepository.DeleteByKey").Msg("error deleting token")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n > 0, nil
}

// FindUserByKey joins the token to its owner.
func (t *tokenRepository) FindUserByKey(ctx context.Context, key string) (models.User, error) {
	query, args, err := t.db.builder.
		Select(prefixed("u", userColumns)...).
		From("auth_tokens t").
		Join("users u ON u.id = t.user_id").
		Where(sq.Eq{"t.token": key}).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(t.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrTokenNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenRepository.FindUserByKey").Msg("error resolving token")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

func scanToken(row rowScanner) (models.AuthToken, error) {
	var (
		token     models.AuthToken
		createdAt scanTime
	)
	if err := row.Scan(&token.Key, &token.UserID, &createdAt); err != nil {
		return models.AuthToken{}, err
	}
	token.CreatedAt = createdAt.Time
	return token, nil
}
