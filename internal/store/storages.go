// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-upload-desk/internal/config"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
)

// Storages aggregates every persistence component the service layer needs.
type Storages struct {
	DB *DB

	UserRepository  UserRepository
	TokenRepository TokenRepository
	FileRepository  FileRepository
	BlobStorage     BlobStorage
	RateLimiter     RateLimiter

	redis *redis.Client
}

// NewStorages connects the database, runs migrations, and builds the blob
// storage and rate limiter selected by cfg.
func NewStorages(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error migrating database: %w", err)
	}
	log.Info().Str("dialect", string(db.Dialect())).Msg("database migrated")

	storages := &Storages{
		DB:              db,
		UserRepository:  NewUserRepository(db, log),
		TokenRepository: NewTokenRepository(db, log),
		FileRepository:  NewFileRepository(db, log),
	}

	storages.BlobStorage, err = NewBlobStorage(ctx, cfg.Storage.Files, log)
	if err != nil {
		_ = storages.Close()
		return nil, err
	}

	rl := cfg.Server.RateLimit
	if rl.RedisURI != "" {
		storages.redis, err = NewRedisClient(ctx, rl.RedisURI, log)
		if err != nil {
			_ = storages.Close()
			return nil, err
		}
		storages.RateLimiter = NewRedisRateLimiter(storages.redis, rl.Requests, rl.Window)
	} else {
		storages.RateLimiter = NewMemoryRateLimiter(rl.Requests, rl.Window)
	}

	return storages, nil
}

// NewBlobStorage builds the backend named by cfg.Backend.
func NewBlobStorage(ctx context.Context, cfg config.Files, log *logger.Logger) (BlobStorage, error) {
	switch cfg.Backend {
	case config.FilesBackendLocal, "":
		return NewLocalBlobStorage(cfg.Dir, log)
	case config.FilesBackendS3:
		return NewS3BlobStorage(ctx, cfg.S3, log)
	}

	return nil, fmt.Errorf("unknown files backend %q", cfg.Backend)
}

// Close releases the database and redis connections.
func (s *Storages) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.DB != nil {
		errs = append(errs, s.DB.Close())
	}
	return errors.Join(errs...)
}
