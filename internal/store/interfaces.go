package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-upload-desk/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts user and returns it with server-assigned fields.
	// Unique violations surface as [ErrUsernameAlreadyExists] or
	// [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// EmailTaken reports whether another user than excludeID owns email.
	// Pass 0 to check against every user.
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)

	// UpdateProfile writes the non-nil fields of update and returns the
	// stored user.
	UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (models.User, error)

	// SetActive flips the active flag. Deactivation removes the user's
	// token in the same transaction.
	SetActive(ctx context.Context, id int64, active bool) (models.User, error)
	SetRole(ctx context.Context, id int64, role models.Role) (models.User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	Stats(ctx context.Context) (models.UserStats, error)
}

// TokenRepository persists auth tokens. At most one token exists per user.
type TokenRepository interface {
	// GetOrCreate returns the user's token, inserting one with candidateKey
	// when none exists.
	GetOrCreate(ctx context.Context, userID int64, candidateKey string) (models.AuthToken, error)

	// Rotate replaces the user's token with newKey in a single statement.
	Rotate(ctx context.Context, userID int64, newKey string) (models.AuthToken, error)

	// DeleteByKey removes the token and reports whether a row was deleted.
	DeleteByKey(ctx context.Context, key string) (bool, error)

	// FindUserByKey resolves the owner of key, or [ErrTokenNotFound].
	FindUserByKey(ctx context.Context, key string) (models.User, error)
}

// FileRepository persists uploaded file metadata.
type FileRepository interface {
	Create(ctx context.Context, file models.UploadedFile) (models.UploadedFile, error)

	// ListActiveByOwner returns the owner's non-deleted files, newest first.
	ListActiveByOwner(ctx context.Context, ownerID int64) ([]models.UploadedFile, error)

	// FindByID returns the file regardless of owner or status.
	FindByID(ctx context.Context, id int64) (models.UploadedFile, error)

	// MarkDeleted soft-deletes the file. An already deleted file keeps its
	// original deleted_at.
	MarkDeleted(ctx context.Context, id int64, at time.Time) (models.UploadedFile, error)

	// UpdateStatus moves the file from one status to another, failing with
	// [ErrStatusConflict] when the current status is not from.
	UpdateStatus(ctx context.Context, id int64, from, to models.FileStatus) (models.UploadedFile, error)
}

// BlobStorage stores uploaded file contents.
type BlobStorage interface {
	// Put stores size bytes from r under key.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Open returns a reader for the blob stored under key, or
	// [ErrBlobNotFound].
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Backend names the storage implementation ("local", "s3").
	Backend() string
}

// RateLimiter counts requests per key.
type RateLimiter interface {
	// Allow records a request for key and reports whether it is within the
	// limit.
	Allow(ctx context.Context, key string) (bool, error)
}
