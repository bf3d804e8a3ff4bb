package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-upload-desk/models"
)

// AuthService issues, resolves and revokes opaque bearer tokens.
type AuthService interface {
	// Register validates req, creates the user and issues its token.
	// Every failing field is reported in a single *ValidationError.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, models.AuthToken, error)

	// Login checks the credentials and returns the user's existing token or
	// a new one.
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.AuthToken, error)

	// Logout revokes the token identified by key.
	Logout(ctx context.Context, key string) error

	// Authenticate resolves key to its active owner.
	Authenticate(ctx context.Context, key string) (models.User, error)

	// RefreshToken atomically replaces the user's token with a new one.
	RefreshToken(ctx context.Context, user models.User) (models.AuthToken, error)
}

// UserService manages profiles and account administration.
type UserService interface {
	Profile(ctx context.Context, id int64) (models.User, error)
	UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (models.User, error)
	Activate(ctx context.Context, id int64) (models.User, error)
	Deactivate(ctx context.Context, id int64) (models.User, error)
	SetRole(ctx context.Context, id int64, role models.Role) (models.User, error)
	Stats(ctx context.Context) (models.UserStats, error)
}

// PermissionService maps users to their role and capabilities.
type PermissionService interface {
	// Role returns the effective role; superusers are always admins.
	Role(user models.User) models.Role
	Permissions(user models.User) []models.Permission
	HasPermission(user models.User, perm models.Permission) bool
}

// UploadService stores uploads and serves them back to their owners.
type UploadService interface {
	Upload(ctx context.Context, ownerID int64, upload models.FileUpload) (models.UploadedFile, error)

	// List returns the owner's non-deleted files, newest first.
	List(ctx context.Context, ownerID int64) ([]models.UploadedFile, error)

	// Get returns the file when ownerID owns it. A missing id yields
	// ErrFileNotFound, another owner's id ErrFileAccessDenied.
	Get(ctx context.Context, ownerID, id int64) (models.UploadedFile, error)

	// Delete soft-deletes the file under the same ownership rules as Get.
	Delete(ctx context.Context, ownerID, id int64) (models.UploadedFile, error)

	// Open streams the content of a non-deleted file. The caller closes the
	// returned reader.
	Open(ctx context.Context, ownerID, id int64) (models.UploadedFile, io.ReadCloser, error)

	// ApplyStatus records the outcome of external processing.
	ApplyStatus(ctx context.Context, id int64, status models.FileStatus) (models.UploadedFile, error)
}

// UploadServiceWrapper defines middleware composition for UploadService.
// Implementations wrap an existing UploadService to add behavior such as
// validation.
type UploadServiceWrapper interface {
	Wrap(UploadService) UploadService // returns a decorated UploadService applying additional behavior
}

// SearchService answers the demo search surface.
type SearchService interface {
	Autocomplete(ctx context.Context, query string) []models.Suggestion
	Search(ctx context.Context, query string) []models.SearchResult
}

// CSRFService issues and checks anti-forgery tokens.
type CSRFService interface {
	Issue(ctx context.Context) (string, error)
	Verify(ctx context.Context, token string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	BuildInfo(ctx context.Context) models.AppBuildInfo
}

// EventPublisher announces stored uploads to the processing pipeline.
type EventPublisher interface {
	PublishFileUploaded(ctx context.Context, event models.FileEvent) error
}
