package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MKhiriev/go-upload-desk/internal/config"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/models"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return NewDB(conn, DialectPostgres, logger.Nop()), mock, conn
}

// newSQLiteDB opens a migrated in-memory sqlite database.
func newSQLiteDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.DB{DSN: "file::memory:"}, logger.Nop())
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = db.Migrate(); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return db
}

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

var testTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func userRows(users ...models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows(userColumns)
	for _, u := range users {
		rows.AddRow(u.ID, u.Username, u.Email, u.Password, u.FirstName, u.LastName,
			u.IsActive, u.IsStaff, u.IsSuperuser, string(u.Role), testTime, nil)
	}
	return rows
}

var fileColumnNames = []string{
	"id", "original_filename", "file_type", "file_size", "status",
	"storage_key", "uploaded_by", "username", "uploaded_at", "updated_at", "deleted_at",
}

func fileRows(files ...models.UploadedFile) *sqlmock.Rows {
	rows := sqlmock.NewRows(fileColumnNames)
	for _, f := range files {
		var deletedAt any
		if f.DeletedAt != nil {
			deletedAt = *f.DeletedAt
		}
		rows.AddRow(f.ID, f.OriginalFilename, f.FileType, f.FileSize, string(f.Status),
			f.StorageKey, f.UploadedBy, f.UploaderName, testTime, testTime, deletedAt)
	}
	return rows
}
