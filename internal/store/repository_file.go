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

// fileColumns is the column order read by [scanFile]. The uploader's
// username comes from the joined users row.
var fileColumns = []string{
	"f.id", "f.original_filename", "f.file_type", "f.file_size", "f.status",
	"f.storage_key", "f.uploaded_by", "u.username", "f.uploaded_at", "f.updated_at", "f.deleted_at",
}

// fileRepository is the database/sql implementation of [FileRepository]
// over the "uploaded_files" table.
type fileRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating file repository")
	return &fileRepository{
		db:     db,
		logger: logger,
	}
}

func (f *fileRepository) selectFiles() sq.SelectBuilder {
	return f.db.builder.
		Select(fileColumns...).
		From("uploaded_files f").
		Join("users u ON u.id = f.uploaded_by")
}

// Create inserts the metadata row and returns it as stored.
func (f *fileRepository) Create(ctx context.Context, file models.UploadedFile) (models.UploadedFile, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	if file.UploadedAt.IsZero() {
		file.UploadedAt = now
	}
	if file.UpdatedAt.IsZero() {
		file.UpdatedAt = file.UploadedAt
	}
	if file.Status == "" {
		file.Status = models.FileStatusPending
	}

	query, args, err := f.db.builder.
		Insert(file.TableName()).
		Columns("original_filename", "file_type", "file_size", "status", "storage_key",
			"uploaded_by", "uploaded_at", "updated_at").
		Values(file.OriginalFilename, file.FileType, file.FileSize, string(file.Status), file.StorageKey,
			file.UploadedBy, file.UploadedAt, file.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = f.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		log.Err(err).
			Str("func", "*fileRepository.Create").
			Int64("user_id", file.UploadedBy).
			Str("filename", file.OriginalFilename).
			Msg("error inserting uploaded file")
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return f.FindByID(ctx, id)
}

// ListActiveByOwner returns the owner's files that are not soft-deleted,
// newest first. Ties on uploaded_at are broken by id.
func (f *fileRepository) ListActiveByOwner(ctx context.Context, ownerID int64) ([]models.UploadedFile, error) {
	log := logger.FromContext(ctx)

	query, args, err := f.selectFiles().
		Where(sq.Eq{"f.uploaded_by": ownerID, "f.deleted_at": nil}).
		OrderBy("f.uploaded_at DESC", "f.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := f.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*fileRepository.ListActiveByOwner").
			Int64("user_id", ownerID).
			Msg("failed to execute query for listing files")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	files := make([]models.UploadedFile, 0, 16)
	for rows.Next() {
		file, scanErr := scanFile(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*fileRepository.ListActiveByOwner").
				Int64("user_id", ownerID).
				Msg("failed to scan uploaded file row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		files = append(files, file)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "*fileRepository.ListActiveByOwner").
			Int64("user_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return files, nil
}

// FindByID returns the file with the given id regardless of owner or
// status, or [ErrFileNotFound].
func (f *fileRepository) FindByID(ctx context.Context, id int64) (models.UploadedFile, error) {
	query, args, err := f.selectFiles().
		Where(sq.Eq{"f.id": id}).
		ToSql()
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	file, err := scanFile(f.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.UploadedFile{}, ErrFileNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*fileRepository.FindByID").
			Int64("file_id", id).
			Msg("error finding uploaded file")
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return file, nil
}

// MarkDeleted flips status to deleted and stamps deleted_at. Rows already
// deleted are left untouched so the first deletion time is kept.
func (f *fileRepository) MarkDeleted(ctx context.Context, id int64, at time.Time) (models.UploadedFile, error) {
	query, args, err := f.db.builder.
		Update("uploaded_files").
		Set("status", string(models.FileStatusDeleted)).
		Set("deleted_at", at).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		Where(sq.NotEq{"status": string(models.FileStatusDeleted)}).
		ToSql()
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = f.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*fileRepository.MarkDeleted").
			Int64("file_id", id).
			Msg("error soft-deleting uploaded file")
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return f.FindByID(ctx, id)
}

// UpdateStatus is a compare-and-set on the status column.
func (f *fileRepository) UpdateStatus(ctx context.Context, id int64, from, to models.FileStatus) (models.UploadedFile, error) {
	query, args, err := f.db.builder.
		Update("uploaded_files").
		Set("status", string(to)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id, "status": string(from)}).
		ToSql()
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := f.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*fileRepository.UpdateStatus").
			Int64("file_id", id).
			Msg("error updating status")
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		if _, findErr := f.FindByID(ctx, id); findErr != nil {
			return models.UploadedFile{}, findErr
		}
		return models.UploadedFile{}, ErrStatusConflict
	}

	return f.FindByID(ctx, id)
}

func scanFile(row rowScanner) (models.UploadedFile, error) {
	var (
		file       models.UploadedFile
		status     string
		uploadedAt scanTime
		updatedAt  scanTime
		deletedAt  scanTime
	)

	err := row.Scan(
		&file.ID,
		&file.OriginalFilename,
		&file.FileType,
		&file.FileSize,
		&status,
		&file.StorageKey,
		&file.UploadedBy,
		&file.UploaderName,
		&uploadedAt,
		&updatedAt,
		&deletedAt,
	)
	if err != nil {
		return models.UploadedFile{}, err
	}

	file.Status = models.FileStatus(status)
	file.UploadedAt = uploadedAt.Time
	file.UpdatedAt = updatedAt.Time
	file.DeletedAt = deletedAt.ptr()

	return file, nil
}
