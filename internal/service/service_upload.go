package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/store"
	"github.com/MKhiriev/go-upload-desk/internal/utils"
	"github.com/MKhiriev/go-upload-desk/internal/validators"
	"github.com/MKhiriev/go-upload-desk/models"
)

type uploadService struct {
	fileRepository store.FileRepository
	blobStorage    store.BlobStorage
	publisher      EventPublisher
	ids            *utils.UUIDGenerator

	now func() time.Time

	logger *logger.Logger
}

// NewUploadService returns the bare upload service. Callers normally wrap it
// with NewUploadValidationService.
func NewUploadService(files store.FileRepository, blobs store.BlobStorage, publisher EventPublisher, logger *logger.Logger) UploadService {
	return &uploadService{
		fileRepository: files,
		blobStorage:    blobs,
		publisher:      publisher,
		ids:            utils.NewUUIDGenerator(),
		now:            time.Now,
		logger:         logger,
	}
}

// Upload stores the blob and then its metadata row with status pending.
// A FileEvent is published afterwards; a publishing failure is logged and
// does not fail the upload.
func (s *uploadService) Upload(ctx context.Context, ownerID int64, upload models.FileUpload) (models.UploadedFile, error) {
	log := logger.FromContext(ctx)
	now := s.now().UTC()

	key := s.storageKey(now, upload.Filename)
	if err := s.blobStorage.Put(ctx, key, upload.Content, upload.Size, upload.ContentType); err != nil {
		log.Err(err).Str("key", key).Msg("blob write failed")
		return models.UploadedFile{}, fmt.Errorf("storing file content: %w", err)
	}

	file, err := s.fileRepository.Create(ctx, models.UploadedFile{
		OriginalFilename: upload.Filename,
		FileType:         validators.CanonicalFileType(upload.Filename),
		FileSize:         upload.Size,
		StorageKey:       key,
		Status:           models.FileStatusPending,
		UploadedBy:       ownerID,
		UploadedAt:       now,
		UpdatedAt:        now,
	})
	if err != nil {
		log.Err(err).Str("key", key).Msg("file metadata not saved, blob left orphaned")
		return models.UploadedFile{}, fmt.Errorf("saving file metadata: %w", err)
	}

	log.Info().
		Int64("id", file.ID).
		Str("name", file.OriginalFilename).
		Str("user", file.UploaderName).
		Msg("file uploaded")

	event := models.FileEvent{
		FileID:     file.ID,
		OwnerID:    ownerID,
		FileType:   file.FileType,
		FileSize:   file.FileSize,
		StorageKey: file.StorageKey,
		UploadedAt: file.UploadedAt,
	}
	if err = s.publisher.PublishFileUploaded(ctx, event); err != nil {
		log.Warn().Err(err).Int64("id", file.ID).Msg("upload event not published")
	}

	return file, nil
}

func (s *uploadService) List(ctx context.Context, ownerID int64) ([]models.UploadedFile, error) {
	files, err := s.fileRepository.ListActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	if files == nil {
		files = []models.UploadedFile{}
	}
	return files, nil
}

func (s *uploadService) Get(ctx context.Context, ownerID, id int64) (models.UploadedFile, error) {
	file, err := s.fileRepository.FindByID(ctx, id)
	if errors.Is(err, store.ErrFileNotFound) {
		return models.UploadedFile{}, ErrFileNotFound
	}
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("loading file %d: %w", id, err)
	}
	if file.UploadedBy != ownerID {
		logger.FromContext(ctx).Warn().Int64("id", id).Int64("user_id", ownerID).Msg("access to another user's file")
		return models.UploadedFile{}, ErrFileAccessDenied
	}
	return file, nil
}

// Delete soft-deletes the file. The row and the blob are kept; deleting an
// already deleted file returns it unchanged.
func (s *uploadService) Delete(ctx context.Context, ownerID, id int64) (models.UploadedFile, error) {
	file, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return models.UploadedFile{}, err
	}

	deleted, err := s.fileRepository.MarkDeleted(ctx, file.ID, s.now().UTC())
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("deleting file %d: %w", id, err)
	}

	logger.FromContext(ctx).Info().
		Int64("id", deleted.ID).
		Str("name", deleted.OriginalFilename).
		Str("user", deleted.UploaderName).
		Msg("file deleted")
	return deleted, nil
}

func (s *uploadService) Open(ctx context.Context, ownerID, id int64) (models.UploadedFile, io.ReadCloser, error) {
	file, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return models.UploadedFile{}, nil, err
	}
	if file.IsDeleted() {
		return models.UploadedFile{}, nil, ErrFileNotFound
	}

	rc, err := s.blobStorage.Open(ctx, file.StorageKey)
	if errors.Is(err, store.ErrBlobNotFound) {
		logger.FromContext(ctx).Error().Int64("id", id).Str("key", file.StorageKey).Msg("blob missing for file")
		return models.UploadedFile{}, nil, ErrFileNotFound
	}
	if err != nil {
		return models.UploadedFile{}, nil, fmt.Errorf("opening file %d: %w", id, err)
	}
	return file, rc, nil
}

// ApplyStatus moves a pending file to processed or failed. Any other move,
// including one away from deleted, is ErrInvalidTransition.
func (s *uploadService) ApplyStatus(ctx context.Context, id int64, status models.FileStatus) (models.UploadedFile, error) {
	if status != models.FileStatusProcessed && status != models.FileStatusFailed {
		return models.UploadedFile{}, fmt.Errorf("%w: to %q", ErrInvalidTransition, status)
	}

	file, err := s.fileRepository.FindByID(ctx, id)
	if errors.Is(err, store.ErrFileNotFound) {
		return models.UploadedFile{}, ErrFileNotFound
	}
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("loading file %d: %w", id, err)
	}
	if !file.Status.CanTransitionTo(status) {
		return models.UploadedFile{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, file.Status, status)
	}

	updated, err := s.fileRepository.UpdateStatus(ctx, id, file.Status, status)
	switch {
	case errors.Is(err, store.ErrStatusConflict):
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	case errors.Is(err, store.ErrFileNotFound):
		return models.UploadedFile{}, ErrFileNotFound
	case err != nil:
		return models.UploadedFile{}, fmt.Errorf("updating file %d: %w", id, err)
	}

	logger.FromContext(ctx).Info().Int64("id", id).Str("status", string(status)).Msg("file status updated")
	return updated, nil
}

// storageKey lays blobs out as uploads/YYYY/MM/DD/<uuid>_<name>.
func (s *uploadService) storageKey(now time.Time, filename string) string {
	return fmt.Sprintf("uploads/%s/%s_%s", now.Format("2006/01/02"), s.ids.Generate(), safeFilename(filename))
}

// safeFilename keeps letters, digits, dots, dashes and underscores of the
// base name and replaces everything else with an underscore.
func safeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, base)
	cleaned = strings.TrimLeft(cleaned, ".")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}
