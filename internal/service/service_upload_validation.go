package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-upload-desk/internal/validators"
	"github.com/MKhiriev/go-upload-desk/models"
)

// UploadValidationService rejects invalid uploads before they reach the
// wrapped UploadService. Every other call is passed through.
type UploadValidationService struct {
	inner     UploadService
	validator validators.Validator
}

func NewUploadValidationService() UploadServiceWrapper {
	return &UploadValidationService{
		validator: validators.NewFileValidator(),
	}
}

func (v *UploadValidationService) Upload(ctx context.Context, ownerID int64, upload models.FileUpload) (models.UploadedFile, error) {
	if err := v.validator.Validate(ctx, upload); err != nil {
		return models.UploadedFile{}, toValidationError(err)
	}
	return v.inner.Upload(ctx, ownerID, upload)
}

func (v *UploadValidationService) List(ctx context.Context, ownerID int64) ([]models.UploadedFile, error) {
	return v.inner.List(ctx, ownerID)
}

func (v *UploadValidationService) Get(ctx context.Context, ownerID, id int64) (models.UploadedFile, error) {
	return v.inner.Get(ctx, ownerID, id)
}

func (v *UploadValidationService) Delete(ctx context.Context, ownerID, id int64) (models.UploadedFile, error) {
	return v.inner.Delete(ctx, ownerID, id)
}

func (v *UploadValidationService) Open(ctx context.Context, ownerID, id int64) (models.UploadedFile, io.ReadCloser, error) {
	return v.inner.Open(ctx, ownerID, id)
}

func (v *UploadValidationService) ApplyStatus(ctx context.Context, id int64, status models.FileStatus) (models.UploadedFile, error) {
	if !status.Valid() {
		return models.UploadedFile{}, ErrInvalidTransition
	}
	return v.inner.ApplyStatus(ctx, id, status)
}

func (v *UploadValidationService) Wrap(wrapped UploadService) UploadService {
	v.inner = wrapped
	return v
}
