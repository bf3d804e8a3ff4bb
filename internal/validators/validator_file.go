package validators

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MKhiriev/go-upload-desk/models"
)

const FieldFile = "file"

// MaxFileSize is the upload ceiling in bytes (20 MiB).
const MaxFileSize int64 = 20 << 20

const (
	MsgNoFile    = "No file was submitted."
	MsgEmptyFile = "The submitted file is empty."
)

// allowedExtensions is the accepted set as users spell it; jpeg is folded
// into jpg by extensionAliases.
var allowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"md":   {},
}

var extensionAliases = map[string]string{
	"jpeg": "jpg",
}

// FileValidator checks incoming uploads. The extension is checked before
// the size so an oversized .exe is reported as a type error.
type FileValidator struct {
	maxSize int64
}

func NewFileValidator() Validator {
	return &FileValidator{maxSize: MaxFileSize}
}

func (v *FileValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.FileUpload:
		return v.validateUpload(ctx, value)
	case *models.FileUpload:
		return v.validateUpload(ctx, *value)
	default:
		return ErrUnsupportedType
	}
}

func (v *FileValidator) validateUpload(_ context.Context, upload models.FileUpload) error {
	if upload.Filename == "" || upload.Content == nil {
		return FieldErrors{FieldFile: {MsgNoFile}}
	}
	if upload.Size == 0 {
		return FieldErrors{FieldFile: {MsgEmptyFile}}
	}

	ext := rawExtension(upload.Filename)
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: %q", ErrFileTypeNotAllowed, ext)
	}
	if upload.Size > v.maxSize {
		return fmt.Errorf("%w: %d bytes", ErrFileSizeExceeded, upload.Size)
	}
	return nil
}

// CanonicalFileType returns the lowercase extension of filename without the
// dot, with aliases such as jpeg folded into their canonical form.
func CanonicalFileType(filename string) string {
	ext := rawExtension(filename)
	if canonical, ok := extensionAliases[ext]; ok {
		return canonical
	}
	return ext
}

// AllowedExtensions lists the accepted extensions in alphabetical order.
func AllowedExtensions() []string {
	out := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// rawExtension treats leading dots as part of the name, so ".md" has no
// extension.
func rawExtension(filename string) string {
	base := strings.TrimLeft(filepath.Base(filename), ".")
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
}
