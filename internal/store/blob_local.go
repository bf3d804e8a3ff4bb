package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-upload-desk/internal/config"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
)

// LocalBlobStorage keeps blobs as files below a root directory.
type LocalBlobStorage struct {
	root   string
	logger *logger.Logger
}

func NewLocalBlobStorage(root string, log *logger.Logger) (*LocalBlobStorage, error) {
	if root == "" {
		return nil, errors.New("local blob storage needs a root directory")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("error creating blob root %q: %w", root, err)
	}

	log.Debug().Str("root", root).Msg("creating local blob storage")
	return &LocalBlobStorage{root: root, logger: log}, nil
}

func (s *LocalBlobStorage) Backend() string {
	return config.FilesBackendLocal
}

// Put writes the blob to a temporary file first and renames it into place,
// so a failed upload never leaves a truncated blob under key.
func (s *LocalBlobStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating blob directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("error creating temp blob: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, contextReader{ctx: ctx, r: r})
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("error writing blob: %w", err)
	}
	if size >= 0 && written != size {
		return fmt.Errorf("error writing blob: wrote %d of %d bytes", written, size)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error moving blob into place: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*LocalBlobStorage.Put").
		Str("key", key).
		Int64("size", written).
		Msg("blob stored")

	return nil
}

func (s *LocalBlobStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error opening blob: %w", err)
	}

	return f, nil
}

// path resolves key below root and rejects keys escaping it.
func (s *LocalBlobStorage) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
