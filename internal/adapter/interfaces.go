// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the upload desk REST API.
//
// The primary abstraction is [ServerAdapter], which hides request building,
// token headers and response decoding from its callers (the command line
// client and end-to-end tests). Non-2xx responses are mapped by
// mapHTTPError to the sentinel errors in errors.go so callers can use
// [errors.Is] (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-upload-desk/models"
)

// ServerAdapter defines communication with the upload desk server.
type ServerAdapter interface {
	// SetToken stores the API token attached to all subsequent authenticated
	// requests. Register and Login call it on success.
	SetToken(token string)

	// Token returns the stored API token, or an empty string.
	Token() string

	// Register creates an account and stores the returned token.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Login exchanges credentials for the account token and stores it.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// Logout revokes the stored token and clears it locally.
	Logout(ctx context.Context) error

	Profile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error)

	// RefreshToken rotates the token and stores the new one.
	RefreshToken(ctx context.Context) (models.AuthResponse, error)

	Permissions(ctx context.Context) (models.PermissionsResponse, error)

	// UploadFile sends content as a multipart upload named filename.
	UploadFile(ctx context.Context, filename string, content io.Reader) (models.FileResponse, error)

	ListFiles(ctx context.Context) (models.FileListResponse, error)
	GetFile(ctx context.Context, id int64) (models.UploadedFile, error)
	DeleteFile(ctx context.Context, id int64) error

	// DownloadFile streams the stored bytes of id into w and returns the
	// number of bytes written.
	DownloadFile(ctx context.Context, id int64, w io.Writer) (int64, error)

	Autocomplete(ctx context.Context, query string) (models.AutocompleteResponse, error)
	Search(ctx context.Context, query string) (models.SearchResponse, error)

	Version(ctx context.Context) (models.AppBuildInfo, error)
}
