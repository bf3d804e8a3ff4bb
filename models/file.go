// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"io"
	"time"
)

// FileStatus is the processing state of an uploaded file.
//
//	pending -> processed | failed
//	any     -> deleted (terminal)
type FileStatus string

const (
	FileStatusPending   FileStatus = "pending"
	FileStatusProcessed FileStatus = "processed"
	FileStatusFailed    FileStatus = "failed"
	FileStatusDeleted   FileStatus = "deleted"
)

// Valid reports whether s is a known status.
func (s FileStatus) Valid() bool {
	switch s {
	case FileStatusPending, FileStatusProcessed, FileStatusFailed, FileStatusDeleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s FileStatus) CanTransitionTo(next FileStatus) bool {
	if s == FileStatusDeleted {
		return false
	}
	if next == FileStatusDeleted {
		return true
	}
	return s == FileStatusPending && (next == FileStatusProcessed || next == FileStatusFailed)
}

// UploadedFile is the metadata row that references a stored blob.
type UploadedFile struct {
	ID               int64  `json:"id"`
	OriginalFilename string `json:"original_filename"`

	// FileType is the canonical lowercase extension, jpeg folded into jpg.
	FileType string `json:"file_type"`

	// FileSize is the blob size in bytes.
	FileSize int64      `json:"file_size"`
	Status   FileStatus `json:"status"`

	// StorageKey locates the blob inside the configured blob storage.
	StorageKey string `json:"-"`

	// UploadedBy is the owner's user id; UploaderName is the owner's username
	// and is what clients see as "uploaded_by".
	UploadedBy   int64  `json:"-"`
	UploaderName string `json:"uploaded_by"`

	UploadedAt time.Time  `json:"uploaded_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`

	// FileURL is filled by the transport layer with an absolute download URL.
	FileURL string `json:"file_url"`
}

// TableName returns the name of the database table
// associated with the UploadedFile model.
func (f UploadedFile) TableName() string {
	return "uploaded_files"
}

// IsDeleted reports whether the file was soft-deleted.
func (f UploadedFile) IsDeleted() bool {
	return f.Status == FileStatusDeleted || f.DeletedAt != nil
}

// FileUpload is an incoming file as received from the transport layer.
type FileUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Content     io.Reader
}

// FileEvent is published after a file has been stored so an external
// pipeline can pick it up for processing.
type FileEvent struct {
	FileID     int64     `json:"file_id"`
	OwnerID    int64     `json:"owner_id"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	StorageKey string    `json:"storage_key"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// FileStatusEvent reports the outcome of external processing.
type FileStatusEvent struct {
	FileID int64      `json:"file_id"`
	Status FileStatus `json:"status"`
}
