package http

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-upload-desk/internal/app"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/service"
	"github.com/MKhiriev/go-upload-desk/internal/utils"
	"github.com/MKhiriev/go-upload-desk/internal/validators"
	"github.com/MKhiriev/go-upload-desk/models"
)

const (
	// multipartOverhead leaves room for boundaries and part headers around
	// a file of exactly MaxFileSize bytes.
	multipartOverhead = 1 << 20

	// multipartMemory is how much of the form is kept in memory before
	// spilling to temporary files.
	multipartMemory = 8 << 20

	fileFormField = "file"
)

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	files, err := h.services.UploadService.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	for i := range files {
		files[i].FileURL = h.fileURL(r, files[i].ID)
	}

	utils.WriteJSON(w, models.FileListResponse{Files: files, Count: len(files)}, http.StatusOK)
}

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, validators.MaxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			log.Info().Int64("limit", tooLarge.Limit).Msg("upload body too large")
			writeDetail(w, http.StatusRequestEntityTooLarge, app.MsgFileTooLarge)
		case errors.Is(err, http.ErrNotMultipart):
			writeServiceError(w, r, fmt.Errorf("%w: %w", errMultipartRequired, err))
		default:
			log.Info().Err(err).Msg("malformed multipart body")
			writeDetail(w, http.StatusBadRequest, app.MsgMalformedRequest)
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(fileFormField)
	if err != nil {
		log.Info().Err(err).Msg("no file in upload request")
		writeFormErrors(w, validators.FieldErrors{validators.FieldFile: {validators.MsgNoFile}}, app.MsgFileUploadFailed)
		return
	}
	defer file.Close()

	uploaded, err := h.services.UploadService.Upload(ctx, user.ID, models.FileUpload{
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		if ve, ok := service.AsValidationError(err); ok {
			writeFormErrors(w, ve.Fields, app.MsgFileUploadFailed)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	uploaded.FileURL = h.fileURL(r, uploaded.ID)
	utils.WriteJSON(w, models.FileResponse{File: uploaded, Message: app.MsgFileUploaded}, http.StatusCreated)
}

func (h *Handler) getFile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	file, err := h.services.UploadService.Get(r.Context(), user.ID, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	file.FileURL = h.fileURL(r, file.ID)
	utils.WriteJSON(w, file, http.StatusOK)
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if _, err = h.services.UploadService.Delete(r.Context(), user.ID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgFileDeleted}, http.StatusOK)
}

// fileContent streams the stored blob as an attachment.
func (h *Handler) fileContent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	file, content, err := h.services.UploadService.Open(r.Context(), user.ID, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	defer content.Close()

	contentType := mime.TypeByExtension(filepath.Ext(file.OriginalFilename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(file.FileSize, 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": file.OriginalFilename,
	}))
	w.WriteHeader(http.StatusOK)

	if _, err = io.Copy(w, content); err != nil {
		log.Warn().Err(err).Int64("file_id", file.ID).Msg("file content stream interrupted")
	}
}

// fileURL builds the absolute download URL of a file. App.PublicBaseURL
// wins over the request host.
func (h *Handler) fileURL(r *http.Request, id int64) string {
	base := strings.TrimRight(h.app.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
			scheme = proto
		}
		base = scheme + "://" + r.Host
	}
	return fmt.Sprintf("%s/api/upload/%d/content/", base, id)
}

// pathID parses the {id} URL parameter. Anything that is not a positive
// integer is reported as errInvalidID, which maps to 404.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidID, raw)
	}
	return id, nil
}
