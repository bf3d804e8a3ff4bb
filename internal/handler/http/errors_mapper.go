package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-upload-desk/internal/app"
	"github.com/MKhiriev/go-upload-desk/internal/service"
	"github.com/MKhiriev/go-upload-desk/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidToken:      http.StatusUnauthorized,
	service.ErrUserInactive:      http.StatusUnauthorized,
	service.ErrFileNotFound:      http.StatusNotFound,
	service.ErrFileAccessDenied:  http.StatusForbidden,
	service.ErrInvalidTransition: http.StatusConflict,
	service.ErrUserNotFound:      http.StatusNotFound,
	service.ErrInvalidRole:       http.StatusBadRequest,
	service.ErrPermissionDenied:  http.StatusForbidden,
	service.ErrInvalidCSRFToken:  http.StatusForbidden,

	validators.ErrFileTypeNotAllowed: http.StatusUnsupportedMediaType,
	validators.ErrFileSizeExceeded:   http.StatusRequestEntityTooLarge,
	validators.ErrUnknownField:       http.StatusBadRequest,

	errInvalidID:         http.StatusNotFound,
	errMultipartRequired: http.StatusUnsupportedMediaType,
}

var errorMessageMap = map[error]string{
	service.ErrInvalidToken:      app.MsgInvalidToken,
	service.ErrUserInactive:      app.MsgUserInactive,
	service.ErrFileNotFound:      app.MsgFileNotFound,
	service.ErrFileAccessDenied:  app.MsgFileAccessDenied,
	service.ErrInvalidTransition: app.MsgDefaultError,
	service.ErrUserNotFound:      app.MsgUserNotFound,
	service.ErrInvalidRole:       app.MsgInvalidRole,
	service.ErrPermissionDenied:  app.MsgPermissionDenied,
	service.ErrInvalidCSRFToken:  app.MsgCSRFFailed,

	validators.ErrFileTypeNotAllowed: app.MsgFileTypeNotAllowed,
	validators.ErrFileSizeExceeded:   app.MsgFileTooLarge,
	validators.ErrUnknownField:       app.MsgMalformedRequest,

	errInvalidID:         app.MsgNotFound,
	errMultipartRequired: app.MsgUnsupportedFormat,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error) string {
	for target, msg := range errorMessageMap {
		if errors.Is(err, target) {
			return msg
		}
	}
	return app.MsgInternalError
}
