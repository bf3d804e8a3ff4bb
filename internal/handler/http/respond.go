package http

import (
	"net/http"

	"github.com/MKhiriev/go-upload-desk/internal/app"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/service"
	"github.com/MKhiriev/go-upload-desk/internal/utils"
	"github.com/MKhiriev/go-upload-desk/internal/validators"
	"github.com/MKhiriev/go-upload-desk/models"
)

// writeEnvelope writes {"error": true, "message": ..., "details": ...}.
// The message is derived from details by [envelopeMessage].
func writeEnvelope(w http.ResponseWriter, status int, details any) {
	utils.WriteJSON(w, models.ErrorEnvelope{
		Error:   true,
		Message: envelopeMessage(details),
		Details: details,
	}, status)
}

// writeDetail writes an envelope whose details is {"detail": msg}.
func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeEnvelope(w, status, map[string]string{"detail": msg})
}

// envelopeMessage picks the top-level message: details.detail first, then
// the first non-field validation message, then a generic fallback.
func envelopeMessage(details any) string {
	switch d := details.(type) {
	case map[string]string:
		if msg := d["detail"]; msg != "" {
			return msg
		}
		if msg := d[validators.FieldNonField]; msg != "" {
			return msg
		}
	case map[string][]string:
		return firstMessage(d)
	case validators.FieldErrors:
		return firstMessage(d)
	}
	return app.MsgDefaultError
}

func firstMessage(fields map[string][]string) string {
	if msgs := fields["detail"]; len(msgs) > 0 {
		return msgs[0]
	}
	if msgs := fields[validators.FieldNonField]; len(msgs) > 0 {
		return msgs[0]
	}
	return app.MsgDefaultError
}

// writeFormErrors writes {"errors": {...}, "message": msg} with status 400.
func writeFormErrors(w http.ResponseWriter, fields validators.FieldErrors, msg string) {
	utils.WriteJSON(w, models.FormErrorResponse{Errors: fields, Message: msg}, http.StatusBadRequest)
}

// writeSimpleError writes {"error": msg}.
func writeSimpleError(w http.ResponseWriter, status int, msg string) {
	utils.WriteJSON(w, models.SimpleErrorResponse{Error: msg}, status)
}

// writeServiceError maps err to the envelope response. Validation errors
// keep their field detail; everything else is looked up in errorStatusMap.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	if ve, ok := service.AsValidationError(err); ok {
		log.Debug().Err(err).Msg("validation failed")
		writeEnvelope(w, http.StatusBadRequest, ve.Fields)
		return
	}

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	writeDetail(w, status, messageFromError(err))
}
