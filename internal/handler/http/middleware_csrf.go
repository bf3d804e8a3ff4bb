package http

import (
	"net/http"

	"github.com/MKhiriev/go-upload-desk/internal/app"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
)

const (
	csrfHeader       = "X-CSRF-Token"
	csrfLegacyHeader = "X-CSRFToken"
	csrfCookie       = "csrftoken"
)

// checkCSRF verifies the anti-forgery token of unsafe requests when
// enforcement is enabled. The token is read from the X-CSRF-Token header
// (X-CSRFToken is accepted for the bundled web client).
func (h *Handler) checkCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.app.EnforceCSRF || isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		token := r.Header.Get(csrfHeader)
		if token == "" {
			token = r.Header.Get(csrfLegacyHeader)
		}

		if err := h.services.CSRFService.Verify(r.Context(), token); err != nil {
			logger.FromRequest(r).Info().Err(err).Msg("csrf verification failed")
			writeDetail(w, http.StatusForbidden, app.MsgCSRFFailed)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// setCSRFCookie stores token in the cookie read by the web client.
func (h *Handler) setCSRFCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.app.CSRFTokenTTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
