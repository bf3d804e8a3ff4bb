package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-upload-desk/internal/app"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
)

func TestCheckCSRF(t *testing.T) {
	tests := []struct {
		name       string
		enforce    bool
		method     string
		headers    map[string]string
		wantStatus int
	}{
		{name: "not enforced", method: http.MethodPost, wantStatus: http.StatusOK},
		{name: "safe method", enforce: true, method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "missing token", enforce: true, method: http.MethodPost, wantStatus: http.StatusForbidden},
		{name: "wrong token", enforce: true, method: http.MethodPost, headers: map[string]string{csrfHeader: "forged"}, wantStatus: http.StatusForbidden},
		{name: "valid token", enforce: true, method: http.MethodPost, headers: map[string]string{csrfHeader: testCSRF}, wantStatus: http.StatusOK},
		{name: "legacy header", enforce: true, method: http.MethodPost, headers: map[string]string{csrfLegacyHeader: testCSRF}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.App.EnforceCSRF = tt.enforce
			h := NewHandler(newTestServices(), nil, cfg, logger.Nop())

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, "/api/search", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()
			h.checkCSRF(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.Equal(t, app.MsgCSRFFailed, decodeEnvelope(t, rr).Message)
			}
		})
	}
}

func TestSetCSRFCookie(t *testing.T) {
	h := newRouterHandler(newTestServices())

	rr := httptest.NewRecorder()
	h.setCSRFCookie(rr, "abc")

	cookies := rr.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, csrfCookie, cookies[0].Name)
		assert.Equal(t, "abc", cookies[0].Value)
		assert.Equal(t, "/", cookies[0].Path)
		assert.Equal(t, 3600, cookies[0].MaxAge)
	}
}
