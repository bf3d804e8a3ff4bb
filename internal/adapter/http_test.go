// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-upload-desk/internal/config"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b"

// newTestAdapter returns an adapter pointed at serverURL holding token.
func newTestAdapter(t *testing.T, serverURL, token string) *httpServerAdapter {
	t.Helper()
	cfg := config.ClientConfig{ServerURL: serverURL, Token: token, RequestTimeout: 5 * time.Second}

	a, err := NewHTTPServerAdapter(cfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── Construction ────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: "https://desk.example.com/", want: "https://desk.example.com"},
		{raw: "  http://127.0.0.1:9000  ", want: "http://127.0.0.1:9000"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_EmptyURL(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientConfig{}, logger.Nop())

	assert.ErrorIs(t, err, ErrEmptyAddress)
}

// ── Auth ────────────────────────────────────────────────────────────────────

func TestRegister_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register/", r.URL.Path)

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)

		writeJSON(t, w, http.StatusCreated, models.AuthResponse{
			User:    models.User{ID: 7, Username: "alice"},
			Token:   testToken,
			Message: "Registration successful. You can now log in.",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.Register(context.Background(), models.RegisterRequest{Username: "alice", Password: "x"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.User.ID)
	assert.Equal(t, testToken, a.Token())
}

func TestRegister_ValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, models.FormErrorResponse{
			Errors:  map[string][]string{"username": {"A user with that username already exists."}},
			Message: "Registration failed. Please check the provided data.",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.Register(context.Background(), models.RegisterRequest{Username: "alice"})

	require.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "Registration failed")
	assert.Empty(t, a.Token())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login/", r.URL.Path)
		writeJSON(t, w, http.StatusBadRequest, models.FormErrorResponse{
			Errors:  map[string][]string{"non_field_errors": {"Unable to log in with provided credentials."}},
			Message: "Login failed. Please check your credentials.",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "bad"})

	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestLogout_ClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/logout/", r.URL.Path)
		assert.Equal(t, "Token "+testToken, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.MessageResponse{Message: "Logout successful"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, testToken)
	require.NoError(t, a.Logout(context.Background()))

	assert.Empty(t, a.Token())
}

func TestLogout_NoActiveToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, models.SimpleErrorResponse{Error: "No active token found"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, testToken)
	err := a.Logout(context.Background())

	require.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "No active token found")
	assert.Equal(t, testToken, a.Token())
}

func TestAuthedCalls_RequireToken(t *testing.T) {
	a := newTestAdapter(t, "http://127.0.0.1:1", "")

	_, err := a.Profile(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)

	err = a.DeleteFile(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestRefreshToken_RotatesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/token/refresh/", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.AuthResponse{Token: "new-token", Message: "Token refreshed successfully"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, testToken)
	_, err := a.RefreshToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "new-token", a.Token())
}

func TestProfile_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{
			"error":   true,
			"message": "Invalid token.",
			"details": map[string]string{"detail": "Invalid token."},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, testToken)
	_, err := a.Profile(context.Background())

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "Invalid token.")
}

func TestUpdateProfile_SendsPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"first_name":"Al"}`, string(body))
		writeJSON(t, w, http.StatusOK, models.User{ID: 1, FirstName: "Al"})
	}))
	defer srv.Close()

	name := "Al"
	a := newTestAdapter(t, srv.URL, testToken)
	user, err := a.UpdateProfile(context.Background(), models.ProfileUpdate{FirstName: &name})

	require.NoError(t, err)
	assert.Equal(t, "Al", user.FirstName)
}

// ── Uploads ─────────────────────────────────────────────────────────────────

func TestUploadFile_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		content, _ := io.ReadAll(f)

		assert.Equal(t, "notes.md", hdr.Filename)
		assert.Equal(t, "# hello", string(content))

		writeJSON(t, w, http.StatusCreated, models.FileResponse{
			File:    models.UploadedFile{ID: 3, OriginalFilename: "notes.md", FileType: "md", FileSize: 7},
			Message: "File uploaded successfully.",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, testToken)
	got, err := a.UploadFile(context.Background(), "notes.md", strings.NewReader("# hello"))

	require.NoError(t, err)
	assert.Equal(t, int64(3), got.File.ID)
	assert.Equal(t, "md", got.File.FileType)
}

func TestUploadFile_Rejections(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{http.StatusUnsupportedMediaType, ErrUnsupportedMediaType},
		{http.StatusRequestEntityTooLarge, ErrPayloadTooLarge},
		{http.StatusForbidden, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, map[string]any{"error": true, "message": "rejected"})
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL, testToken)
			_, err := a.UploadFile(context.Background(), "a.exe", strings.NewReader("x"))

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		writeJSON(t, w, http.StatusOK, models.FileListResponse{
			Files: []models.UploadedFile{{ID: 2}, {ID: 1}},
			Count: 2,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, testToken)
	got, err := a.ListFiles(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, int64(2), got.Files[0].ID)
}

func TestGetFile_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload/99/", r.URL.Path)
		writeJSON(t, w, http.StatusNotFound, map[string]any{"error": true, "message": "The requested file was not found."})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, testToken)
	_, err := a.GetFile(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/upload/5/", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.MessageResponse{Message: "File deleted successfully."})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, testToken)

	assert.NoError(t, a.DeleteFile(context.Background(), 5))
}

func TestDownloadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload/5/content/", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	a := newTestAdapter(t, srv.URL, testToken)
	n, err := a.DownloadFile(context.Background(), 5, &buf)

	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	assert.Equal(t, "%PDF-1.7", buf.String())
}

func TestDownloadFile_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, map[string]any{"error": true, "message": "You do not have permission to access this file."})
	}))
	defer srv.Close()

	var buf bytes.Buffer
	a := newTestAdapter(t, srv.URL, testToken)
	_, err := a.DownloadFile(context.Background(), 5, &buf)

	require.ErrorIs(t, err, ErrForbidden)
	assert.Contains(t, err.Error(), "permission")
	assert.Zero(t, buf.Len())
}

// ── Search ──────────────────────────────────────────────────────────────────

func TestAutocomplete_SendsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "go", r.URL.Query().Get("q"))
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.AutocompleteResponse{
			Suggestions: []models.Suggestion{{Title: "Suggestion 1 for go", URL: "/suggestion1"}},
			CSRFToken:   "tok",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.Autocomplete(context.Background(), "go")

	require.NoError(t, err)
	assert.Equal(t, "tok", got.CSRFToken)
	require.Len(t, got.Suggestions, 1)
}

func TestSearch_InvalidJSONMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, models.SimpleErrorResponse{Error: "Invalid JSON"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.Search(context.Background(), "x")

	require.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "Invalid JSON")
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version":"v1.0.0","date":"2026-01-01","commit":"abc"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	info, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", info.BuildVersion())
	assert.Equal(t, "abc", info.BuildCommit())
}

// ── Error mapping ───────────────────────────────────────────────────────────

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "envelope", body: `{"error":true,"message":"Not found.","details":{}}`, want: "Not found."},
		{name: "simple", body: `{"error":"Invalid JSON"}`, want: "Invalid JSON"},
		{name: "form", body: `{"errors":{},"message":"Upload failed."}`, want: "Upload failed."},
		{name: "plain text", body: "  gateway down \n", want: "gateway down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage([]byte(tt.body)))
		})
	}
}

func TestMapStatus(t *testing.T) {
	assert.NoError(t, mapStatus(http.StatusNoContent, nil))
	assert.ErrorIs(t, mapStatus(http.StatusTooManyRequests, []byte(`{"error":true,"message":"slow down"}`)), ErrTooManyRequests)

	err := mapStatus(http.StatusTeapot, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}
