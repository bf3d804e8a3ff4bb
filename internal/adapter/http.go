package adapter

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-upload-desk/internal/config"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/utils"
	"github.com/MKhiriev/go-upload-desk/models"
	"github.com/go-resty/resty/v2"
)

const userAgent = "upload-desk-cli"

// maxErrorBody caps how much of a failed download is read for the message.
const maxErrorBody = 64 << 10

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// It normalises cfg.ServerURL, applies cfg.RequestTimeout and seeds the
// token from cfg.Token.
//
// Returns an error if the server URL is empty or cannot be parsed.
func NewHTTPServerAdapter(cfg config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	client := utils.NewHTTPClient(userAgent)
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	a := &httpServerAdapter{client: client, logger: logger}
	a.SetToken(cfg.Token)
	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/register/", req)
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/login/", req)
}

// authenticate posts body to path and keeps the token of a successful
// AuthResponse.
func (h *httpServerAdapter) authenticate(ctx context.Context, path string, body any) (models.AuthResponse, error) {
	var result models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("request %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	h.SetToken(result.Token)
	h.logger.Debug().Str("path", path).Int64("user_id", result.User.ID).Msg("authenticated")
	return result, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Post("/api/auth/logout/")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpServerAdapter) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	err := h.do(ctx, resty.MethodGet, "/api/auth/profile/", nil, &user)
	return user, err
}

func (h *httpServerAdapter) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error) {
	var user models.User
	err := h.do(ctx, resty.MethodPatch, "/api/auth/profile/", update, &user)
	return user, err
}

func (h *httpServerAdapter) RefreshToken(ctx context.Context) (models.AuthResponse, error) {
	var result models.AuthResponse
	if err := h.do(ctx, resty.MethodPost, "/api/auth/token/refresh/", nil, &result); err != nil {
		return models.AuthResponse{}, err
	}

	h.SetToken(result.Token)
	return result, nil
}

func (h *httpServerAdapter) Permissions(ctx context.Context) (models.PermissionsResponse, error) {
	var result models.PermissionsResponse
	err := h.do(ctx, resty.MethodGet, "/api/auth/permissions/", nil, &result)
	return result, err
}

func (h *httpServerAdapter) UploadFile(ctx context.Context, filename string, content io.Reader) (models.FileResponse, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.FileResponse{}, err
	}

	var result models.FileResponse
	resp, err := req.
		SetFileReader("file", filename, content).
		SetResult(&result).
		Post("/api/upload/")
	if err != nil {
		return models.FileResponse{}, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FileResponse{}, err
	}

	return result, nil
}

func (h *httpServerAdapter) ListFiles(ctx context.Context) (models.FileListResponse, error) {
	var result models.FileListResponse
	err := h.do(ctx, resty.MethodGet, "/api/upload/", nil, &result)
	return result, err
}

func (h *httpServerAdapter) GetFile(ctx context.Context, id int64) (models.UploadedFile, error) {
	var file models.UploadedFile
	err := h.do(ctx, resty.MethodGet, filePath(id), nil, &file)
	return file, err
}

func (h *httpServerAdapter) DeleteFile(ctx context.Context, id int64) error {
	return h.do(ctx, resty.MethodDelete, filePath(id), nil, nil)
}

func (h *httpServerAdapter) DownloadFile(ctx context.Context, id int64, w io.Writer) (int64, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return 0, err
	}

	resp, err := req.SetDoNotParseResponse(true).Get(filePath(id) + "content/")
	if err != nil {
		return 0, fmt.Errorf("download request: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
		return 0, mapStatus(resp.StatusCode(), msg)
	}

	n, err := io.Copy(w, body)
	if err != nil {
		return n, fmt.Errorf("download copy: %w", err)
	}
	return n, nil
}

func (h *httpServerAdapter) Autocomplete(ctx context.Context, query string) (models.AutocompleteResponse, error) {
	var result models.AutocompleteResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetResult(&result).
		Get("/api/autocomplete")
	if err != nil {
		return result, fmt.Errorf("autocomplete request: %w", err)
	}
	return result, mapHTTPError(resp)
}

func (h *httpServerAdapter) Search(ctx context.Context, query string) (models.SearchResponse, error) {
	var result models.SearchResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.SearchRequest{Query: query}).
		SetResult(&result).
		Post("/api/search")
	if err != nil {
		return result, fmt.Errorf("search request: %w", err)
	}
	return result, mapHTTPError(resp)
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var info models.AppBuildInfo

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/api/version/")
	if err != nil {
		return info, fmt.Errorf("version request: %w", err)
	}
	return info, mapHTTPError(resp)
}

// do sends an authenticated JSON request and decodes a 2xx body into result
// when it is not nil.
func (h *httpServerAdapter) do(ctx context.Context, method, path string, body, result any) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	return h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Token "+token), nil
}

func filePath(id int64) string {
	return "/api/upload/" + strconv.FormatInt(id, 10) + "/"
}
