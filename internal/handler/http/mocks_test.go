package http

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-upload-desk/internal/config"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/service"
	"github.com/MKhiriev/go-upload-desk/models"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn     func(ctx context.Context, req models.RegisterRequest) (models.User, models.AuthToken, error)
	loginFn        func(ctx context.Context, req models.LoginRequest) (models.User, models.AuthToken, error)
	logoutFn       func(ctx context.Context, key string) error
	authenticateFn func(ctx context.Context, key string) (models.User, error)
	refreshTokenFn func(ctx context.Context, user models.User) (models.AuthToken, error)
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.AuthToken, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.AuthToken, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) Logout(ctx context.Context, key string) error {
	return m.logoutFn(ctx, key)
}

func (m *mockAuthService) Authenticate(ctx context.Context, key string) (models.User, error) {
	return m.authenticateFn(ctx, key)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, user models.User) (models.AuthToken, error) {
	return m.refreshTokenFn(ctx, user)
}

type mockUserService struct {
	profileFn       func(ctx context.Context, id int64) (models.User, error)
	updateProfileFn func(ctx context.Context, id int64, update models.ProfileUpdate) (models.User, error)
	activateFn      func(ctx context.Context, id int64) (models.User, error)
	deactivateFn    func(ctx context.Context, id int64) (models.User, error)
	setRoleFn       func(ctx context.Context, id int64, role models.Role) (models.User, error)
	statsFn         func(ctx context.Context) (models.UserStats, error)
}

func (m *mockUserService) Profile(ctx context.Context, id int64) (models.User, error) {
	return m.profileFn(ctx, id)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (models.User, error) {
	return m.updateProfileFn(ctx, id, update)
}

func (m *mockUserService) Activate(ctx context.Context, id int64) (models.User, error) {
	return m.activateFn(ctx, id)
}

func (m *mockUserService) Deactivate(ctx context.Context, id int64) (models.User, error) {
	return m.deactivateFn(ctx, id)
}

func (m *mockUserService) SetRole(ctx context.Context, id int64, role models.Role) (models.User, error) {
	return m.setRoleFn(ctx, id, role)
}

func (m *mockUserService) Stats(ctx context.Context) (models.UserStats, error) {
	return m.statsFn(ctx)
}

type mockUploadService struct {
	uploadFn      func(ctx context.Context, ownerID int64, upload models.FileUpload) (models.UploadedFile, error)
	listFn        func(ctx context.Context, ownerID int64) ([]models.UploadedFile, error)
	getFn         func(ctx context.Context, ownerID, id int64) (models.UploadedFile, error)
	deleteFn      func(ctx context.Context, ownerID, id int64) (models.UploadedFile, error)
	openFn        func(ctx context.Context, ownerID, id int64) (models.UploadedFile, io.ReadCloser, error)
	applyStatusFn func(ctx context.Context, id int64, status models.FileStatus) (models.UploadedFile, error)
}

func (m *mockUploadService) Upload(ctx context.Context, ownerID int64, upload models.FileUpload) (models.UploadedFile, error) {
	return m.uploadFn(ctx, ownerID, upload)
}

func (m *mockUploadService) List(ctx context.Context, ownerID int64) ([]models.UploadedFile, error) {
	return m.listFn(ctx, ownerID)
}

func (m *mockUploadService) Get(ctx context.Context, ownerID, id int64) (models.UploadedFile, error) {
	return m.getFn(ctx, ownerID, id)
}

func (m *mockUploadService) Delete(ctx context.Context, ownerID, id int64) (models.UploadedFile, error) {
	return m.deleteFn(ctx, ownerID, id)
}

func (m *mockUploadService) Open(ctx context.Context, ownerID, id int64) (models.UploadedFile, io.ReadCloser, error) {
	return m.openFn(ctx, ownerID, id)
}

func (m *mockUploadService) ApplyStatus(ctx context.Context, id int64, status models.FileStatus) (models.UploadedFile, error) {
	return m.applyStatusFn(ctx, id, status)
}

type mockCSRFService struct {
	issueFn  func(ctx context.Context) (string, error)
	verifyFn func(ctx context.Context, token string) error
}

func (m *mockCSRFService) Issue(ctx context.Context) (string, error) {
	return m.issueFn(ctx)
}

func (m *mockCSRFService) Verify(ctx context.Context, token string) error {
	return m.verifyFn(ctx, token)
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string {
	return m.version
}

func (m *mockAppInfoService) BuildInfo(context.Context) models.AppBuildInfo {
	return models.NewAppBuildInfo(m.version, "2026-01-02", "abc123")
}

type mockRateLimiter struct {
	allowFn func(ctx context.Context, key string) (bool, error)
}

func (m *mockRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return m.allowFn(ctx, key)
}

// ─────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────

const (
	testTokenKey = "9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b"
	testCSRF     = "csrf-token"
)

var (
	testUser = models.User{
		ID:        1,
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		IsActive:  true,
		Role:      models.RoleContributor,
	}
	testViewer = models.User{
		ID:       2,
		Username: "bob",
		Email:    "bob@example.com",
		IsActive: true,
		Role:     models.RoleViewer,
	}
	testAdmin = models.User{
		ID:          3,
		Username:    "root",
		Email:       "root@example.com",
		IsActive:    true,
		IsSuperuser: true,
	}
)

// authAs returns an AuthService mock that accepts testTokenKey as user and
// rejects every other key.
func authAs(user models.User) *mockAuthService {
	return &mockAuthService{
		authenticateFn: func(_ context.Context, key string) (models.User, error) {
			if key != testTokenKey {
				return models.User{}, service.ErrInvalidToken
			}
			return user, nil
		},
	}
}

func staticCSRF() *mockCSRFService {
	return &mockCSRFService{
		issueFn:  func(context.Context) (string, error) { return testCSRF, nil },
		verifyFn: verifyTestCSRF,
	}
}

func verifyTestCSRF(_ context.Context, token string) error {
	if token != testCSRF {
		return service.ErrInvalidCSRFToken
	}
	return nil
}

// newTestServices fills every service with a working default so route tests
// never hit a nil interface.
func newTestServices() *service.Services {
	return &service.Services{
		AuthService:       authAs(testUser),
		UserService:       &mockUserService{},
		PermissionService: service.NewPermissionService(),
		UploadService:     &mockUploadService{},
		SearchService:     service.NewSearchService(),
		CSRFService:       staticCSRF(),
		AppInfoService:    &mockAppInfoService{version: "v1.2.3"},
	}
}

func testConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{
			CSRFTokenTTL:  time.Hour,
			PublicBaseURL: "https://files.example.com",
		},
	}
}

// newRouterHandler builds a Handler around svcs with no rate limiting.
func newRouterHandler(svcs *service.Services) *Handler {
	return NewHandler(svcs, nil, testConfig(), logger.Nop())
}
