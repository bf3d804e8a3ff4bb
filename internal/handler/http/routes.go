package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MKhiriev/go-upload-desk/models"
)

const compressionLevel = 5

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(compressionLevel, "application/json", "text/html", "text/javascript"))
	if len(h.server.AllowedOrigins) > 0 {
		router.Use(h.cors())
	}
	if h.server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.server.RequestTimeout))
	}

	// set before any sub-router is mounted so they inherit the JSON bodies
	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	// web client
	router.Get("/", h.homePage)
	router.Get("/search/", h.searchPage)
	router.Handle("/static/*", staticFiles())

	// routes without authorization
	router.Get("/api/version/", h.getServerVersion)
	router.Get("/api/autocomplete", h.autocomplete)
	router.With(h.checkCSRF).Post("/api/search", h.search)

	router.Route("/api/auth", func(r chi.Router) {
		r.With(h.rateLimit("register")).Post("/register/", h.register)
		r.With(h.rateLimit("login")).Post("/login/", h.login)
		r.With(h.requireCredentials).Post("/logout/", h.logout)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/profile/", h.getProfile)
			r.Put("/profile/", h.updateProfile)
			r.Patch("/profile/", h.updateProfile)
			r.Post("/token/refresh/", h.refreshToken)
			r.Get("/permissions/", h.permissions)
		})
	})

	router.Route("/api/upload", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/", h.listFiles)
		r.With(h.requirePermission(models.PermUploadFiles)).Post("/", h.uploadFile)
		r.Get("/{id}/", h.getFile)
		r.Delete("/{id}/", h.deleteFile)
		r.Get("/{id}/content/", h.fileContent)
	})

	router.Route("/api/admin", func(r chi.Router) {
		r.Use(h.auth)
		r.With(h.requirePermission(models.PermViewAnalytics)).Get("/stats/", h.userStats)

		r.Group(func(r chi.Router) {
			r.Use(h.requirePermission(models.PermManageUsers))
			r.Post("/users/{id}/activate/", h.activateUser)
			r.Post("/users/{id}/deactivate/", h.deactivateUser)
			r.Put("/users/{id}/role/", h.setUserRole)
		})
	})

	return router
}

func (h *Handler) cors() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: h.server.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", csrfHeader, csrfLegacyHeader, traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
