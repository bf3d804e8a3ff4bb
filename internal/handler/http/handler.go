package http

import (
	"github.com/MKhiriev/go-upload-desk/internal/config"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/service"
	"github.com/MKhiriev/go-upload-desk/internal/store"
)

type Handler struct {
	services *service.Services
	limiter  store.RateLimiter

	app    config.App
	server config.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, limiter store.RateLimiter, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		limiter:  limiter,
		app:      cfg.App,
		server:   cfg.Server,
		logger:   logger,
	}
}
