package service

import (
	"fmt"

	"github.com/MKhiriev/go-upload-desk/internal/config"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
	"github.com/MKhiriev/go-upload-desk/internal/store"
	"github.com/MKhiriev/go-upload-desk/internal/validators"
	"github.com/MKhiriev/go-upload-desk/models"
)

type Services struct {
	AuthService       AuthService
	UserService       UserService
	PermissionService PermissionService
	UploadService     UploadService
	SearchService     SearchService
	CSRFService       CSRFService
	AppInfoService    AppInfoService
}

func NewServices(storages *store.Storages, publisher EventPublisher, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	userValidator := validators.NewUserValidator(validators.NewPasswordValidator())

	appInfoService, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	uploadService := NewUploadValidationService().
		Wrap(NewUploadService(storages.FileRepository, storages.BlobStorage, publisher, logger))

	return &Services{
		AuthService:       NewAuthService(storages.UserRepository, storages.TokenRepository, userValidator, logger),
		UserService:       NewUserService(storages.UserRepository, userValidator, logger),
		PermissionService: NewPermissionService(),
		UploadService:     uploadService,
		SearchService:     NewSearchService(),
		CSRFService:       NewCSRFService(cfg.App),
		AppInfoService:    appInfoService,
	}, nil
}
