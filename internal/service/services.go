package service

import (
	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/crypto"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/store"
	"github.com/MKhiriev/go-auth-keeper/models"
)

type Services struct {
	AuthService    AuthService
	AppInfoService AppInfoService
}

// NewServices wires the services over storages. The auth service is always
// wrapped with registration validation.
func NewServices(storages *store.Storages, codec crypto.CredentialCodec, buildInfo models.AppBuildInfo, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(buildInfo, storages.Location(), logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthService(storages.AccountRepository, codec, cfg.App, logger)

	return &Services{
		AuthService:    NewAuthValidationService().Wrap(authService),
		AppInfoService: appInfoService,
	}, nil
}
