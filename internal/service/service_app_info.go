package service

import (
	"context"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/models"
)

type appInfoService struct {
	buildInfo       models.AppBuildInfo
	storageLocation string

	logger *logger.Logger
}

func NewAppInfoService(buildInfo models.AppBuildInfo, storageLocation string, logger *logger.Logger) (AppInfoService, error) {
	if buildInfo.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		buildInfo:       buildInfo,
		storageLocation: storageLocation,
		logger:          logger,
	}, nil
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.buildInfo
}

// GetStorageLocation returns where account data lives: a file path for
// SQLite or a redacted connection URL for PostgreSQL.
func (s *appInfoService) GetStorageLocation(ctx context.Context) string {
	return s.storageLocation
}
