package service

import (
	"context"

	"github.com/MKhiriev/go-auth-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_service_mock.go -package=mock

// AuthService is the presentation-facing surface of the account store.
type AuthService interface {
	// Register validates the request, derives a credential and creates an
	// active account with zeroed counters.
	Register(ctx context.Context, req models.RegisterRequest) (models.Account, error)

	// Login checks the password of an existing, active account. On success
	// the returned account already carries the updated last login and a
	// zero failed-attempt counter.
	Login(ctx context.Context, req models.LoginRequest) (models.Account, error)

	ListAccounts(ctx context.Context) ([]models.AccountSummary, error)
	Stats(ctx context.Context) (models.AccountStats, error)

	DisableAccount(ctx context.Context, username string) error
	EnableAccount(ctx context.Context, username string) error
}

type AppInfoService interface {
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
	GetStorageLocation(ctx context.Context) string
}
