package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/validators"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// input validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService // returns a decorated AuthService applying additional behavior
}

// AuthValidationService checks registration input before it reaches the
// wrapped AuthService. Everything else is passed through untouched.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewAccountValidator(),
	}
}

// Register stops at the first violation, checked in the order username,
// confirmation, password strength. No credential is derived for an
// invalid request.
func (v *AuthValidationService) Register(ctx context.Context, req models.RegisterRequest) (models.Account, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		logger.FromContext(ctx).Info().Err(err).Str("func", "*AuthValidationService.Register").
			Str("username", req.Username).Msg("registration rejected by validation")
		return models.Account{}, validationError(err)
	}

	return v.inner.Register(ctx, req)
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.Account, error) {
	return v.inner.Login(ctx, req)
}

func (v *AuthValidationService) ListAccounts(ctx context.Context) ([]models.AccountSummary, error) {
	return v.inner.ListAccounts(ctx)
}

func (v *AuthValidationService) Stats(ctx context.Context) (models.AccountStats, error) {
	return v.inner.Stats(ctx)
}

func (v *AuthValidationService) DisableAccount(ctx context.Context, username string) error {
	return v.inner.DisableAccount(ctx, username)
}

func (v *AuthValidationService) EnableAccount(ctx context.Context, username string) error {
	return v.inner.EnableAccount(ctx, username)
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}

func validationError(err error) error {
	switch {
	case errors.Is(err, validators.ErrInvalidUsername):
		return fmt.Errorf("%w: %w", ErrInvalidUsername, err)
	case errors.Is(err, validators.ErrPasswordMismatch):
		return fmt.Errorf("%w: %w", ErrPasswordMismatch, err)
	case errors.Is(err, validators.ErrWeakPassword):
		return fmt.Errorf("%w: %w", ErrWeakPassword, err)
	default:
		return fmt.Errorf("error during registration validation: %w", err)
	}
}
