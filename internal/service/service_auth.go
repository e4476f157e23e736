package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-keeper/internal/config"
	"github.com/MKhiriev/go-auth-keeper/internal/crypto"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/store"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// authService is the concrete implementation of AuthService.
// It turns passwords into credentials with a CredentialCodec and keeps
// accounts and their login telemetry in an AccountRepository. Input
// validation is layered on top by AuthValidationService.
type authService struct {
	// accountRepository is the data-access layer for accounts.
	accountRepository store.AccountRepository

	// codec derives and verifies stored credentials.
	codec crypto.CredentialCodec

	// recentLoginWindow is how far back Stats looks when counting recent logins.
	recentLoginWindow time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService over accountRepository and codec.
//
// The returned service keeps no mutable state and is safe for concurrent use;
// all coordination between callers happens in the store.
func NewAuthService(accountRepository store.AccountRepository, codec crypto.CredentialCodec, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		accountRepository: accountRepository,
		codec:             codec,
		recentLoginWindow: cfg.RecentLoginWindow,
		logger:            logger,
	}
}

// Register derives a credential from req.Password and creates the account.
//
// Returns the persisted account or:
//   - ErrUsernameTaken (also matching store.ErrDuplicateUsername) if the
//     username is in use.
//   - A wrapped storage error for anything else.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	credential, err := a.codec.Derive(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error deriving credential")
		return models.Account{}, fmt.Errorf("error deriving credential: %w", err)
	}

	account, err := a.accountRepository.CreateAccount(ctx, req.Username, credential)
	if errors.Is(err, store.ErrDuplicateUsername) {
		log.Info().Str("func", "*authService.Register").Str("username", req.Username).Msg("username already taken")
		return models.Account{}, fmt.Errorf("%w: %w", ErrUsernameTaken, err)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("username", req.Username).Msg("account creation ended with error")
		return models.Account{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	log.Info().Str("func", "*authService.Register").Int64("account_id", account.ID).Msg("account registered")
	return account, nil
}

// Login authenticates req against the stored credential.
//
// An unknown username still costs one verification against the codec decoy,
// so the two failure kinds take about the same time. A disabled account is
// rejected before the password is checked and its counters stay as they are.
// A wrong password increments the failed-attempt counter.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	account, err := a.accountRepository.FindAccountByUsername(ctx, req.Username)
	if errors.Is(err, store.ErrAccountNotFound) {
		_, _ = a.codec.Verify(req.Password, a.codec.Decoy())
		log.Info().Str("func", "*authService.Login").Str("username", req.Username).Msg("login attempt for unknown user")
		return models.Account{}, ErrUnknownUser
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Str("username", req.Username).Msg("error finding account")
		return models.Account{}, fmt.Errorf("error finding account: %w", err)
	}

	if !account.IsActive {
		log.Info().Str("func", "*authService.Login").Int64("account_id", account.ID).Msg("login attempt for disabled account")
		return models.Account{}, ErrAccountDisabled
	}

	ok, err := a.codec.Verify(req.Password, account.Credential)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Int64("account_id", account.ID).Msg("stored credential cannot be verified")
		return models.Account{}, fmt.Errorf("%w: %w", store.ErrCorrupt, err)
	}

	if !ok {
		if err = a.accountRepository.RecordFailedAttempt(ctx, account.ID); err != nil {
			log.Err(err).Str("func", "*authService.Login").Int64("account_id", account.ID).Msg("error recording failed attempt")
			return models.Account{}, fmt.Errorf("error recording failed attempt: %w", err)
		}
		log.Info().Str("func", "*authService.Login").Int64("account_id", account.ID).Msg("wrong password")
		return models.Account{}, ErrInvalidCredentials
	}

	loggedIn, err := a.accountRepository.RecordSuccessfulLogin(ctx, account.ID)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Int64("account_id", account.ID).Msg("error recording successful login")
		return models.Account{}, fmt.Errorf("error recording successful login: %w", err)
	}

	log.Info().Str("func", "*authService.Login").Int64("account_id", account.ID).Msg("user logged in")
	return loggedIn, nil
}

func (a *authService) ListAccounts(ctx context.Context) ([]models.AccountSummary, error) {
	accounts, err := a.accountRepository.ListAccounts(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.ListAccounts").Msg("error listing accounts")
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}

	return accounts, nil
}

// Stats counts accounts and the logins that happened within the configured
// recent-login window.
func (a *authService) Stats(ctx context.Context) (models.AccountStats, error) {
	stats, err := a.accountRepository.AggregateStats(ctx, a.recentLoginWindow)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Stats").Msg("error aggregating stats")
		return models.AccountStats{}, fmt.Errorf("error aggregating stats: %w", err)
	}

	return stats, nil
}

func (a *authService) DisableAccount(ctx context.Context, username string) error {
	return a.setActive(ctx, username, false)
}

func (a *authService) EnableAccount(ctx context.Context, username string) error {
	return a.setActive(ctx, username, true)
}

func (a *authService) setActive(ctx context.Context, username string, active bool) error {
	log := logger.FromContext(ctx)

	account, err := a.accountRepository.FindAccountByUsername(ctx, username)
	if errors.Is(err, store.ErrAccountNotFound) {
		return fmt.Errorf("%w: %w", ErrUnknownUser, err)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.setActive").Str("username", username).Msg("error finding account")
		return fmt.Errorf("error finding account: %w", err)
	}

	if account.IsActive == active {
		return nil
	}

	if err = a.accountRepository.SetActive(ctx, account.ID, active); err != nil {
		log.Err(err).Str("func", "*authService.setActive").Int64("account_id", account.ID).Msg("error changing account state")
		return fmt.Errorf("error changing account state: %w", err)
	}

	log.Info().Str("func", "*authService.setActive").Int64("account_id", account.ID).Bool("active", active).Msg("account state changed")
	return nil
}
