package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-auth-keeper/internal/mock"
	"github.com/MKhiriev/go-auth-keeper/internal/validators"
	"github.com/MKhiriev/go-auth-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestValidationSvc(t *testing.T) (AuthService, *mock.MockAuthService) {
	t.Helper()
	inner := mock.NewMockAuthService(gomock.NewController(t))
	return NewAuthValidationService().Wrap(inner), inner
}

func TestAuthValidationService_Register_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		req         models.RegisterRequest
		wantErr     error
		wantWrapped error
	}{
		{
			name:        "username too short",
			req:         models.RegisterRequest{Username: "ab", Password: "Str0ng!Pw", PasswordConfirmation: "Str0ng!Pw"},
			wantErr:     ErrInvalidUsername,
			wantWrapped: validators.ErrInvalidUsername,
		},
		{
			name:        "weak password",
			req:         models.RegisterRequest{Username: "alice_01", Password: "weakpass", PasswordConfirmation: "weakpass"},
			wantErr:     ErrWeakPassword,
			wantWrapped: validators.ErrWeakPassword,
		},
		{
			name:        "confirmation differs",
			req:         models.RegisterRequest{Username: "alice_01", Password: "Str0ng!Pw", PasswordConfirmation: "Str0ng!Pv"},
			wantErr:     ErrPasswordMismatch,
			wantWrapped: validators.ErrPasswordMismatch,
		},
		{
			name:        "mismatch is reported before weakness",
			req:         models.RegisterRequest{Username: "alice_01", Password: "weak", PasswordConfirmation: "other"},
			wantErr:     ErrPasswordMismatch,
			wantWrapped: validators.ErrPasswordMismatch,
		},
		{
			name:        "username is reported first",
			req:         models.RegisterRequest{Username: "a b", Password: "weak", PasswordConfirmation: "other"},
			wantErr:     ErrInvalidUsername,
			wantWrapped: validators.ErrInvalidUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the inner service must not be reached
			svc, _ := newTestValidationSvc(t)

			_, err := svc.Register(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.wantWrapped)
		})
	}
}

func TestAuthValidationService_Register_PassesValidRequest(t *testing.T) {
	svc, inner := newTestValidationSvc(t)
	ctx := context.Background()

	req := models.RegisterRequest{Username: "alice_01", Password: "Str0ng!Pw", PasswordConfirmation: "Str0ng!Pw"}
	account := models.Account{ID: 1, Username: "alice_01", IsActive: true}

	inner.EXPECT().Register(ctx, req).Return(account, nil)

	got, err := svc.Register(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, account, got)
}

func TestAuthValidationService_PassThrough(t *testing.T) {
	svc, inner := newTestValidationSvc(t)
	ctx := context.Background()

	login := models.LoginRequest{Username: "x", Password: "y"}
	inner.EXPECT().Login(ctx, login).Return(models.Account{}, ErrUnknownUser)
	inner.EXPECT().ListAccounts(ctx).Return([]models.AccountSummary{{ID: 1}}, nil)
	inner.EXPECT().Stats(ctx).Return(models.AccountStats{Total: 1}, nil)
	inner.EXPECT().DisableAccount(ctx, "alice_01").Return(nil)
	inner.EXPECT().EnableAccount(ctx, "alice_01").Return(ErrUnknownUser)

	_, err := svc.Login(ctx, login)
	assert.ErrorIs(t, err, ErrUnknownUser, "login input is not format-checked")

	list, err := svc.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)

	assert.NoError(t, svc.DisableAccount(ctx, "alice_01"))
	assert.ErrorIs(t, svc.EnableAccount(ctx, "alice_01"), ErrUnknownUser)
}
