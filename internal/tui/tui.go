// Package tui is the terminal front end of the account store, built on
// Bubble Tea. Each page is a tea.Model; RootModel routes between them.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/internal/service"
	"github.com/MKhiriev/go-auth-keeper/internal/utils"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrNoServices = errors.New("tui: services are required")

const (
	pageMenu      = "menu"
	pageRegister  = "register"
	pageLogin     = "login"
	pageDashboard = "dashboard"
	pageAccounts  = "accounts"
	pageStats     = "stats"
)

type TUI struct {
	services *service.Services
	logger   *logger.Logger
}

func New(services *service.Services, logger *logger.Logger) (*TUI, error) {
	if services == nil || services.AuthService == nil || services.AppInfoService == nil {
		return nil, ErrNoServices
	}
	return &TUI{services: services, logger: logger}, nil
}

// Run shows the main menu and blocks until the user quits or ctx is done.
func (t *TUI) Run(ctx context.Context) error {
	root := t.newRootModel(ctx)

	_, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (t *TUI) newRootModel(ctx context.Context) RootModel {
	tr := tracer{ctx: ctx, logger: t.logger}
	auth := t.services.AuthService
	info := t.services.AppInfoService

	pages := map[string]tea.Model{
		pageMenu:      NewMenuModel(),
		pageRegister:  NewRegisterModel(tr, auth),
		pageLogin:     NewLoginModel(tr, auth),
		pageDashboard: NewDashboardModel(),
		pageAccounts:  NewAccountsModel(tr, auth),
		pageStats:     NewStatsModel(tr, auth, info),
	}

	return NewRootModel(pages, pageMenu, info.GetBuildInfo(ctx))
}

// tracer hands out a fresh trace id and a matching context logger for every
// user action, so all log entries of one action can be correlated.
type tracer struct {
	ctx    context.Context
	logger *logger.Logger
}

func (t tracer) start() (context.Context, string) {
	traceID := utils.NewTraceID()
	return t.logger.WithTraceID(t.ctx, traceID), traceID
}
