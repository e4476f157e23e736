package tui

import (
	"github.com/MKhiriev/go-auth-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo switches the active page. A non-nil Payload is delivered to
// the new page instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

type RegisterResult struct {
	Username string
	TraceID  string
	Err      error
}

// RegisterSuccessNotice is the payload shown by the menu after a registration.
type RegisterSuccessNotice struct {
	Username string
}

type LoginResult struct {
	Account models.Account
	TraceID string
	Err     error
}

type accountsLoadedMsg struct {
	items   []models.AccountSummary
	traceID string
	err     error
}

type accountToggledMsg struct {
	username string
	active   bool
	traceID  string
	err      error
}

type statsLoadedMsg struct {
	stats    models.AccountStats
	location string
	traceID  string
	err      error
}
