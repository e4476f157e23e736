package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-auth-keeper/internal/app"
	"github.com/MKhiriev/go-auth-keeper/internal/service"
	"github.com/MKhiriev/go-auth-keeper/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// AccountsModel lists every account, newest first, and lets the operator
// soft-disable or re-enable the selected one.
type AccountsModel struct {
	tracer tracer
	auth   service.AuthService

	items   []models.AccountSummary
	idx     int
	loading bool
	spinner spinner.Model
	status  string
	errMsg  string

	// confirm is set while a disable is waiting for y/n.
	confirm *confirmModel
}

func NewAccountsModel(tr tracer, auth service.AuthService) *AccountsModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &AccountsModel{tracer: tr, auth: auth, spinner: s}
}

// Init reloads the listing every time the page is opened.
func (m *AccountsModel) Init() tea.Cmd {
	m.loading = true
	m.status = ""
	m.errMsg = ""
	m.confirm = nil
	return tea.Batch(m.spinner.Tick, m.cmdLoad())
}

func (m *AccountsModel) current() (models.AccountSummary, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.AccountSummary{}, false
	}
	return m.items[m.idx], true
}

func (m *AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case accountsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err, msg.traceID)
			return m, nil
		}
		m.items = msg.items
		if m.idx >= len(m.items) {
			m.idx = max(len(m.items)-1, 0)
		}
		return m, nil

	case accountToggledMsg:
		if msg.err != nil {
			m.errMsg = humanizeAdminError(msg.err, msg.traceID)
			return m, nil
		}
		if msg.active {
			m.status = fmt.Sprintf("User '%s' enabled", msg.username)
		} else {
			m.status = fmt.Sprintf("User '%s' disabled", msg.username)
		}
		m.loading = true
		return m, m.cmdLoad()

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *AccountsModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.confirm != nil {
		switch {
		case key.Matches(msg, keys.yes):
			m.confirm = nil
			if item, ok := m.current(); ok {
				return m.cmdSetActive(item.Username, false)
			}
		case key.Matches(msg, keys.no):
			m.confirm = nil
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.esc):
		return func() tea.Msg { return NavigateTo{Page: pageMenu} }
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.refresh):
		m.loading = true
		m.errMsg = ""
		return m.cmdLoad()
	case key.Matches(msg, keys.disable):
		if item, ok := m.current(); ok && item.IsActive {
			m.status = ""
			m.errMsg = ""
			m.confirm = &confirmModel{message: fmt.Sprintf("Disable \"%s\"?", item.Username)}
		}
	case key.Matches(msg, keys.enable):
		if item, ok := m.current(); ok && !item.IsActive {
			m.status = ""
			m.errMsg = ""
			return m.cmdSetActive(item.Username, true)
		}
	}

	return nil
}

func (m *AccountsModel) View() string {
	if m.confirm != nil {
		return renderPage("REGISTERED USERS", m.confirm.View(), "")
	}

	var b strings.Builder

	switch {
	case m.loading && len(m.items) == 0:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading...\n")
	case len(m.items) == 0:
		b.WriteString(app.MsgNoAccounts)
		b.WriteString("\n")
	default:
		b.WriteString(fmt.Sprintf("  %-20s │ %-23s │ %-23s │ %-6s │ %s\n",
			"Username", "Registered", "Last Login", "Failed", "Status"))
		b.WriteString(strings.Repeat("─", 96))
		b.WriteString("\n")
		for i, item := range m.items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%-20s │ %-23s │ %-23s │ %-6d │ %s\n",
				cursor,
				fitText(item.Username, 20),
				formatTime(item.RegisteredAt),
				formatLastLogin(item.LastLoginAt),
				item.FailedAttempts,
				accountStatus(item.IsActive),
			))
		}
		b.WriteString(fmt.Sprintf("\nTotal registered users: %d\n", len(m.items)))
	}

	if m.status != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	renderError(&b, m.errMsg)

	return renderPage("REGISTERED USERS", strings.TrimRight(b.String(), "\n"),
		"↑/↓: navigate │ d: disable │ e: enable │ r: refresh │ esc: back")
}

func (m *AccountsModel) cmdLoad() tea.Cmd {
	ctx, traceID := m.tracer.start()
	auth := m.auth

	return func() tea.Msg {
		items, err := auth.ListAccounts(ctx)
		return accountsLoadedMsg{items: items, traceID: traceID, err: err}
	}
}

func (m *AccountsModel) cmdSetActive(username string, active bool) tea.Cmd {
	ctx, traceID := m.tracer.start()
	auth := m.auth

	return func() tea.Msg {
		var err error
		if active {
			err = auth.EnableAccount(ctx, username)
		} else {
			err = auth.DisableAccount(ctx, username)
		}
		return accountToggledMsg{username: username, active: active, traceID: traceID, err: err}
	}
}

func accountStatus(active bool) string {
	if active {
		return "active"
	}
	return "disabled"
}
