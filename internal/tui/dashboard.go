package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-auth-keeper/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// DashboardModel shows the profile of the account that just logged in.
// Leaving it logs the user out.
type DashboardModel struct {
	account models.AccountSummary
}

func NewDashboardModel() *DashboardModel {
	return &DashboardModel{}
}

func (m *DashboardModel) Init() tea.Cmd {
	return nil
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(LoginResult); ok {
		m.account = result.Account.Summary()
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, keys.esc) || key.Matches(keyMsg, keys.enter) {
			m.account = models.AccountSummary{}
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		}
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Welcome back, %s!\n\n", m.account.Username))
	b.WriteString(fmt.Sprintf("%-21s │ %s\n", "Username", m.account.Username))
	b.WriteString(fmt.Sprintf("%-21s │ %s\n", "Registration Date", formatTime(m.account.RegisteredAt)))
	b.WriteString(fmt.Sprintf("%-21s │ %s\n", "Last Login", formatLastLogin(m.account.LastLoginAt)))
	b.WriteString(fmt.Sprintf("%-21s │ %d\n", "Failed Login Attempts", m.account.FailedAttempts))

	return renderPage("USER DASHBOARD", strings.TrimRight(b.String(), "\n"), "enter/esc: logout")
}
