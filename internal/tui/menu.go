package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-auth-keeper/internal/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuItem struct {
	title string
	page  string // empty means quit
}

var menuItems = []menuItem{
	{title: "Register New User", page: pageRegister},
	{title: "Login", page: pageLogin},
	{title: "View All Users", page: pageAccounts},
	{title: "Database Statistics", page: pageStats},
	{title: "Exit"},
}

type MenuModel struct {
	items  []menuItem
	idx    int
	status string
}

func NewMenuModel() *MenuModel {
	return &MenuModel{items: menuItems}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if notice, ok := msg.(RegisterSuccessNotice); ok {
		m.status = fmt.Sprintf("User '%s' %s", notice.Username, app.MsgRegistrationSucceeded)
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		return m, m.choose(m.idx)
	default:
		// digits pick an item directly
		s := keyMsg.String()
		if len(s) == 1 && s[0] >= '1' && int(s[0]-'0') <= len(m.items) {
			m.idx = int(s[0] - '1')
			return m, m.choose(m.idx)
		}
	}

	return m, nil
}

func (m *MenuModel) choose(idx int) tea.Cmd {
	m.status = ""
	page := m.items[idx].page
	if page == "" {
		return tea.Quit
	}
	return func() tea.Msg { return NavigateTo{Page: page} }
}

func (m *MenuModel) View() string {
	var b strings.Builder
	idColWidth := lipgloss.Width("ID")
	itemsCountWidth := lipgloss.Width(fmt.Sprintf("%d", len(m.items)))
	if itemsCountWidth > idColWidth {
		idColWidth = itemsCountWidth
	}
	idColWidth += 2 // reserve space for selection marker and space ("<marker> <id>")

	actionColWidth := lipgloss.Width("Action")
	for _, item := range m.items {
		if w := lipgloss.Width(item.title); w > actionColWidth {
			actionColWidth = w
		}
	}

	if m.status != "" {
		b.WriteString("OK: ")
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("%-*s │ %-*s\n", idColWidth, "ID", actionColWidth, "Action"))
	b.WriteString(strings.Repeat("─", idColWidth))
	b.WriteString("─┼─")
	b.WriteString(strings.Repeat("─", actionColWidth))
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		idCell := fmt.Sprintf("%s %d", cursor, i+1)
		b.WriteString(fmt.Sprintf("%-*s │ %-*s\n", idColWidth, idCell, actionColWidth, item.title))
	}

	return renderPage("LOGIN & REGISTRATION SYSTEM", strings.TrimRight(b.String(), "\n"), "enter/1-5: select │ ↑/↓: navigate │ v: version")
}
