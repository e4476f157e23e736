package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-auth-keeper/internal/service"
	"github.com/MKhiriev/go-auth-keeper/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// StatsModel shows aggregate account counts and where the data is stored.
type StatsModel struct {
	tracer tracer
	auth   service.AuthService
	info   service.AppInfoService

	stats    models.AccountStats
	location string
	loaded   bool
	errMsg   string
}

func NewStatsModel(tr tracer, auth service.AuthService, info service.AppInfoService) *StatsModel {
	return &StatsModel{tracer: tr, auth: auth, info: info}
}

func (m *StatsModel) Init() tea.Cmd {
	m.errMsg = ""
	return m.cmdLoad()
}

func (m *StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err, msg.traceID)
			return m, nil
		}
		m.errMsg = ""
		m.stats = msg.stats
		m.location = msg.location
		m.loaded = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case key.Matches(msg, keys.refresh):
			return m, m.cmdLoad()
		}
	}

	return m, nil
}

func (m *StatsModel) View() string {
	var b strings.Builder

	if m.loaded {
		recent := fmt.Sprintf("Recent Logins (%s)", formatWindow(m.stats.Window))
		width := max(len(recent), len("Database"))

		b.WriteString(fmt.Sprintf("%-*s │ %d\n", width, "Total Users", m.stats.Total))
		b.WriteString(fmt.Sprintf("%-*s │ %d\n", width, "Active Users", m.stats.Active))
		b.WriteString(fmt.Sprintf("%-*s │ %d\n", width, recent, m.stats.RecentLogins))
		b.WriteString(fmt.Sprintf("%-*s │ %s\n", width, "Database", m.location))
	} else if m.errMsg == "" {
		b.WriteString("Loading...\n")
	}

	renderError(&b, m.errMsg)

	return renderPage("DATABASE STATISTICS", strings.TrimRight(b.String(), "\n"), "r: refresh │ esc: back")
}

func (m *StatsModel) cmdLoad() tea.Cmd {
	ctx, traceID := m.tracer.start()
	auth := m.auth
	info := m.info

	return func() tea.Msg {
		stats, err := auth.Stats(ctx)
		return statsLoadedMsg{
			stats:    stats,
			location: info.GetStorageLocation(ctx),
			traceID:  traceID,
			err:      err,
		}
	}
}
