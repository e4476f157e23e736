// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-auth-keeper/internal/app"
	"github.com/MKhiriev/go-auth-keeper/internal/service"
	"github.com/MKhiriev/go-auth-keeper/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the Bubble Tea model for the login screen. It renders two text inputs
// (username and password) and dispatches an async login command on form submission.
// On success the [LoginResult] is handed to the dashboard page.
type LoginModel struct {
	tracer tracer
	auth   service.AuthService

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

// NewLoginModel creates a [LoginModel] with pre-configured username and password inputs.
// The username field receives focus immediately; the password field uses masked echo.
func NewLoginModel(tr tracer, auth service.AuthService) *LoginModel {
	loginInput := textinput.New()
	loginInput.Placeholder = "username"
	loginInput.Width = 40
	loginInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return &LoginModel{
		tracer: tr,
		auth:   auth,
		inputs: []textinput.Model{loginInput, passwordInput},
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the active input.
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - [LoginResult] : clears submitting state; on error, populates errMsg and clears
//     the password; on success, resets the form and opens the dashboard.
//   - esc           : cancels and navigates back to the menu.
//   - tab           : moves focus to the next input.
//   - shift+tab     : moves focus to the previous input.
//   - enter         : validates inputs and dispatches the async login command.
//
// All other key events are forwarded to the focused input widget.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(LoginResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = humanizeError(result.Err, result.TraceID)
			m.inputs[1].SetValue("")
			return m, nil
		}

		m.errMsg = ""
		m.resetForm()
		return m, func() tea.Msg { return NavigateTo{Page: pageDashboard, Payload: result} }
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.submitting = false
			m.errMsg = ""
			m.resetForm()
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case key.Matches(keyMsg, keys.tab):
			m.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}

			login := strings.TrimSpace(m.inputs[0].Value())
			pass := m.inputs[1].Value()
			if login == "" || pass == "" {
				m.errMsg = app.MsgFieldsRequired
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(login, pass)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model]. Renders the login form as a two-column table with
// username and password inputs, a submission indicator, and an optional error message.
func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Field    │ Value\n")
	b.WriteString("─────────┼────────────────────────────────────────────\n")
	b.WriteString("Username │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Login...]\n")
	} else {
		b.WriteString("\n[Login]\n")
	}

	renderError(&b, m.errMsg)

	return renderPage("USER LOGIN", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *LoginModel) cmdLogin(login, pass string) tea.Cmd {
	ctx, traceID := m.tracer.start()
	auth := m.auth

	return func() tea.Msg {
		account, err := auth.Login(ctx, models.LoginRequest{
			Username: login,
			Password: pass,
		})

		return LoginResult{
			Account: account,
			TraceID: traceID,
			Err:     err,
		}
	}
}

func (m *LoginModel) resetForm() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[m.focus].Focus()
}

func (m *LoginModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *LoginModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
