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

const (
	registerUsername = iota
	registerPassword
	registerConfirmation
)

// RegisterModel is the Bubble Tea model for the registration screen. It renders three
// text inputs (username, password and password confirmation) and dispatches an async
// registration command on form submission.
// On success a [RegisterResult] message is produced; the model then resets the form
// and navigates back to the menu, passing a [RegisterSuccessNotice] payload.
type RegisterModel struct {
	tracer tracer
	auth   service.AuthService

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

// NewRegisterModel creates a [RegisterModel] with three pre-configured text inputs.
// The username field receives focus immediately; the password fields use masked echo.
func NewRegisterModel(tr tracer, auth service.AuthService) *RegisterModel {
	fields := make([]textinput.Model, 3)

	fields[registerUsername] = textinput.New()
	fields[registerUsername].Placeholder = "3-20 letters, digits or _"
	fields[registerUsername].Width = 40
	fields[registerUsername].Focus()

	fields[registerPassword] = textinput.New()
	fields[registerPassword].Placeholder = "8+ chars: letter, digit, symbol"
	fields[registerPassword].EchoMode = textinput.EchoPassword
	fields[registerPassword].EchoCharacter = '*'
	fields[registerPassword].Width = 40

	fields[registerConfirmation] = textinput.New()
	fields[registerConfirmation].Placeholder = "repeat password"
	fields[registerConfirmation].EchoMode = textinput.EchoPassword
	fields[registerConfirmation].EchoCharacter = '*'
	fields[registerConfirmation].Width = 40

	return &RegisterModel{
		tracer: tr,
		auth:   auth,
		inputs: fields,
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the active input.
func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - [RegisterResult]: clears submitting state; on error, populates errMsg and
//     clears both password fields; on success, resets the form and navigates to the menu.
//   - esc             : cancels and navigates back to the menu.
//   - tab             : moves focus to the next input.
//   - shift+tab       : moves focus to the previous input.
//   - enter           : checks that all fields are filled and dispatches the async
//     registration command. Format, confirmation and strength checks happen in the service.
//
// All other key events are forwarded to the focused input widget.
func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(RegisterResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = humanizeError(result.Err, result.TraceID)
			m.clearPasswords()
			return m, nil
		}

		m.errMsg = ""
		m.resetForm()
		return m, func() tea.Msg {
			return NavigateTo{
				Page:    pageMenu,
				Payload: RegisterSuccessNotice{Username: result.Username},
			}
		}
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

			req := models.RegisterRequest{
				Username:             strings.TrimSpace(m.inputs[registerUsername].Value()),
				Password:             m.inputs[registerPassword].Value(),
				PasswordConfirmation: m.inputs[registerConfirmation].Value(),
			}
			if req.Username == "" || req.Password == "" || req.PasswordConfirmation == "" {
				m.errMsg = app.MsgFieldsRequired
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(req)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model]. Renders the registration form as a two-column table
// with all three input fields, a submission indicator, and an optional error message.
func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString("Field            │ Value\n")
	b.WriteString("─────────────────┼────────────────────────────────────\n")
	b.WriteString("Username         │ [")
	b.WriteString(m.inputs[registerUsername].View())
	b.WriteString("]\n")
	b.WriteString("Password         │ [")
	b.WriteString(m.inputs[registerPassword].View())
	b.WriteString("]\n")
	b.WriteString("Confirm password │ [")
	b.WriteString(m.inputs[registerConfirmation].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Register...]\n")
	} else {
		b.WriteString("\n[Register]\n")
	}

	renderError(&b, m.errMsg)

	return renderPage("USER REGISTRATION", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *RegisterModel) cmdRegister(req models.RegisterRequest) tea.Cmd {
	ctx, traceID := m.tracer.start()
	auth := m.auth

	return func() tea.Msg {
		_, err := auth.Register(ctx, req)
		return RegisterResult{
			Username: req.Username,
			TraceID:  traceID,
			Err:      err,
		}
	}
}

func (m *RegisterModel) clearPasswords() {
	m.inputs[registerPassword].SetValue("")
	m.inputs[registerConfirmation].SetValue("")
}

func (m *RegisterModel) resetForm() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[m.focus].Focus()
}

func (m *RegisterModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *RegisterModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
