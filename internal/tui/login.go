// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vault-browser/internal/service"
)

// LoginModel is the Bubble Tea model for the login screen. It renders two text
// inputs (server address and token) and dispatches an async login command on
// submission. On success it navigates to the secret list.
type LoginModel struct {
	ctx     context.Context
	session *service.Session

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	status     string
}

// NewLoginModel creates a [LoginModel]. The address input is pre-filled with
// the endpoint remembered by the session.
func NewLoginModel(ctx context.Context, session *service.Session) *LoginModel {
	addressInput := textinput.New()
	addressInput.Placeholder = "http://127.0.0.1:8200"
	addressInput.CharLimit = 256
	addressInput.Width = 50
	addressInput.SetValue(session.Endpoint())

	tokenInput := textinput.New()
	tokenInput.Placeholder = "token"
	tokenInput.CharLimit = 512
	tokenInput.Width = 50
	tokenInput.EchoMode = textinput.EchoPassword
	tokenInput.EchoCharacter = '*'

	m := &LoginModel{
		ctx:     ctx,
		session: session,
		inputs:  []textinput.Model{addressInput, tokenInput},
	}
	if addressInput.Value() != "" {
		m.focus = 1
	}
	m.inputs[m.focus].Focus()
	return m
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the active input.
func (m *LoginModel) Init() tea.Cmd {
	m.submitting = false
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - loginDoneMsg   clears submitting state; on success navigates to the list.
//   - logoutDoneMsg  shows the logout result.
//   - tab            moves focus to the next input.
//   - shift+tab      moves focus to the previous input.
//   - enter          validates inputs and dispatches the async login command.
//
// All other key events are forwarded to the focused input widget.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.inputs[1].SetValue("")
		return m, func() tea.Msg { return NavigateTo{Page: pageList} }
	case logoutDoneMsg:
		m.submitting = false
		m.inputs[0].SetValue(m.session.Endpoint())
		m.inputs[1].SetValue("")
		m.setFocus(1)
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = "logged out"
		return m, clearStatusLater()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			address := strings.TrimSpace(m.inputs[0].Value())
			token := strings.TrimSpace(m.inputs[1].Value())
			if address == "" || token == "" {
				m.errMsg = "address and token are required"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(address, token)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Field    │ Value\n")
	b.WriteString("─────────┼────────────────────────────────────────────\n")
	b.WriteString("Address  │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Token    │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Log in...]\n")
	} else {
		b.WriteString("\n[Log in]\n")
	}
	b.WriteString(statusLine(m.status, m.errMsg))

	return renderPage("LOG IN", strings.TrimRight(b.String(), "\n"), "tab: next field │ enter: log in")
}

func (m *LoginModel) cmdLogin(address, token string) tea.Cmd {
	ctx := m.ctx
	session := m.session

	return func() tea.Msg {
		return loginDoneMsg{err: session.Login(ctx, address, token)}
	}
}

func (m *LoginModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}
