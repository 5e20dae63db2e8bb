// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-notes-keeper/internal/auth"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the sign-in page. It submits email and password to the auth
// provider and opens the dashboard on success.
type LoginModel struct {
	provider auth.Provider
	scope    pageScope

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	status     string
}

func NewLoginModel(provider auth.Provider) *LoginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return &LoginModel{
		provider: provider,
		inputs:   []textinput.Model{email, password},
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Open(ctx context.Context, nav NavigateTo) tea.Cmd {
	m.scope.open(ctx)
	m.status = nav.Status
	m.errMsg = ""
	m.submitting = false
	m.inputs[1].SetValue("")

	m.inputs[m.focus].Blur()
	m.focus = 0
	m.inputs[0].Focus()

	return textinput.Blink
}

func (m *LoginModel) Close() {
	m.scope.close()
}

func (m *LoginModel) capturesText() bool { return true }

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(loginResultMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = describeError(result.err)
			return m, nil
		}
		return m, navigate(NavigateTo{Page: pageDashboard, Status: m.signedInStatus()})
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.tab):
			m.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *LoginModel) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	email := strings.TrimSpace(m.inputs[0].Value())
	password := m.inputs[1].Value()
	if email == "" || password == "" {
		m.errMsg = "Email and password are required"
		return m, nil
	}

	m.errMsg = ""
	m.status = ""
	m.submitting = true
	return m, m.cmdLogin(models.Credentials{Email: email, Password: password})
}

func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Email     │ ")
	b.WriteString(m.inputs[0].View())
	b.WriteString("\nPassword  │ ")
	b.WriteString(m.inputs[1].View())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n[Signing in...]\n")
	} else {
		b.WriteString("\n[Sign in]\n")
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + renderError("Error", m.errMsg) + "\n")
	}

	title := "SIGN IN"
	if name := m.provider.Name(); name != "" {
		title += " (" + name + ")"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "tab next field │ enter sign in")
}

func (m *LoginModel) cmdLogin(creds models.Credentials) tea.Cmd {
	ctx := m.scope.ctx
	provider := m.provider

	return func() tea.Msg {
		return loginResultMsg{err: provider.Login(ctx, creds)}
	}
}

func (m *LoginModel) signedInStatus() string {
	session, ok := m.provider.Session()
	if !ok || session.Email == "" {
		return "Signed in"
	}
	return "Signed in as " + session.Email
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

func navigate(nav NavigateTo) tea.Cmd {
	return func() tea.Msg { return nav }
}
