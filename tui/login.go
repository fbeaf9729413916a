// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parley-im/parley/api"
	"github.com/parley-im/parley/lib/secret"
	"github.com/parley-im/parley/lib/sessionfile"
)

// loginResultMsg carries the outcome of an asynchronous login attempt.
type loginResultMsg struct {
	session *api.Session
	err     error
}

var registerKey = key.NewBinding(
	key.WithKeys("ctrl+r"),
	key.WithHelp("ctrl+r", "create account"),
)

// loginScreen collects email and password and authenticates against
// the backend. On success the session is installed on the shared App
// and persisted to disk, then the stack is replaced with the home menu.
type loginScreen struct {
	app *App

	email    textinput.Model
	password textinput.Model
	focus    int

	busy    bool
	errText string
	notice  string
}

func newLoginScreen(app *App) *loginScreen {
	return newLoginScreenWithNotice(app, "")
}

// newLoginScreenWithNotice shows a one-line notice above the form,
// used after registration ("account created, sign in").
func newLoginScreenWithNotice(app *App, notice string) *loginScreen {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128
	password.Width = 40

	return &loginScreen{
		app:      app,
		email:    email,
		password: password,
		notice:   notice,
	}
}

func (s *loginScreen) Title() string { return "sign in" }

func (s *loginScreen) HelpEntries() []key.Binding {
	return []key.Binding{
		s.app.Keys.NextField,
		s.app.Keys.Select,
		registerKey,
	}
}

func (s *loginScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *loginScreen) Update(message tea.Msg) (screen, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(message, s.app.Keys.NextField):
			s.setFocus((s.focus + 1) % 2)
			return s, nil

		case key.Matches(message, registerKey):
			return s, pushScreen(newRegisterScreen(s.app))

		case key.Matches(message, s.app.Keys.Select):
			return s, s.submit()
		}

	case tea.WindowSizeMsg:
		return s, nil

	case loginResultMsg:
		s.busy = false
		if message.err != nil {
			s.errText = loginErrorText(message.err)
			return s, nil
		}
		s.app.Session = message.session
		s.persistSession(message.session)
		return s, replaceStack(newHomeScreen(s.app))
	}

	var cmd tea.Cmd
	if s.focus == 0 {
		s.email, cmd = s.email.Update(message)
	} else {
		s.password, cmd = s.password.Update(message)
	}
	return s, cmd
}

func (s *loginScreen) setFocus(index int) {
	s.focus = index
	if index == 0 {
		s.email.Focus()
		s.password.Blur()
	} else {
		s.email.Blur()
		s.password.Focus()
	}
}

func (s *loginScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	email := strings.TrimSpace(s.email.Value())
	if email == "" {
		s.errText = "email is required"
		return nil
	}
	if s.password.Value() == "" {
		s.errText = "password is required"
		return nil
	}

	s.busy = true
	s.errText = ""
	app := s.app
	passwordValue := s.password.Value()

	return func() tea.Msg {
		password, err := secret.NewFromString(passwordValue)
		if err != nil {
			return loginResultMsg{err: err}
		}
		defer password.Close()

		ctx, cancel := app.apiContext()
		defer cancel()

		session, err := app.Client.Login(ctx, email, password)
		return loginResultMsg{session: session, err: err}
	}
}

// persistSession writes the session to disk so CLI commands and the
// next TUI launch skip the login screen. Failure to write is logged
// but does not block the signed-in session.
func (s *loginScreen) persistSession(session *api.Session) {
	stored := sessionfile.Session{
		ServerURL: s.app.Config.Server.URL,
		UserID:    session.UserID(),
		Token:     session.Token(),
	}
	if err := stored.SaveTo(s.app.sessionPath()); err != nil {
		s.app.Logger.Warn("failed to persist session", "error", err)
	}
}

// loginErrorText maps backend failures to a message fit for the form.
func loginErrorText(err error) string {
	if api.IsUnauthorized(err) {
		return "invalid email or password"
	}
	return err.Error()
}

func (s *loginScreen) View(width, height int) string {
	theme := s.app.Theme
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText).Width(10)

	var builder strings.Builder
	builder.WriteString("\n")
	if s.notice != "" {
		builder.WriteString("  " + lipgloss.NewStyle().Foreground(theme.SuccessText).Render(s.notice) + "\n\n")
	}
	builder.WriteString("  " + labelStyle.Render("email") + s.email.View() + "\n\n")
	builder.WriteString("  " + labelStyle.Render("password") + s.password.View() + "\n")

	if s.busy {
		builder.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("signing in…"))
	}
	if s.errText != "" {
		builder.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.ErrorText).Render(s.errText))
	}
	return builder.String()
}
