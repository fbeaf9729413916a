// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parley-im/parley/api"
	"github.com/parley-im/parley/lib/secret"
)

type registerResultMsg struct {
	err error
}

// registerScreen collects the account fields and creates a new user.
// On success it returns to a fresh login screen with a confirmation
// notice; the backend does not log the user in on registration.
type registerScreen struct {
	app *App

	fields []textinput.Model
	labels []string
	focus  int

	busy    bool
	errText string
}

func newRegisterScreen(app *App) *registerScreen {
	labels := []string{"first name", "last name", "email", "password"}
	fields := make([]textinput.Model, len(labels))
	for index, label := range labels {
		input := textinput.New()
		input.Placeholder = label
		input.CharLimit = 254
		input.Width = 40
		fields[index] = input
	}
	fields[3].EchoMode = textinput.EchoPassword
	fields[3].CharLimit = 128
	fields[0].Focus()

	return &registerScreen{app: app, fields: fields, labels: labels}
}

func (s *registerScreen) Title() string { return "create account" }

func (s *registerScreen) HelpEntries() []key.Binding {
	return []key.Binding{
		s.app.Keys.NextField,
		s.app.Keys.Select,
		s.app.Keys.Back,
	}
}

func (s *registerScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *registerScreen) Update(message tea.Msg) (screen, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(message, s.app.Keys.Back):
			return s, popScreen()

		case key.Matches(message, s.app.Keys.NextField):
			s.setFocus((s.focus + 1) % len(s.fields))
			return s, nil

		case key.Matches(message, s.app.Keys.Select):
			return s, s.submit()
		}

	case tea.WindowSizeMsg:
		return s, nil

	case registerResultMsg:
		s.busy = false
		if message.err != nil {
			s.errText = registerErrorText(message.err)
			return s, nil
		}
		return s, replaceStack(newLoginScreenWithNotice(s.app, "account created, sign in"))
	}

	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(message)
	return s, cmd
}

func (s *registerScreen) setFocus(index int) {
	s.fields[s.focus].Blur()
	s.focus = index
	s.fields[s.focus].Focus()
}

func (s *registerScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	for index, label := range s.labels {
		if strings.TrimSpace(s.fields[index].Value()) == "" {
			s.errText = label + " is required"
			return nil
		}
	}

	s.busy = true
	s.errText = ""
	app := s.app
	firstName := strings.TrimSpace(s.fields[0].Value())
	lastName := strings.TrimSpace(s.fields[1].Value())
	email := strings.TrimSpace(s.fields[2].Value())
	passwordValue := s.fields[3].Value()

	return func() tea.Msg {
		password, err := secret.NewFromString(passwordValue)
		if err != nil {
			return registerResultMsg{err: err}
		}
		defer password.Close()

		ctx, cancel := app.apiContext()
		defer cancel()

		err = app.Client.Register(ctx, api.RegisterRequest{
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			Password:  password,
		})
		return registerResultMsg{err: err}
	}
}

func registerErrorText(err error) string {
	if api.IsStatus(err, http.StatusConflict) {
		return "an account with that email already exists"
	}
	return err.Error()
}

func (s *registerScreen) View(width, height int) string {
	theme := s.app.Theme
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText).Width(12)

	var builder strings.Builder
	builder.WriteString("\n")
	for index, label := range s.labels {
		builder.WriteString("  " + labelStyle.Render(label) + s.fields[index].View() + "\n\n")
	}

	if s.busy {
		builder.WriteString("  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("creating account…"))
	}
	if s.errText != "" {
		builder.WriteString("  " + lipgloss.NewStyle().Foreground(theme.ErrorText).Render(s.errText))
	}
	return strings.TrimRight(builder.String(), "\n")
}
