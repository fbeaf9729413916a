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
)

type addFriendResultMsg struct {
	email string
	err   error
}

// addFriendScreen sends a friend request to an email address.
type addFriendScreen struct {
	app *App

	input textinput.Model

	busy    bool
	errText string
	notice  string
}

func newAddFriendScreen(app *App) *addFriendScreen {
	input := textinput.New()
	input.Placeholder = "friend@example.com"
	input.CharLimit = 254
	input.Width = 40
	input.Focus()
	return &addFriendScreen{app: app, input: input}
}

func (s *addFriendScreen) Title() string { return "add friend" }

func (s *addFriendScreen) HelpEntries() []key.Binding {
	return []key.Binding{
		s.app.Keys.Select,
		s.app.Keys.Back,
	}
}

func (s *addFriendScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *addFriendScreen) Update(message tea.Msg) (screen, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(message, s.app.Keys.Back):
			return s, popScreen()
		case key.Matches(message, s.app.Keys.Select):
			return s, s.submit()
		}

	case tea.WindowSizeMsg:
		return s, nil

	case addFriendResultMsg:
		s.busy = false
		if message.err != nil {
			s.errText = addFriendErrorText(message.err)
			return s, nil
		}
		s.notice = "request sent to " + message.email
		s.input.Reset()
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(message)
	return s, cmd
}

func (s *addFriendScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	email := strings.TrimSpace(s.input.Value())
	if email == "" {
		s.errText = "email is required"
		return nil
	}

	s.busy = true
	s.errText = ""
	s.notice = ""
	app := s.app

	return func() tea.Msg {
		ctx, cancel := app.apiContext()
		defer cancel()
		err := app.Session.AddFriend(ctx, email)
		return addFriendResultMsg{email: email, err: err}
	}
}

func addFriendErrorText(err error) string {
	if api.IsStatus(err, http.StatusNotFound) {
		return "no account with that email"
	}
	return err.Error()
}

func (s *addFriendScreen) View(width, height int) string {
	theme := s.app.Theme

	var builder strings.Builder
	builder.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("Send a friend request by email.") + "\n\n")
	builder.WriteString("  " + s.input.View() + "\n")

	if s.busy {
		builder.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.FaintText).Render("sending…"))
	}
	if s.notice != "" {
		builder.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.SuccessText).Render(s.notice))
	}
	if s.errText != "" {
		builder.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.ErrorText).Render(s.errText))
	}
	return builder.String()
}
