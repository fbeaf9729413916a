// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parley-im/parley/api"
)

type requestsLoadedMsg struct {
	received []api.FriendRequest
	sent     []api.FriendRequest
	err      error
}

type acceptResultMsg struct {
	email string
	err   error
}

// loadRequests fetches both directions of pending friend requests.
func loadRequests(app *App) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := app.apiContext()
		defer cancel()

		received, err := app.Session.PendingRequests(ctx)
		if err != nil {
			return requestsLoadedMsg{err: err}
		}
		sent, err := app.Session.SentRequests(ctx)
		if err != nil {
			return requestsLoadedMsg{err: err}
		}
		return requestsLoadedMsg{received: received, sent: sent}
	}
}

// pendingScreen shows received friend requests (selectable, enter
// accepts) above the requests the user has sent (informational).
type pendingScreen struct {
	app *App

	list     listState
	received []api.FriendRequest
	sent     []api.FriendRequest

	loading bool
	errText string
	notice  string
}

func newPendingScreen(app *App) *pendingScreen {
	return &pendingScreen{app: app, loading: true}
}

func (s *pendingScreen) Title() string { return "friend requests" }

func (s *pendingScreen) HelpEntries() []key.Binding {
	accept := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "accept"),
	)
	return []key.Binding{
		s.app.Keys.Up,
		s.app.Keys.Down,
		accept,
		s.app.Keys.Refresh,
		s.app.Keys.Back,
	}
}

func (s *pendingScreen) Init() tea.Cmd {
	return loadRequests(s.app)
}

func (s *pendingScreen) Update(message tea.Msg) (screen, tea.Cmd) {
	switch message := message.(type) {
	case requestsLoadedMsg:
		s.loading = false
		if message.err != nil {
			s.errText = message.err.Error()
			return s, nil
		}
		s.errText = ""
		s.received = message.received
		s.sent = message.sent
		s.list.clamp(len(s.received))

	case acceptResultMsg:
		if message.err != nil {
			s.errText = message.err.Error()
			return s, nil
		}
		s.notice = message.email + " is now a friend"
		s.loading = true
		return s, loadRequests(s.app)

	case tea.KeyMsg:
		switch {
		case key.Matches(message, s.app.Keys.Back):
			return s, popScreen()
		case key.Matches(message, s.app.Keys.Refresh):
			s.loading = true
			s.notice = ""
			return s, loadRequests(s.app)
		case key.Matches(message, s.app.Keys.Up):
			s.list.moveUp()
		case key.Matches(message, s.app.Keys.Down):
			s.list.moveDown(len(s.received))
		case key.Matches(message, s.app.Keys.Select):
			if s.list.cursor < len(s.received) {
				return s, s.accept(s.received[s.list.cursor].Email)
			}
		}
	}
	return s, nil
}

func (s *pendingScreen) accept(email string) tea.Cmd {
	app := s.app
	s.errText = ""
	return func() tea.Msg {
		ctx, cancel := app.apiContext()
		defer cancel()
		err := app.Session.AcceptFriend(ctx, email)
		return acceptResultMsg{email: email, err: err}
	}
}

func (s *pendingScreen) View(width, height int) string {
	theme := s.app.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	section := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)

	if s.loading {
		return "\n" + faint.Render("  loading requests…")
	}
	if s.errText != "" {
		return "\n" + lipgloss.NewStyle().Foreground(theme.ErrorText).Render("  "+s.errText)
	}

	var builder strings.Builder
	builder.WriteString("\n")
	if s.notice != "" {
		builder.WriteString("  " + lipgloss.NewStyle().Foreground(theme.SuccessText).Render(s.notice) + "\n\n")
	}

	builder.WriteString("  " + section.Render("Received") + "\n")
	if len(s.received) == 0 {
		builder.WriteString(faint.Render("  none") + "\n")
	} else {
		rows := make([]string, len(s.received))
		for index, request := range s.received {
			rows[index] = request.DisplayName() + faint.Render("  "+request.Email)
		}
		s.list.ensureVisible(height / 2)
		builder.WriteString(renderRows(theme, rows, s.list, width, height/2) + "\n")
	}

	builder.WriteString("\n  " + section.Render("Sent") + "\n")
	if len(s.sent) == 0 {
		builder.WriteString(faint.Render("  none"))
	} else {
		for _, request := range s.sent {
			builder.WriteString(faint.Render("  "+request.DisplayName()+"  "+request.Email) + "\n")
		}
	}
	return strings.TrimRight(builder.String(), "\n")
}
