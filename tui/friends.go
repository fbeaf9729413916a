// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parley-im/parley/api"
)

type friendsLoadedMsg struct {
	friends []api.User
	err     error
}

// loadFriends fetches the accepted friends list.
func loadFriends(app *App) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := app.apiContext()
		defer cancel()
		friends, err := app.Session.Friends(ctx)
		return friendsLoadedMsg{friends: friends, err: err}
	}
}

// friendsScreen lists accepted friends; selecting one opens the 1:1
// conversation.
type friendsScreen struct {
	app     *App
	list    listState
	friends []api.User
	loading bool
	errText string
}

func newFriendsScreen(app *App) *friendsScreen {
	return &friendsScreen{app: app, loading: true}
}

func (s *friendsScreen) Title() string { return "friends" }

func (s *friendsScreen) HelpEntries() []key.Binding {
	return []key.Binding{
		s.app.Keys.Up,
		s.app.Keys.Down,
		s.app.Keys.Select,
		s.app.Keys.Refresh,
		s.app.Keys.Back,
	}
}

func (s *friendsScreen) Init() tea.Cmd {
	return loadFriends(s.app)
}

func (s *friendsScreen) Update(message tea.Msg) (screen, tea.Cmd) {
	switch message := message.(type) {
	case friendsLoadedMsg:
		s.loading = false
		if message.err != nil {
			s.errText = message.err.Error()
			return s, nil
		}
		s.errText = ""
		s.friends = message.friends
		s.list.clamp(len(s.friends))

	case tea.KeyMsg:
		switch {
		case key.Matches(message, s.app.Keys.Back):
			return s, popScreen()
		case key.Matches(message, s.app.Keys.Refresh):
			s.loading = true
			return s, loadFriends(s.app)
		case key.Matches(message, s.app.Keys.Up):
			s.list.moveUp()
		case key.Matches(message, s.app.Keys.Down):
			s.list.moveDown(len(s.friends))
		case key.Matches(message, s.app.Keys.Select):
			if s.list.cursor < len(s.friends) {
				return s, pushScreen(newDirectChatScreen(s.app, s.friends[s.list.cursor]))
			}
		}
	}
	return s, nil
}

func (s *friendsScreen) View(width, height int) string {
	theme := s.app.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	if s.loading {
		return "\n" + faint.Render("  loading friends…")
	}
	if s.errText != "" {
		return "\n" + lipgloss.NewStyle().Foreground(theme.ErrorText).Render("  "+s.errText)
	}
	if len(s.friends) == 0 {
		return "\n" + faint.Render("  No friends yet. Add one from the home menu.")
	}

	rows := make([]string, len(s.friends))
	for index, friend := range s.friends {
		rows[index] = friend.DisplayName() + faint.Render("  "+friend.Email)
	}
	s.list.ensureVisible(height - 1)
	return "\n" + renderRows(theme, rows, s.list, width, height-1)
}
