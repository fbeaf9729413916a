// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parley-im/parley/api"
)

type groupsLoadedMsg struct {
	groups []api.Group
	err    error
}

func loadGroups(app *App) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := app.apiContext()
		defer cancel()
		groups, err := app.Session.Groups(ctx)
		return groupsLoadedMsg{groups: groups, err: err}
	}
}

var groupInfoKey = key.NewBinding(
	key.WithKeys("i"),
	key.WithHelp("i", "details"),
)

// groupsScreen lists the user's groups; enter opens the conversation,
// i shows members and admin.
type groupsScreen struct {
	app     *App
	list    listState
	groups  []api.Group
	loading bool
	errText string
}

func newGroupsScreen(app *App) *groupsScreen {
	return &groupsScreen{app: app, loading: true}
}

func (s *groupsScreen) Title() string { return "groups" }

func (s *groupsScreen) HelpEntries() []key.Binding {
	return []key.Binding{
		s.app.Keys.Up,
		s.app.Keys.Down,
		s.app.Keys.Select,
		groupInfoKey,
		s.app.Keys.Refresh,
		s.app.Keys.Back,
	}
}

func (s *groupsScreen) Init() tea.Cmd {
	return loadGroups(s.app)
}

func (s *groupsScreen) Update(message tea.Msg) (screen, tea.Cmd) {
	switch message := message.(type) {
	case groupsLoadedMsg:
		s.loading = false
		if message.err != nil {
			s.errText = message.err.Error()
			return s, nil
		}
		s.errText = ""
		s.groups = message.groups
		s.list.clamp(len(s.groups))

	case tea.KeyMsg:
		switch {
		case key.Matches(message, s.app.Keys.Back):
			return s, popScreen()
		case key.Matches(message, s.app.Keys.Refresh):
			s.loading = true
			return s, loadGroups(s.app)
		case key.Matches(message, s.app.Keys.Up):
			s.list.moveUp()
		case key.Matches(message, s.app.Keys.Down):
			s.list.moveDown(len(s.groups))
		case key.Matches(message, s.app.Keys.Select):
			if s.list.cursor < len(s.groups) {
				return s, pushScreen(newGroupChatScreen(s.app, s.groups[s.list.cursor]))
			}
		case key.Matches(message, groupInfoKey):
			if s.list.cursor < len(s.groups) {
				return s, pushScreen(newGroupDetailScreen(s.app, s.groups[s.list.cursor]))
			}
		}
	}
	return s, nil
}

func (s *groupsScreen) View(width, height int) string {
	theme := s.app.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	if s.loading {
		return "\n" + faint.Render("  loading groups…")
	}
	if s.errText != "" {
		return "\n" + lipgloss.NewStyle().Foreground(theme.ErrorText).Render("  "+s.errText)
	}
	if len(s.groups) == 0 {
		return "\n" + faint.Render("  No groups yet. Create one from the home menu.")
	}

	rows := make([]string, len(s.groups))
	for index, group := range s.groups {
		rows[index] = group.GroupName
	}
	s.list.ensureVisible(height - 1)
	return "\n" + renderRows(theme, rows, s.list, width, height-1)
}
