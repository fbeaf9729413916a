// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parley-im/parley/lib/sessionfile"
)

// homeScreen is the signed-in main menu.
type homeScreen struct {
	app   *App
	list  listState
	items []homeItem
}

type homeItem struct {
	label  string
	action func(app *App) tea.Cmd
}

func newHomeScreen(app *App) *homeScreen {
	return &homeScreen{
		app: app,
		items: []homeItem{
			{"Friends", func(app *App) tea.Cmd {
				return pushScreen(newFriendsScreen(app))
			}},
			{"Add friend", func(app *App) tea.Cmd {
				return pushScreen(newAddFriendScreen(app))
			}},
			{"Friend requests", func(app *App) tea.Cmd {
				return pushScreen(newPendingScreen(app))
			}},
			{"Groups", func(app *App) tea.Cmd {
				return pushScreen(newGroupsScreen(app))
			}},
			{"Create group", func(app *App) tea.Cmd {
				return pushScreen(newCreateGroupScreen(app))
			}},
			{"Log out", logout},
		},
	}
}

// logout clears the persisted session, drops the in-memory one, and
// returns to the login screen.
func logout(app *App) tea.Cmd {
	if err := sessionfile.ClearAt(app.sessionPath()); err != nil {
		app.Logger.Warn("failed to clear session file", "error", err)
	}
	if app.Session != nil {
		app.Session.Close()
		app.Session = nil
	}
	return replaceStack(newLoginScreen(app))
}

func (s *homeScreen) Title() string { return "home" }

func (s *homeScreen) HelpEntries() []key.Binding {
	return []key.Binding{
		s.app.Keys.Up,
		s.app.Keys.Down,
		s.app.Keys.Select,
	}
}

func (s *homeScreen) Init() tea.Cmd { return nil }

func (s *homeScreen) Update(message tea.Msg) (screen, tea.Cmd) {
	if message, ok := message.(tea.KeyMsg); ok {
		switch {
		case key.Matches(message, s.app.Keys.Up):
			s.list.moveUp()
		case key.Matches(message, s.app.Keys.Down):
			s.list.moveDown(len(s.items))
		case key.Matches(message, s.app.Keys.Select):
			return s, s.items[s.list.cursor].action(s.app)
		}
	}
	return s, nil
}

func (s *homeScreen) View(width, height int) string {
	rows := make([]string, len(s.items))
	for index, item := range s.items {
		rows[index] = item.label
	}
	listHeight := height - 4
	if listHeight < 1 {
		listHeight = 1
	}
	s.list.ensureVisible(listHeight)

	hint := lipgloss.NewStyle().
		Foreground(s.app.Theme.FaintText).
		Render("  Pick a conversation or manage your contacts.")
	return "\n" + hint + "\n\n" + renderRows(s.app.Theme, rows, s.list, width, listHeight)
}
