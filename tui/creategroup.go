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
)

type createGroupResultMsg struct {
	group api.Group
	err   error
}

var toggleMemberKey = key.NewBinding(
	key.WithKeys(" "),
	key.WithHelp("space", "toggle member"),
)

// createGroupScreen collects a group name and a member selection from
// the friends list, then creates the group and opens its conversation.
// Tab moves focus between the name field and the member list.
type createGroupScreen struct {
	app *App

	name     textinput.Model
	list     listState
	friends  []api.User
	selected map[string]bool
	onList   bool

	loading bool
	busy    bool
	errText string
}

func newCreateGroupScreen(app *App) *createGroupScreen {
	name := textinput.New()
	name.Placeholder = "group name"
	name.CharLimit = 100
	name.Width = 40
	name.Focus()

	return &createGroupScreen{
		app:      app,
		name:     name,
		selected: make(map[string]bool),
		loading:  true,
	}
}

func (s *createGroupScreen) Title() string { return "create group" }

func (s *createGroupScreen) HelpEntries() []key.Binding {
	return []key.Binding{
		s.app.Keys.NextField,
		toggleMemberKey,
		s.app.Keys.Select,
		s.app.Keys.Back,
	}
}

func (s *createGroupScreen) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadFriends(s.app))
}

func (s *createGroupScreen) Update(message tea.Msg) (screen, tea.Cmd) {
	switch message := message.(type) {
	case friendsLoadedMsg:
		s.loading = false
		if message.err != nil {
			s.errText = message.err.Error()
			return s, nil
		}
		s.friends = message.friends
		s.list.clamp(len(s.friends))

	case createGroupResultMsg:
		s.busy = false
		if message.err != nil {
			s.errText = message.err.Error()
			return s, nil
		}
		return s, tea.Sequence(popScreen(), pushScreen(newGroupChatScreen(s.app, message.group)))

	case tea.KeyMsg:
		switch {
		case key.Matches(message, s.app.Keys.Back):
			return s, popScreen()

		case key.Matches(message, s.app.Keys.NextField):
			s.onList = !s.onList
			if s.onList {
				s.name.Blur()
			} else {
				s.name.Focus()
			}
			return s, nil

		case key.Matches(message, s.app.Keys.Select):
			return s, s.submit()
		}

		if s.onList {
			switch {
			case key.Matches(message, s.app.Keys.Up):
				s.list.moveUp()
			case key.Matches(message, toggleMemberKey):
				if s.list.cursor < len(s.friends) {
					id := s.friends[s.list.cursor].UserID
					s.selected[id] = !s.selected[id]
				}
			case key.Matches(message, s.app.Keys.Down):
				s.list.moveDown(len(s.friends))
			}
			return s, nil
		}

	case tea.WindowSizeMsg:
		return s, nil
	}

	if !s.onList {
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(message)
		return s, cmd
	}
	return s, nil
}

func (s *createGroupScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	groupName := strings.TrimSpace(s.name.Value())
	if groupName == "" {
		s.errText = "group name is required"
		return nil
	}
	var memberIDs []string
	for _, friend := range s.friends {
		if s.selected[friend.UserID] {
			memberIDs = append(memberIDs, friend.UserID)
		}
	}
	if len(memberIDs) == 0 {
		s.errText = "select at least one member"
		return nil
	}

	s.busy = true
	s.errText = ""
	app := s.app

	return func() tea.Msg {
		ctx, cancel := app.apiContext()
		defer cancel()
		group, err := app.Session.CreateGroup(ctx, groupName, memberIDs)
		return createGroupResultMsg{group: group, err: err}
	}
}

func (s *createGroupScreen) View(width, height int) string {
	theme := s.app.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	section := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)

	var builder strings.Builder
	builder.WriteString("\n  " + s.name.View() + "\n\n")
	builder.WriteString("  " + section.Render("Members") + "\n")

	switch {
	case s.loading:
		builder.WriteString(faint.Render("  loading friends…"))
	case len(s.friends) == 0:
		builder.WriteString(faint.Render("  No friends to invite."))
	default:
		rows := make([]string, len(s.friends))
		for index, friend := range s.friends {
			check := "[ ] "
			if s.selected[friend.UserID] {
				check = "[x] "
			}
			rows[index] = check + friend.DisplayName()
		}
		listHeight := height - 6
		if listHeight < 1 {
			listHeight = 1
		}
		s.list.ensureVisible(listHeight)

		state := s.list
		if !s.onList {
			// Hide the cursor highlight while the name field has focus.
			state.cursor = -1
		}
		builder.WriteString(renderRows(theme, rows, state, width, listHeight))
	}

	if s.busy {
		builder.WriteString("\n\n  " + faint.Render("creating group…"))
	}
	if s.errText != "" {
		builder.WriteString("\n\n  " + lipgloss.NewStyle().Foreground(theme.ErrorText).Render(s.errText))
	}
	return builder.String()
}
