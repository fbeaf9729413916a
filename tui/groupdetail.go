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

type groupDetailsLoadedMsg struct {
	details *api.GroupDetails
	err     error
}

func loadGroupDetails(app *App, groupID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := app.apiContext()
		defer cancel()
		details, err := app.Session.GroupDetails(ctx, groupID)
		return groupDetailsLoadedMsg{details: details, err: err}
	}
}

// groupDetailScreen shows a group's admin and member roster.
type groupDetailScreen struct {
	app     *App
	group   api.Group
	details *api.GroupDetails
	errText string
}

func newGroupDetailScreen(app *App, group api.Group) *groupDetailScreen {
	return &groupDetailScreen{app: app, group: group}
}

func (s *groupDetailScreen) Title() string { return s.group.GroupName }

func (s *groupDetailScreen) HelpEntries() []key.Binding {
	openChat := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open chat"),
	)
	return []key.Binding{openChat, s.app.Keys.Back}
}

func (s *groupDetailScreen) Init() tea.Cmd {
	return loadGroupDetails(s.app, s.group.GroupID)
}

func (s *groupDetailScreen) Update(message tea.Msg) (screen, tea.Cmd) {
	switch message := message.(type) {
	case groupDetailsLoadedMsg:
		if message.err != nil {
			s.errText = message.err.Error()
			return s, nil
		}
		s.details = message.details

	case tea.KeyMsg:
		switch {
		case key.Matches(message, s.app.Keys.Back):
			return s, popScreen()
		case key.Matches(message, s.app.Keys.Select):
			return s, pushScreen(newGroupChatScreen(s.app, s.group))
		}
	}
	return s, nil
}

func (s *groupDetailScreen) View(width, height int) string {
	theme := s.app.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	label := faint.Width(10)
	section := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)

	if s.errText != "" {
		return "\n" + lipgloss.NewStyle().Foreground(theme.ErrorText).Render("  "+s.errText)
	}
	if s.details == nil {
		return "\n" + faint.Render("  loading group…")
	}

	var builder strings.Builder
	builder.WriteString("\n  " + label.Render("name") + s.details.Group.GroupName + "\n")
	builder.WriteString("  " + label.Render("admin") + s.details.AdminName + "\n")
	if !s.details.Group.CreatedAt.Time.IsZero() {
		builder.WriteString("  " + label.Render("created") + s.details.Group.CreatedAt.Time.Format("Jan 2, 2006") + "\n")
	}

	builder.WriteString("\n  " + section.Render("Members") + "\n")
	for _, member := range s.details.Members {
		marker := "  "
		if member.UserID == s.app.Session.UserID() {
			marker = "▸ "
		}
		builder.WriteString("  " + marker + member.DisplayName() + faint.Render("  "+member.Email) + "\n")
	}
	return strings.TrimRight(builder.String(), "\n")
}
