// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parley-im/parley/api"
	"github.com/parley-im/parley/lib/config"
	"github.com/parley-im/parley/lib/sessionfile"
)

// App bundles the dependencies every screen needs: the backend client,
// the authenticated session (nil until login), configuration, and the
// shared theme and key bindings. Screens hold a pointer so a login
// screen can install the session for everyone downstream.
type App struct {
	Config  *config.Config
	Client  *api.Client
	Session *api.Session
	Theme   Theme
	Keys    KeyMap
	Logger  *slog.Logger
}

// apiContext returns a context bounded by the configured request
// timeout, for one-shot backend calls issued from tea commands.
func (app *App) apiContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), app.Config.Server.RequestTimeout)
}

// sessionPath resolves where the saved session lives, honoring the
// config override.
func (app *App) sessionPath() string {
	if app.Config.SessionFile != "" {
		return app.Config.SessionFile
	}
	return sessionfile.Path()
}

// screen is one view in the navigation stack. Update returns the
// screen to keep on the stack (usually the receiver) so screens can
// be value types. View receives the content area dimensions; the root
// model owns the header and help line.
type screen interface {
	Init() tea.Cmd
	Update(message tea.Msg) (screen, tea.Cmd)
	View(width, height int) string
	Title() string
	HelpEntries() []key.Binding
}

// screenCloser is implemented by screens that own background work
// (the chat screen's polling loop). Close is called when the screen
// is removed from the stack.
type screenCloser interface {
	Close()
}

// Navigation messages. Screens emit these as commands; the root model
// consumes them.
type pushScreenMsg struct{ next screen }
type popScreenMsg struct{}
type replaceStackMsg struct{ next screen }

// pushScreen returns a command that pushes next onto the stack.
func pushScreen(next screen) tea.Cmd {
	return func() tea.Msg { return pushScreenMsg{next: next} }
}

// popScreen returns a command that removes the top screen. Popping the
// last screen quits the program.
func popScreen() tea.Cmd {
	return func() tea.Msg { return popScreenMsg{} }
}

// replaceStack returns a command that discards the whole stack and
// installs next as the only screen. Used after login and logout, where
// back-navigation into the previous screens would be wrong.
func replaceStack(next screen) tea.Cmd {
	return func() tea.Msg { return replaceStackMsg{next: next} }
}

// Model is the top-level bubbletea model: a stack of screens under a
// shared header and help line. The top of the stack receives input;
// Back pops; popping the last screen quits.
type Model struct {
	app   *App
	stack []screen

	width  int
	height int
	ready  bool
}

// NewModel creates the root model. When the app already has an
// authenticated session the model starts at the home menu, otherwise
// at the login screen.
func NewModel(app *App) Model {
	var first screen
	if app.Session != nil {
		first = newHomeScreen(app)
	} else {
		first = newLoginScreen(app)
	}
	return Model{app: app, stack: []screen{first}}
}

// NewDirectChatModel creates a model that opens straight into a 1:1
// conversation with the given friend. Requires an authenticated
// session on the app.
func NewDirectChatModel(app *App, friend api.User) Model {
	return Model{app: app, stack: []screen{newDirectChatScreen(app, friend)}}
}

// NewGroupChatModel creates a model that opens straight into the given
// group conversation. Requires an authenticated session on the app.
func NewGroupChatModel(app *App, group api.Group) Model {
	return Model{app: app, stack: []screen{newGroupChatScreen(app, group)}}
}

// top returns the active screen, or nil for an empty stack.
func (model Model) top() screen {
	if len(model.stack) == 0 {
		return nil
	}
	return model.stack[len(model.stack)-1]
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	if top := model.top(); top != nil {
		return top.Init()
	}
	return nil
}

// Update implements tea.Model. Window sizing and quit are handled
// here; navigation messages mutate the stack; everything else routes
// to the top screen.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		// Every screen sees size changes so a revealed screen is
		// already laid out when the one above it pops.
		var commands []tea.Cmd
		for index, stacked := range model.stack {
			next, cmd := stacked.Update(message)
			model.stack[index] = next
			commands = append(commands, cmd)
		}
		return model, tea.Batch(commands...)

	case tea.KeyMsg:
		if key.Matches(message, model.app.Keys.Quit) {
			model.closeAll()
			return model, tea.Quit
		}

	case pushScreenMsg:
		model.stack = append(model.stack, message.next)
		commands := []tea.Cmd{message.next.Init()}
		if model.ready {
			next, cmd := message.next.Update(tea.WindowSizeMsg{Width: model.width, Height: model.height})
			model.stack[len(model.stack)-1] = next
			commands = append(commands, cmd)
		}
		return model, tea.Batch(commands...)

	case popScreenMsg:
		if top := model.top(); top != nil {
			if closer, ok := top.(screenCloser); ok {
				closer.Close()
			}
			model.stack = model.stack[:len(model.stack)-1]
		}
		if len(model.stack) == 0 {
			return model, tea.Quit
		}
		return model, nil

	case replaceStackMsg:
		model.closeAll()
		model.stack = []screen{message.next}
		commands := []tea.Cmd{message.next.Init()}
		if model.ready {
			next, cmd := message.next.Update(tea.WindowSizeMsg{Width: model.width, Height: model.height})
			model.stack[0] = next
			commands = append(commands, cmd)
		}
		return model, tea.Batch(commands...)
	}

	top := model.top()
	if top == nil {
		return model, tea.Quit
	}
	next, cmd := top.Update(message)
	model.stack[len(model.stack)-1] = next
	return model, cmd
}

// closeAll releases background work held by any stacked screen.
func (model *Model) closeAll() {
	for _, stacked := range model.stack {
		if closer, ok := stacked.(screenCloser); ok {
			closer.Close()
		}
	}
}

// View implements tea.Model: header line, screen content, help line.
func (model Model) View() string {
	top := model.top()
	if top == nil || !model.ready {
		return ""
	}

	header := model.renderHeader(top.Title())
	help := model.renderHelp(top.HelpEntries())

	contentHeight := model.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}
	content := top.View(model.width, contentHeight)
	content = padToHeight(content, contentHeight)

	return header + "\n" + content + "\n" + help
}

func (model Model) renderHeader(title string) string {
	theme := model.app.Theme
	left := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HeaderForeground).
		Render(" parley · " + title)

	right := ""
	if model.app.Session != nil {
		right = lipgloss.NewStyle().
			Foreground(theme.FaintText).
			Render(model.app.Session.UserID() + " ")
	}

	gap := model.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (model Model) renderHelp(entries []key.Binding) string {
	theme := model.app.Theme
	keyStyle := lipgloss.NewStyle().Foreground(theme.HelpText).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.HelpText)

	entries = append(entries, model.app.Keys.Quit)

	var parts []string
	for _, binding := range entries {
		help := binding.Help()
		if help.Key == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+descStyle.Render(" "+help.Desc))
	}
	return " " + strings.Join(parts, descStyle.Render("  ·  "))
}

// padToHeight extends content with blank lines so the help bar stays
// anchored to the bottom row.
func padToHeight(content string, height int) string {
	lines := strings.Count(content, "\n") + 1
	if lines >= height {
		return content
	}
	return content + strings.Repeat("\n", height-lines)
}
