// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parley-im/parley/api"
	"github.com/parley-im/parley/chat"
)

// chatSnapshotMsg delivers a fresh ordered message list from the
// synchronization loop.
type chatSnapshotMsg struct {
	messages []chat.DisplayMessage
}

type sendResultMsg struct {
	err error
}

// Scroll bindings local to the chat screen. The shared KeyMap binds
// j/k for lists, but here every rune belongs to the compose field, so
// scrolling is arrows-only.
var (
	chatScrollUp = key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "scroll"),
	)
	chatScrollDown = key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "scroll"),
	)
	chatSendKey = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send"),
	)
)

// chatScreen is a conversation view: a scrollback viewport fed by a
// background polling Syncer, and a compose field. It serves both 1:1
// and group conversations; group chat first fetches the membership
// snapshot so sender ids can be resolved to names.
type chatScreen struct {
	app *App

	// Exactly one of friend/group is set.
	friend  *api.User
	group   *api.Group
	details *api.GroupDetails

	syncer *chat.Syncer
	cancel context.CancelFunc
	runCtx context.Context

	viewport viewport.Model
	input    textinput.Model
	messages []chat.DisplayMessage

	width    int
	height   int
	sized    bool
	atBottom bool
	errText  string
}

func newChatScreen(app *App) *chatScreen {
	input := textinput.New()
	input.Placeholder = "message"
	input.CharLimit = 4000
	input.Prompt = "> "
	input.Focus()

	return &chatScreen{
		app:      app,
		input:    input,
		atBottom: true,
	}
}

func newDirectChatScreen(app *App, friend api.User) *chatScreen {
	s := newChatScreen(app)
	s.friend = &friend
	return s
}

func newGroupChatScreen(app *App, group api.Group) *chatScreen {
	s := newChatScreen(app)
	s.group = &group
	return s
}

func (s *chatScreen) Title() string {
	if s.friend != nil {
		return s.friend.DisplayName()
	}
	return s.group.GroupName
}

func (s *chatScreen) HelpEntries() []key.Binding {
	return []key.Binding{
		chatSendKey,
		chatScrollUp,
		s.app.Keys.Back,
	}
}

func (s *chatScreen) Init() tea.Cmd {
	if s.group != nil {
		return tea.Batch(textinput.Blink, loadGroupDetails(s.app, s.group.GroupID))
	}
	return tea.Batch(textinput.Blink, s.start())
}

// start builds the Syncer for this conversation and launches its
// polling loop. Returns the command that waits for the first snapshot.
func (s *chatScreen) start() tea.Cmd {
	session := s.app.Session
	selfID := session.UserID()

	var (
		fetch      chat.FetchFunc
		send       chat.SendFunc
		normalizer *chat.Normalizer
	)
	if s.friend != nil {
		friendID := s.friend.UserID
		fetch = func(ctx context.Context) ([]api.RawMessage, error) {
			return session.Messages(ctx, friendID)
		}
		send = func(ctx context.Context, content string) (api.RawMessage, error) {
			return session.SendMessage(ctx, friendID, content)
		}
		normalizer = chat.NewDirectNormalizer(selfID, s.friend.DisplayName())
	} else {
		groupID := s.group.GroupID
		fetch = func(ctx context.Context) ([]api.RawMessage, error) {
			return session.GroupMessages(ctx, groupID)
		}
		send = func(ctx context.Context, content string) (api.RawMessage, error) {
			return session.SendGroupMessage(ctx, groupID, content)
		}
		normalizer = chat.NewGroupNormalizer(selfID, s.details)
	}

	syncer, err := chat.NewSyncer(chat.SyncerConfig{
		Fetch:      fetch,
		Send:       send,
		Normalizer: normalizer,
		Interval:   s.app.Config.Sync.PollInterval,
		Logger:     s.app.Logger,
	})
	if err != nil {
		s.errText = err.Error()
		return nil
	}

	s.syncer = syncer
	s.runCtx, s.cancel = context.WithCancel(context.Background())
	go syncer.Run(s.runCtx)

	return waitForSnapshot(s.runCtx, syncer.Updates())
}

// waitForSnapshot blocks until the syncer publishes a snapshot or the
// conversation is closed. Re-queued after every delivery.
func waitForSnapshot(ctx context.Context, updates <-chan []chat.DisplayMessage) tea.Cmd {
	return func() tea.Msg {
		select {
		case snapshot := <-updates:
			return chatSnapshotMsg{messages: snapshot}
		case <-ctx.Done():
			return nil
		}
	}
}

// Close stops the polling loop. Called by the root model when the
// screen leaves the stack.
func (s *chatScreen) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *chatScreen) Update(message tea.Msg) (screen, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		s.width = message.Width
		s.height = message.Height
		s.layout()
		return s, nil

	case groupDetailsLoadedMsg:
		if message.err != nil {
			s.errText = "failed to load group: " + message.err.Error()
			return s, nil
		}
		s.details = message.details
		return s, s.start()

	case chatSnapshotMsg:
		s.messages = message.messages
		s.refreshScrollback()
		return s, waitForSnapshot(s.runCtx, s.syncer.Updates())

	case sendResultMsg:
		if message.err != nil {
			s.errText = "send failed: " + message.err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(message, s.app.Keys.Back):
			return s, popScreen()

		case key.Matches(message, chatScrollUp):
			s.viewport.LineUp(1)
			s.atBottom = s.viewport.AtBottom()
			return s, nil

		case key.Matches(message, chatScrollDown):
			s.viewport.LineDown(1)
			s.atBottom = s.viewport.AtBottom()
			return s, nil

		case key.Matches(message, s.app.Keys.PageUp):
			s.viewport.ViewUp()
			s.atBottom = s.viewport.AtBottom()
			return s, nil

		case key.Matches(message, s.app.Keys.PageDown):
			s.viewport.ViewDown()
			s.atBottom = s.viewport.AtBottom()
			return s, nil

		case key.Matches(message, chatSendKey):
			return s, s.send()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(message)
	return s, cmd
}

func (s *chatScreen) send() tea.Cmd {
	if s.syncer == nil {
		return nil
	}
	content := strings.TrimSpace(s.input.Value())
	if content == "" {
		return nil
	}
	s.input.Reset()
	s.errText = ""

	syncer := s.syncer
	app := s.app
	return func() tea.Msg {
		ctx, cancel := app.apiContext()
		defer cancel()
		return sendResultMsg{err: syncer.Send(ctx, content)}
	}
}

// layout recomputes pane dimensions after a resize. The bottom two
// rows hold the status line and the compose field; the scrollbar takes
// the rightmost column.
func (s *chatScreen) layout() {
	viewportHeight := s.height - 2
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	viewportWidth := s.width - 1
	if viewportWidth < 1 {
		viewportWidth = 1
	}

	if !s.sized {
		s.viewport = viewport.New(viewportWidth, viewportHeight)
		s.sized = true
	} else {
		s.viewport.Width = viewportWidth
		s.viewport.Height = viewportHeight
	}
	s.input.Width = s.width - 4

	s.refreshScrollback()
}

// refreshScrollback re-renders the message list into the viewport.
// When the user was at the bottom, the view follows new messages;
// otherwise the scroll position is left alone.
func (s *chatScreen) refreshScrollback() {
	if !s.sized {
		return
	}
	s.viewport.SetContent(s.renderMessages())
	if s.atBottom {
		s.viewport.GotoBottom()
	}
}

func (s *chatScreen) renderMessages() string {
	theme := s.app.Theme
	selfID := s.app.Session.UserID()
	bodyWidth := s.viewport.Width - 3
	if bodyWidth < 8 {
		bodyWidth = 8
	}

	timeStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	selfStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.SelfAuthor)
	otherStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.OtherAuthor)

	if len(s.messages) == 0 {
		return "\n " + timeStyle.Render("No messages yet. Say hello.")
	}

	var blocks []string
	for _, message := range s.messages {
		authorStyle := otherStyle
		if message.Author.ID == selfID {
			authorStyle = selfStyle
		}
		header := " " + authorStyle.Render(message.Author.DisplayName) +
			timeStyle.Render("  "+formatMessageTime(message.CreatedAt))

		body := renderMarkdown(theme, message.Text, bodyWidth)
		body = prefixLines(body, "   ", "   ")

		blocks = append(blocks, header+"\n"+body)
	}
	return strings.Join(blocks, "\n\n")
}

// formatMessageTime renders a timestamp compactly: clock time for
// today, day and clock time otherwise.
func formatMessageTime(at time.Time) string {
	if at.IsZero() {
		return ""
	}
	local := at.Local()
	now := time.Now()
	if local.Year() == now.Year() && local.YearDay() == now.YearDay() {
		return local.Format("15:04")
	}
	return local.Format("Jan 2 15:04")
}

func (s *chatScreen) View(width, height int) string {
	if !s.sized {
		return ""
	}
	theme := s.app.Theme

	scrollbar := renderScrollbar(
		theme,
		s.viewport.Height,
		s.viewport.TotalLineCount(),
		s.viewport.Height,
		s.viewport.YOffset,
	)
	scrollback := lipgloss.JoinHorizontal(lipgloss.Top, s.viewport.View(), scrollbar)

	status := ""
	if s.group != nil && s.details == nil && s.errText == "" {
		status = lipgloss.NewStyle().Foreground(theme.FaintText).Render(" loading group…")
	}
	if s.errText != "" {
		status = lipgloss.NewStyle().Foreground(theme.ErrorText).Render(" " + s.errText)
	}

	return scrollback + "\n" + status + "\n " + s.input.View()
}
