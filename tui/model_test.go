// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parley-im/parley/api"
	"github.com/parley-im/parley/lib/config"
)

func testApp(t *testing.T, authenticated bool) *App {
	t.Helper()

	client, err := api.NewClient(api.ClientConfig{
		ServerURL: "http://localhost:8080",
		Logger:    slog.New(slog.DiscardHandler),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	app := &App{
		Config: config.Default(),
		Client: client,
		Theme:  DefaultTheme(),
		Keys:   DefaultKeyMap,
		Logger: slog.New(slog.DiscardHandler),
	}
	if authenticated {
		session, err := client.SessionFromToken("user-1", "token-1")
		if err != nil {
			t.Fatalf("SessionFromToken: %v", err)
		}
		t.Cleanup(func() { session.Close() })
		app.Session = session
	}
	return app
}

func TestNewModelStartScreen(t *testing.T) {
	t.Run("unauthenticated starts at sign in", func(t *testing.T) {
		model := NewModel(testApp(t, false))
		if got := model.top().Title(); got != "sign in" {
			t.Errorf("start screen = %q, want sign in", got)
		}
	})

	t.Run("authenticated starts at home", func(t *testing.T) {
		model := NewModel(testApp(t, true))
		if got := model.top().Title(); got != "home" {
			t.Errorf("start screen = %q, want home", got)
		}
	})
}

func TestModelNavigation(t *testing.T) {
	t.Run("push and pop", func(t *testing.T) {
		app := testApp(t, true)
		model := NewModel(app)

		updated, _ := model.Update(pushScreenMsg{next: newFriendsScreen(app)})
		model = updated.(Model)
		if got := model.top().Title(); got != "friends" {
			t.Fatalf("top after push = %q", got)
		}

		updated, _ = model.Update(popScreenMsg{})
		model = updated.(Model)
		if got := model.top().Title(); got != "home" {
			t.Errorf("top after pop = %q", got)
		}
	})

	t.Run("popping the last screen quits", func(t *testing.T) {
		model := NewModel(testApp(t, true))
		updated, cmd := model.Update(popScreenMsg{})
		model = updated.(Model)
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected tea.QuitMsg, got %T", cmd())
		}
		if model.top() != nil {
			t.Error("stack should be empty")
		}
	})

	t.Run("replace collapses the stack", func(t *testing.T) {
		app := testApp(t, true)
		model := NewModel(app)

		updated, _ := model.Update(pushScreenMsg{next: newFriendsScreen(app)})
		model = updated.(Model)
		updated, _ = model.Update(replaceStackMsg{next: newLoginScreen(app)})
		model = updated.(Model)

		if len(model.stack) != 1 {
			t.Fatalf("stack depth = %d, want 1", len(model.stack))
		}
		if got := model.top().Title(); got != "sign in" {
			t.Errorf("top after replace = %q", got)
		}
	})
}

func TestLoginValidation(t *testing.T) {
	app := testApp(t, false)
	login := newLoginScreen(app)

	if cmd := login.submit(); cmd != nil {
		t.Error("submit with empty email should not produce a command")
	}
	if login.errText != "email is required" {
		t.Errorf("errText = %q", login.errText)
	}

	login.email.SetValue("person@example.com")
	if cmd := login.submit(); cmd != nil {
		t.Error("submit with empty password should not produce a command")
	}
	if login.errText != "password is required" {
		t.Errorf("errText = %q", login.errText)
	}
}

func TestHomeMenuOpensFriends(t *testing.T) {
	app := testApp(t, true)
	home := newHomeScreen(app)

	_, cmd := home.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	push, ok := cmd().(pushScreenMsg)
	if !ok {
		t.Fatalf("expected pushScreenMsg, got %T", cmd())
	}
	if got := push.next.Title(); got != "friends" {
		t.Errorf("pushed screen = %q, want friends", got)
	}
}
