// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parley-im/parley/api"
	"github.com/parley-im/parley/cmd/parley/cli"
	"github.com/parley-im/parley/lib/config"
	"github.com/parley-im/parley/lib/sessionfile"
	"github.com/parley-im/parley/tui"
)

// requestContext bounds one CLI backend call.
func requestContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.Server.RequestTimeout)
}

// sessionPath resolves where the session file lives: the config
// override when set, otherwise the default lookup (env var, XDG,
// home directory).
func sessionPath(cfg *config.Config) string {
	if cfg.SessionFile != "" {
		return cfg.SessionFile
	}
	return sessionfile.Path()
}

// activeSession loads the saved session and binds it to a client. The
// server URL recorded at login wins over the config file, since the
// stored token is only valid against that server.
func activeSession(logger *slog.Logger) (*config.Config, *api.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	stored, err := sessionfile.LoadFrom(sessionPath(cfg))
	if err != nil {
		return nil, nil, err
	}

	client, err := api.NewClient(api.ClientConfig{
		ServerURL: stored.ServerURL,
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, err
	}

	session, err := client.SessionFromToken(stored.UserID, stored.Token)
	if err != nil {
		return nil, nil, fmt.Errorf("saved session is unusable: %w", err)
	}
	return cfg, session, nil
}

// newTUIApp assembles the shared dependencies for a TUI launch. When a
// saved session exists it is installed so the UI skips the login
// screen; otherwise the app starts unauthenticated.
func newTUIApp() (*tui.App, error) {
	logger := cli.NewTUILogger()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	serverURL := cfg.Server.URL
	stored, sessionErr := sessionfile.LoadFrom(sessionPath(cfg))
	if sessionErr == nil {
		serverURL = stored.ServerURL
	}

	client, err := api.NewClient(api.ClientConfig{
		ServerURL: serverURL,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	app := &tui.App{
		Config: cfg,
		Client: client,
		Theme:  tui.DefaultTheme(),
		Keys:   tui.DefaultKeyMap,
		Logger: logger,
	}
	if sessionErr == nil {
		session, err := client.SessionFromToken(stored.UserID, stored.Token)
		if err != nil {
			return nil, fmt.Errorf("saved session is unusable: %w", err)
		}
		app.Session = session
	}
	return app, nil
}

// runTUI hands the terminal to bubbletea until the user quits.
func runTUI(model tea.Model) error {
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
