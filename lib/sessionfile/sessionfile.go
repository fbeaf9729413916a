// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package sessionfile persists the signed-in session between runs.
//
// The session is the one piece of cross-screen state in the client:
// created by login, removed by logout, read by every authenticated
// command and screen. Storing it in a well-known file makes the
// lifecycle explicit — there is no ambient global token.
package sessionfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parley-im/parley/lib/secret"
)

// Session holds the signed-in user's authentication state. Stored at
// the well-known path returned by Path and loaded by commands that
// require authentication. Set up once via "parley login".
type Session struct {
	// ServerURL is the base URL of the chat backend the session
	// belongs to. Kept alongside the token so a config pointing at a
	// different backend fails loud instead of sending the token there.
	ServerURL string `json:"server_url"`

	// UserID is the signed-in user's identity, decoded from the
	// token's subject claim at login time.
	UserID string `json:"user_id"`

	// Token is the bearer token proving the user's identity.
	Token string `json:"token"`
}

// Path returns the session file location. Checks PARLEY_SESSION_FILE
// first, then falls back to ~/.config/parley/session.json.
func Path() string {
	if envPath := os.Getenv("PARLEY_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "parley-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "parley", "session.json")
}

// Load reads the session from the well-known path. Returns a clear
// error directing the user to "parley login" if no session exists.
func Load() (*Session, error) {
	return LoadFrom(Path())
}

// LoadFrom reads a session from a specific file path.
func LoadFrom(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no Parley session found at %s — run \"parley login\" first", path)
		}
		return nil, fmt.Errorf("reading session file %s: %w", path, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		secret.Zero(data)
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	secret.Zero(data)

	if session.ServerURL == "" {
		return nil, fmt.Errorf("session file %s has no server_url", path)
	}
	if session.UserID == "" {
		return nil, fmt.Errorf("session file %s has no user_id", path)
	}
	if session.Token == "" {
		return nil, fmt.Errorf("session file %s has no token", path)
	}
	return &session, nil
}

// Save writes the session to the well-known path with mode 0600
// (owner-only), creating the parent directory if needed.
func (s *Session) Save() error {
	return s.SaveTo(Path())
}

// SaveTo writes the session to a specific file path.
func (s *Session) SaveTo(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file %s: %w", path, err)
	}
	return nil
}

// Clear removes the saved session. Missing file is not an error —
// logout of a logged-out client is a no-op.
func Clear() error {
	return ClearAt(Path())
}

// ClearAt removes a session file at a specific path.
func ClearAt(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file %s: %w", path, err)
	}
	return nil
}
