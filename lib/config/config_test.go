// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parley.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("base values", func(t *testing.T) {
		path := writeConfig(t, `
environment: development
server:
  url: http://chat.example.test:8080
sync:
  poll_interval: 5s
`)
		loaded, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile failed: %v", err)
		}
		if loaded.Server.URL != "http://chat.example.test:8080" {
			t.Errorf("server URL = %q", loaded.Server.URL)
		}
		if loaded.Sync.PollInterval != 5*time.Second {
			t.Errorf("poll interval = %s, want 5s", loaded.Sync.PollInterval)
		}
		// Defaults survive for unset fields.
		if loaded.Server.RequestTimeout != 30*time.Second {
			t.Errorf("request timeout = %s, want default 30s", loaded.Server.RequestTimeout)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		path := writeConfig(t, `
environment: production
server:
  url: http://localhost:8080
production:
  server:
    url: https://chat.example.com
  sync:
    poll_interval: 10s
`)
		loaded, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile failed: %v", err)
		}
		if loaded.Server.URL != "https://chat.example.com" {
			t.Errorf("server URL = %q, want production override", loaded.Server.URL)
		}
		if loaded.Sync.PollInterval != 10*time.Second {
			t.Errorf("poll interval = %s, want 10s", loaded.Sync.PollInterval)
		}
	})

	t.Run("overrides for other environments ignored", func(t *testing.T) {
		path := writeConfig(t, `
environment: development
server:
  url: http://localhost:8080
production:
  server:
    url: https://chat.example.com
`)
		loaded, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile failed: %v", err)
		}
		if loaded.Server.URL != "http://localhost:8080" {
			t.Errorf("server URL = %q, want base value", loaded.Server.URL)
		}
	})

	t.Run("unknown environment", func(t *testing.T) {
		path := writeConfig(t, `
environment: testing
server:
  url: http://localhost:8080
`)
		if _, err := LoadFile(path); err == nil {
			t.Fatal("expected error for unknown environment")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

func TestLoadWithoutEnv(t *testing.T) {
	t.Setenv("PARLEY_CONFIG", "")
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Sync.PollInterval != 3*time.Second {
		t.Errorf("default poll interval = %s, want 3s", loaded.Sync.PollInterval)
	}
}
