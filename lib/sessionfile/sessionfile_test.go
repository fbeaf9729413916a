// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package sessionfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	session := &Session{
		ServerURL: "http://localhost:8080",
		UserID:    "user-1",
		Token:     "tok-abc",
	}
	if err := session.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		t.Errorf("session file mode = %o, want 0600", mode)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if *loaded != *session {
		t.Errorf("loaded = %+v, want %+v", loaded, session)
	}

	if err := ClearAt(path); err != nil {
		t.Fatalf("ClearAt failed: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error loading cleared session")
	}
	// Clearing again is a no-op.
	if err := ClearAt(path); err != nil {
		t.Fatalf("second ClearAt failed: %v", err)
	}
}

func TestLoadFromValidation(t *testing.T) {
	write := func(t *testing.T, contents string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "session.json")
		if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		return path
	}

	t.Run("missing token", func(t *testing.T) {
		path := write(t, `{"server_url":"http://localhost:8080","user_id":"u1"}`)
		if _, err := LoadFrom(path); err == nil {
			t.Fatal("expected error for session without token")
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := write(t, `{`)
		if _, err := LoadFrom(path); err == nil {
			t.Fatal("expected error for malformed session file")
		}
	})

	t.Run("missing file mentions login", func(t *testing.T) {
		_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.json"))
		if err == nil {
			t.Fatal("expected error for missing session")
		}
	})
}

func TestPathEnvOverride(t *testing.T) {
	t.Setenv("PARLEY_SESSION_FILE", "/tmp/custom-session.json")
	if got := Path(); got != "/tmp/custom-session.json" {
		t.Errorf("Path() = %q, want env override", got)
	}
}
