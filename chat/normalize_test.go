// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/parley-im/parley/api"
)

func rawFromJSON(t *testing.T, input string) api.RawMessage {
	t.Helper()
	var raw api.RawMessage
	if err := json.Unmarshal([]byte(input), &raw); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return raw
}

func TestNormalizeDirect(t *testing.T) {
	normalizer := NewDirectNormalizer("me", "Sam")

	t.Run("friend message", func(t *testing.T) {
		raw := rawFromJSON(t, `{"id":"5","content":"hi","senderId":"friend1","timestamp":"2024-01-01T00:00:00Z"}`)
		display := normalizer.Normalize(raw)

		if display.ID != "5" {
			t.Errorf("id = %q, want %q", display.ID, "5")
		}
		if display.Text != "hi" {
			t.Errorf("text = %q", display.Text)
		}
		if display.Author.ID != "friend1" || display.Author.DisplayName != "Sam" {
			t.Errorf("author = %+v", display.Author)
		}
		want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		if !display.CreatedAt.Equal(want) {
			t.Errorf("createdAt = %s, want %s", display.CreatedAt, want)
		}
	})

	t.Run("self attribution", func(t *testing.T) {
		raw := rawFromJSON(t, `{"id":"6","content":"yo","senderId":"me","timestamp":"2024-01-01T00:00:00Z"}`)
		display := normalizer.Normalize(raw)
		if display.Author.DisplayName != SelfName {
			t.Errorf("display name = %q, want %q", display.Author.DisplayName, SelfName)
		}
	})

	t.Run("idempotent for persisted records", func(t *testing.T) {
		raw := rawFromJSON(t, `{"id":"7","content":"stable","senderId":"friend1","timestamp":"2024-05-01T10:00:00Z"}`)
		first := normalizer.Normalize(raw)
		second := normalizer.Normalize(raw)
		if first != second {
			t.Errorf("normalization not idempotent: %+v vs %+v", first, second)
		}
	})

	t.Run("absent id yields fresh temporary id, same content", func(t *testing.T) {
		raw := rawFromJSON(t, `{"content":"pending","senderId":"me","timestamp":"2024-05-01T10:00:00Z"}`)
		first := normalizer.Normalize(raw)
		second := normalizer.Normalize(raw)

		if !strings.HasPrefix(first.ID, "temp-") {
			t.Errorf("id = %q, want temp- prefix", first.ID)
		}
		if first.ID == second.ID {
			t.Error("temporary ids must be unique per call")
		}
		if first.Text != second.Text || !first.CreatedAt.Equal(second.CreatedAt) || first.Author != second.Author {
			t.Error("fields other than the temporary id must be stable")
		}
	})

	t.Run("missing timestamp falls back to now", func(t *testing.T) {
		raw := rawFromJSON(t, `{"id":"8","content":"hi","senderId":"friend1"}`)
		before := time.Now()
		display := normalizer.Normalize(raw)
		after := time.Now()

		if display.CreatedAt.Before(before) || display.CreatedAt.After(after) {
			t.Errorf("createdAt = %s, want within [%s, %s]", display.CreatedAt, before, after)
		}
	})

	t.Run("wrapped large-integer timestamp", func(t *testing.T) {
		raw := rawFromJSON(t, `{"id":"9","content":"hi","senderId":"friend1","timestamp":{"$numberLong":"1700000000000"}}`)
		display := normalizer.Normalize(raw)
		if !display.CreatedAt.Equal(time.UnixMilli(1700000000000)) {
			t.Errorf("createdAt = %s, want epoch-millis 1700000000000", display.CreatedAt)
		}
	})

	t.Run("empty content degrades to empty text", func(t *testing.T) {
		raw := rawFromJSON(t, `{"id":"10","senderId":"friend1","timestamp":"2024-01-01T00:00:00Z"}`)
		if display := normalizer.Normalize(raw); display.Text != "" {
			t.Errorf("text = %q, want empty", display.Text)
		}
	})
}

func TestNormalizeGroup(t *testing.T) {
	details := &api.GroupDetails{
		AdminName: "Sam Reed",
		Members: []api.User{
			{UserID: "u1", FirstName: "Sam", LastName: "Reed", Email: "sam@example.com"},
			{UserID: "u2", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		},
	}
	normalizer := NewGroupNormalizer("me", details)

	t.Run("member name resolution", func(t *testing.T) {
		raw := rawFromJSON(t, `{"id":"1","content":"hi","senderId":"u2","timestamp":"2024-01-01T00:00:00Z"}`)
		display := normalizer.Normalize(raw)
		if display.Author.DisplayName != "Ada Lovelace" {
			t.Errorf("display name = %q, want %q", display.Author.DisplayName, "Ada Lovelace")
		}
	})

	t.Run("self attribution overrides membership", func(t *testing.T) {
		raw := rawFromJSON(t, `{"id":"2","content":"hi","senderId":"me"}`)
		if display := normalizer.Normalize(raw); display.Author.DisplayName != SelfName {
			t.Errorf("display name = %q, want %q", display.Author.DisplayName, SelfName)
		}
	})

	t.Run("senderName fallback for non-members", func(t *testing.T) {
		raw := rawFromJSON(t, `{"id":"3","content":"hi","senderId":"stranger","senderName":"Alex R"}`)
		if display := normalizer.Normalize(raw); display.Author.DisplayName != "Alex R" {
			t.Errorf("display name = %q, want %q", display.Author.DisplayName, "Alex R")
		}
	})

	t.Run("unknown user fallback", func(t *testing.T) {
		raw := rawFromJSON(t, `{"id":"4","content":"hi","senderId":"stranger"}`)
		if display := normalizer.Normalize(raw); display.Author.DisplayName != UnknownName {
			t.Errorf("display name = %q, want %q", display.Author.DisplayName, UnknownName)
		}
	})
}

func TestTempID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := TempID()
		if !strings.HasPrefix(id, "temp-") {
			t.Fatalf("id = %q, want temp- prefix", id)
		}
		if seen[id] {
			t.Fatalf("duplicate temporary id %q", id)
		}
		seen[id] = true
	}
}
