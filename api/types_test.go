// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWireTime(t *testing.T) {
	t.Run("RFC3339 string", func(t *testing.T) {
		var decoded WireTime
		if err := json.Unmarshal([]byte(`"2024-01-01T00:00:00Z"`), &decoded); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		if !decoded.Equal(want) {
			t.Errorf("decoded = %s, want %s", decoded, want)
		}
	})

	t.Run("wrapped large integer", func(t *testing.T) {
		var decoded WireTime
		if err := json.Unmarshal([]byte(`{"$numberLong":"1700000000000"}`), &decoded); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if !decoded.Equal(time.UnixMilli(1700000000000)) {
			t.Errorf("decoded = %s, want epoch-millis 1700000000000", decoded)
		}
	})

	t.Run("epoch millisecond number", func(t *testing.T) {
		var decoded WireTime
		if err := json.Unmarshal([]byte(`1700000000000`), &decoded); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if !decoded.Equal(time.UnixMilli(1700000000000)) {
			t.Errorf("decoded = %s", decoded)
		}
	})

	t.Run("junk degrades to zero, not error", func(t *testing.T) {
		for _, input := range []string{`"not a date"`, `{"$numberLong":"abc"}`, `{"other":1}`, `null`, `true`} {
			var decoded WireTime
			if err := json.Unmarshal([]byte(input), &decoded); err != nil {
				t.Errorf("unmarshal(%s) returned error: %v", input, err)
			}
			if !decoded.IsZero() {
				t.Errorf("unmarshal(%s) = %s, want zero", input, decoded.Time)
			}
		}
	})
}

func TestRawMessageDecoding(t *testing.T) {
	t.Run("numeric id", func(t *testing.T) {
		var message RawMessage
		input := `{"id": 42, "content": "hi", "senderId": "u1"}`
		if err := json.Unmarshal([]byte(input), &message); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if string(message.ID) != "42" {
			t.Errorf("id = %q, want stringified numeric id", message.ID)
		}
	})

	t.Run("absent id", func(t *testing.T) {
		var message RawMessage
		input := `{"content": "hi", "senderId": "u1"}`
		if err := json.Unmarshal([]byte(input), &message); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if message.ID != "" {
			t.Errorf("id = %q, want empty", message.ID)
		}
	})

	t.Run("sender name carried for group contexts", func(t *testing.T) {
		var message RawMessage
		input := `{"content": "hi", "senderId": "u1", "senderName": "Alex R"}`
		if err := json.Unmarshal([]byte(input), &message); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if message.SenderName != "Alex R" {
			t.Errorf("senderName = %q", message.SenderName)
		}
	})
}

func TestUserDisplayName(t *testing.T) {
	cases := []struct {
		name string
		user User
		want string
	}{
		{"full name", User{FirstName: "Sam", LastName: "Reed", Email: "s@x.y"}, "Sam Reed"},
		{"first only", User{FirstName: "Sam", Email: "s@x.y"}, "Sam"},
		{"email fallback", User{Email: "s@x.y"}, "s@x.y"},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.user.DisplayName(); got != testCase.want {
				t.Errorf("DisplayName = %q, want %q", got, testCase.want)
			}
		})
	}
}
