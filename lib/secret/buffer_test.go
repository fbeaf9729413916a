// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"testing"
)

func TestNewFromBytes(t *testing.T) {
	t.Run("copies and zeros source", func(t *testing.T) {
		source := []byte("hunter2")
		buffer, err := NewFromBytes(source)
		if err != nil {
			t.Fatalf("NewFromBytes failed: %v", err)
		}
		defer buffer.Close()

		if got := buffer.String(); got != "hunter2" {
			t.Errorf("buffer contents = %q, want %q", got, "hunter2")
		}
		if !bytes.Equal(source, make([]byte, len(source))) {
			t.Error("source slice was not zeroed")
		}
	})

	t.Run("empty source", func(t *testing.T) {
		if _, err := NewFromBytes(nil); err == nil {
			t.Fatal("expected error for empty source")
		}
	})
}

func TestBufferClose(t *testing.T) {
	buffer, err := NewFromString("token-value")
	if err != nil {
		t.Fatalf("NewFromString failed: %v", err)
	}

	if err := buffer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Idempotent.
	if err := buffer.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic reading closed buffer")
		}
	}()
	_ = buffer.Bytes()
}

func TestZero(t *testing.T) {
	data := []byte{1, 2, 3}
	Zero(data)
	for index, value := range data {
		if value != 0 {
			t.Errorf("data[%d] = %d after Zero", index, value)
		}
	}
}
