// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestListState(t *testing.T) {
	t.Run("cursor stays in bounds", func(t *testing.T) {
		var state listState
		state.moveUp()
		if state.cursor != 0 {
			t.Errorf("cursor = %d after moveUp at top", state.cursor)
		}
		state.moveDown(3)
		state.moveDown(3)
		state.moveDown(3)
		if state.cursor != 2 {
			t.Errorf("cursor = %d, want clamped to 2", state.cursor)
		}
	})

	t.Run("clamp after shrink", func(t *testing.T) {
		state := listState{cursor: 5, offset: 3}
		state.clamp(2)
		if state.cursor != 1 {
			t.Errorf("cursor = %d, want 1", state.cursor)
		}
		state.clamp(0)
		if state.cursor != 0 || state.offset != 0 {
			t.Errorf("state = %+v, want reset", state)
		}
	})

	t.Run("ensureVisible follows the cursor", func(t *testing.T) {
		state := listState{cursor: 9}
		state.ensureVisible(5)
		if state.offset != 5 {
			t.Errorf("offset = %d, want 5", state.offset)
		}
		state.cursor = 0
		state.ensureVisible(5)
		if state.offset != 0 {
			t.Errorf("offset = %d, want 0", state.offset)
		}
	})

	t.Run("page movements", func(t *testing.T) {
		var state listState
		state.pageDown(20, 6)
		if state.cursor != 6 {
			t.Errorf("cursor = %d after pageDown, want 6", state.cursor)
		}
		state.pageUp(6)
		if state.cursor != 0 {
			t.Errorf("cursor = %d after pageUp, want 0", state.cursor)
		}
	})
}

func TestRenderRows(t *testing.T) {
	theme := DefaultTheme()
	rows := []string{"alpha", "beta", "gamma", "delta"}

	t.Run("cursor row is marked", func(t *testing.T) {
		out := ansi.Strip(renderRows(theme, rows, listState{cursor: 1}, 40, 4))
		lines := strings.Split(out, "\n")
		if len(lines) != 4 {
			t.Fatalf("got %d lines, want 4", len(lines))
		}
		if !strings.HasPrefix(lines[1], "▸ beta") {
			t.Errorf("cursor line = %q", lines[1])
		}
		if !strings.HasPrefix(lines[0], "  alpha") {
			t.Errorf("non-cursor line = %q", lines[0])
		}
	})

	t.Run("window respects offset and height", func(t *testing.T) {
		out := ansi.Strip(renderRows(theme, rows, listState{cursor: 2, offset: 2}, 40, 2))
		if strings.Contains(out, "alpha") || strings.Contains(out, "beta") {
			t.Errorf("rows above the window leaked into %q", out)
		}
		if !strings.Contains(out, "gamma") || !strings.Contains(out, "delta") {
			t.Errorf("window rows missing from %q", out)
		}
	})
}

func TestRenderScrollbar(t *testing.T) {
	theme := DefaultTheme()

	t.Run("content fits gives full thumb", func(t *testing.T) {
		out := ansi.Strip(renderScrollbar(theme, 4, 3, 4, 0))
		if out != "┃\n┃\n┃\n┃" {
			t.Errorf("got %q", out)
		}
	})

	t.Run("thumb at the top when unscrolled", func(t *testing.T) {
		lines := strings.Split(ansi.Strip(renderScrollbar(theme, 10, 100, 10, 0)), "\n")
		if lines[0] != "┃" {
			t.Errorf("first line = %q, want thumb", lines[0])
		}
		if lines[9] != "│" {
			t.Errorf("last line = %q, want track", lines[9])
		}
	})

	t.Run("thumb at the bottom when fully scrolled", func(t *testing.T) {
		lines := strings.Split(ansi.Strip(renderScrollbar(theme, 10, 100, 10, 90)), "\n")
		if lines[9] != "┃" {
			t.Errorf("last line = %q, want thumb", lines[9])
		}
		if lines[0] != "│" {
			t.Errorf("first line = %q, want track", lines[0])
		}
	})
}
