// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// listState tracks cursor and scroll position for the simple row
// lists used by the menu and roster screens.
type listState struct {
	cursor int
	offset int
}

func (l *listState) moveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *listState) moveDown(count int) {
	if l.cursor < count-1 {
		l.cursor++
	}
}

func (l *listState) pageUp(visible int) {
	l.cursor -= visible
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *listState) pageDown(count, visible int) {
	l.cursor += visible
	if count > 0 && l.cursor >= count {
		l.cursor = count - 1
	}
}

// clamp keeps the cursor valid after the row set changes.
func (l *listState) clamp(count int) {
	if count == 0 {
		l.cursor = 0
		l.offset = 0
		return
	}
	if l.cursor >= count {
		l.cursor = count - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// ensureVisible scrolls the window so the cursor row is on screen.
func (l *listState) ensureVisible(visible int) {
	if visible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// renderRows renders the visible window of rows with the cursor row
// highlighted. Rows are truncated to width.
func renderRows(theme Theme, rows []string, state listState, width, height int) string {
	normal := lipgloss.NewStyle().Foreground(theme.NormalText)
	selected := lipgloss.NewStyle().
		Foreground(theme.SelectedForeground).
		Background(theme.SelectedBackground).
		Bold(true)

	end := state.offset + height
	if end > len(rows) {
		end = len(rows)
	}

	var lines []string
	for index := state.offset; index < end; index++ {
		row := ansi.Truncate(rows[index], width-2, "…")
		if index == state.cursor {
			lines = append(lines, selected.Render("▸ "+row))
		} else {
			lines = append(lines, normal.Render("  "+row))
		}
	}
	return strings.Join(lines, "\n")
}
