// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderMarkdown(t *testing.T) {
	theme := DefaultTheme()

	t.Run("empty input renders nothing", func(t *testing.T) {
		if got := renderMarkdown(theme, "   \n ", 40); got != "" {
			t.Errorf("expected empty output, got %q", got)
		}
	})

	t.Run("plain text survives", func(t *testing.T) {
		got := ansi.Strip(renderMarkdown(theme, "hello there", 40))
		if got != "hello there" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("long text wraps to width", func(t *testing.T) {
		input := strings.Repeat("word ", 20)
		got := renderMarkdown(theme, input, 24)
		for _, line := range strings.Split(got, "\n") {
			if width := ansi.StringWidth(line); width > 24 {
				t.Errorf("line %q has width %d, want <= 24", line, width)
			}
		}
	})

	t.Run("emphasis keeps the text", func(t *testing.T) {
		got := ansi.Strip(renderMarkdown(theme, "this is **bold** and *italic*", 60))
		if !strings.Contains(got, "bold") || !strings.Contains(got, "italic") {
			t.Errorf("emphasis content missing from %q", got)
		}
	})

	t.Run("inline code keeps the text", func(t *testing.T) {
		got := ansi.Strip(renderMarkdown(theme, "run `go env` first", 60))
		if !strings.Contains(got, "go env") {
			t.Errorf("code span missing from %q", got)
		}
	})

	t.Run("fenced code block keeps every line", func(t *testing.T) {
		input := "```go\nfunc main() {\n\tprintln(1)\n}\n```"
		got := ansi.Strip(renderMarkdown(theme, input, 60))
		if !strings.Contains(got, "func main() {") || !strings.Contains(got, "println(1)") {
			t.Errorf("code block content missing from %q", got)
		}
	})

	t.Run("unordered list gets bullets", func(t *testing.T) {
		got := ansi.Strip(renderMarkdown(theme, "- first\n- second", 40))
		if !strings.Contains(got, "• first") || !strings.Contains(got, "• second") {
			t.Errorf("bullets missing from %q", got)
		}
	})

	t.Run("ordered list keeps numbering", func(t *testing.T) {
		got := ansi.Strip(renderMarkdown(theme, "1. one\n2. two", 40))
		if !strings.Contains(got, "1. one") || !strings.Contains(got, "2. two") {
			t.Errorf("numbering missing from %q", got)
		}
	})

	t.Run("blockquote is prefixed", func(t *testing.T) {
		got := ansi.Strip(renderMarkdown(theme, "> quoted line", 40))
		if !strings.Contains(got, "│ quoted line") {
			t.Errorf("quote prefix missing from %q", got)
		}
	})

	t.Run("link renders its label", func(t *testing.T) {
		got := ansi.Strip(renderMarkdown(theme, "see [the docs](https://example.com)", 60))
		if !strings.Contains(got, "the docs") {
			t.Errorf("link label missing from %q", got)
		}
	})
}
