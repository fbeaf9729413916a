// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// markdownParserInstance is initialized once and reused. The parser is
// safe to share; parsing creates per-call state via Parse(reader).
var (
	markdownParserInstance goldmark.Markdown
	markdownParserOnce     sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParserInstance
}

// renderMarkdown renders a message body as styled terminal text,
// word-wrapped to width. Chat messages are short, so the renderer
// covers the inline constructs people actually type — emphasis, code
// spans, links, lists, quotes, fenced code — and flattens everything
// else to plain text.
//
// The ANSI256 color profile is forced: output always targets the
// bubbletea display, and auto-detection would produce uncolored output
// under test environments with no TTY.
func renderMarkdown(theme Theme, input string, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	if width < 8 {
		width = 8
	}

	source := []byte(input)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &markdownRenderer{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}

	var blocks []string
	for child := document.FirstChild(); child != nil; child = child.NextSibling() {
		if rendered := renderer.block(child, ""); rendered != "" {
			blocks = append(blocks, rendered)
		}
	}
	return strings.Join(blocks, "\n")
}

type markdownRenderer struct {
	source      []byte
	theme       Theme
	width       int
	lipRenderer *lipgloss.Renderer
}

func (r *markdownRenderer) style() lipgloss.Style {
	return r.lipRenderer.NewStyle()
}

// block renders one block-level node. prefix is prepended to every
// output line (list markers, quote bars).
func (r *markdownRenderer) block(node ast.Node, prefix string) string {
	switch typed := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		content := r.inline(node)
		wrapped := ansi.Wordwrap(content, r.width-ansi.StringWidth(prefix), " ")
		return prefixLines(wrapped, prefix, prefix)

	case *ast.Heading:
		content := r.style().Bold(true).Foreground(r.theme.HeaderForeground).Render(r.inline(node))
		return prefixLines(content, prefix, prefix)

	case *ast.FencedCodeBlock:
		language := string(typed.Language(r.source))
		return prefixLines(r.codeBlock(codeLines(typed, r.source), language), prefix, prefix)

	case *ast.CodeBlock:
		return prefixLines(r.codeBlock(codeLines(typed, r.source), ""), prefix, prefix)

	case *ast.List:
		var items []string
		marker := "• "
		ordered := typed.IsOrdered()
		number := typed.Start
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			if ordered {
				marker = fmt.Sprintf("%d. ", number)
				number++
			}
			var parts []string
			for child := item.FirstChild(); child != nil; child = child.NextSibling() {
				continuation := strings.Repeat(" ", len(marker))
				rendered := r.block(child, prefix+continuation)
				if child == item.FirstChild() {
					// First line carries the marker instead of padding.
					rendered = prefix + marker + strings.TrimPrefix(rendered, prefix+continuation)
				}
				parts = append(parts, rendered)
			}
			items = append(items, strings.Join(parts, "\n"))
		}
		return strings.Join(items, "\n")

	case *ast.Blockquote:
		bar := r.style().Foreground(r.theme.FaintText).Render("│ ")
		var parts []string
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			parts = append(parts, r.block(child, prefix+bar))
		}
		return strings.Join(parts, "\n")

	case *ast.ThematicBreak:
		rule := strings.Repeat("─", min(r.width, 24))
		return prefix + r.style().Foreground(r.theme.BorderColor).Render(rule)

	default:
		// Unknown block: flatten to wrapped inline text.
		content := r.inline(node)
		if content == "" {
			return ""
		}
		return prefixLines(ansi.Wordwrap(content, r.width, " "), prefix, prefix)
	}
}

// inline renders a node's inline children as one styled line, with
// soft line breaks collapsed to spaces.
func (r *markdownRenderer) inline(node ast.Node) string {
	var builder strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			builder.Write(typed.Segment.Value(r.source))
			if typed.SoftLineBreak() {
				builder.WriteByte(' ')
			}
			if typed.HardLineBreak() {
				builder.WriteByte('\n')
			}
		case *ast.String:
			builder.Write(typed.Value)
		case *ast.CodeSpan:
			code := r.inline(child)
			builder.WriteString(r.style().
				Foreground(r.theme.CodeForeground).
				Background(r.theme.CodeBackground).
				Render(code))
		case *ast.Emphasis:
			content := r.inline(child)
			if typed.Level >= 2 {
				builder.WriteString(r.style().Bold(true).Render(content))
			} else {
				builder.WriteString(r.style().Italic(true).Render(content))
			}
		case *ast.Link:
			label := r.inline(child)
			if label == "" {
				label = string(typed.Destination)
			}
			builder.WriteString(r.style().Underline(true).Render(label))
		case *ast.AutoLink:
			builder.WriteString(r.style().Underline(true).Render(string(typed.URL(r.source))))
		case *ast.Image:
			builder.WriteString(r.inline(child))
		default:
			builder.WriteString(r.inline(child))
		}
	}
	return builder.String()
}

// codeBlock highlights code with chroma when a language is given,
// falling back to a flat code style.
func (r *markdownRenderer) codeBlock(code, language string) string {
	code = strings.TrimRight(code, "\n")
	if language != "" {
		var highlighted strings.Builder
		if err := quick.Highlight(&highlighted, code, language, "terminal256", "monokai"); err == nil {
			return strings.TrimRight(highlighted.String(), "\n")
		}
	}
	codeStyle := r.style().Foreground(r.theme.CodeForeground)
	lines := strings.Split(code, "\n")
	for index, line := range lines {
		lines[index] = codeStyle.Render(line)
	}
	return strings.Join(lines, "\n")
}

// codeLines extracts the raw text of a code block node.
func codeLines(node ast.Node, source []byte) string {
	var builder strings.Builder
	segments := node.Lines()
	for index := 0; index < segments.Len(); index++ {
		segment := segments.At(index)
		builder.Write(segment.Value(source))
	}
	return builder.String()
}

// prefixLines prepends firstPrefix to the first line and restPrefix to
// the remaining lines.
func prefixLines(content, firstPrefix, restPrefix string) string {
	if firstPrefix == "" && restPrefix == "" {
		return content
	}
	lines := strings.Split(content, "\n")
	for index, line := range lines {
		if index == 0 {
			lines[index] = firstPrefix + line
		} else {
			lines[index] = restPrefix + line
		}
	}
	return strings.Join(lines, "\n")
}
