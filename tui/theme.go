// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the terminal UI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Message authorship.
	SelfAuthor  lipgloss.Color
	OtherAuthor lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Status notices.
	ErrorText   lipgloss.Color
	SuccessText lipgloss.Color

	// Inline code and code blocks in message bodies.
	CodeForeground lipgloss.Color
	CodeBackground lipgloss.Color
}

// DefaultTheme returns the standard dark palette.
func DefaultTheme() Theme {
	return Theme{
		NormalText:         lipgloss.Color("252"),
		FaintText:          lipgloss.Color("243"),
		SelectedBackground: lipgloss.Color("237"),
		SelectedForeground: lipgloss.Color("255"),
		SelfAuthor:         lipgloss.Color("114"),
		OtherAuthor:        lipgloss.Color("75"),
		HeaderForeground:   lipgloss.Color("231"),
		BorderColor:        lipgloss.Color("240"),
		HelpText:           lipgloss.Color("241"),
		ErrorText:          lipgloss.Color("203"),
		SuccessText:        lipgloss.Color("114"),
		CodeForeground:     lipgloss.Color("222"),
		CodeBackground:     lipgloss.Color("236"),
	}
}
