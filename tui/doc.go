// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui implements the full-screen terminal client: login and
// registration, friend and group management, and conversation views.
//
// The root Model owns a stack of screens. Each screen is a small
// bubbletea model; network calls run as commands and come back as
// typed result messages, so screens never block the event loop. The
// conversation screen runs a chat.Syncer in a goroutine for the
// lifetime of the screen and consumes its snapshots through the
// message loop.
package tui
