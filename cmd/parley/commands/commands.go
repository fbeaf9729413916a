// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the parley CLI command tree. Running the
// bare binary opens the full-screen chat UI; subcommands cover
// account management, friends, and groups for scripted use.
package commands

import (
	"fmt"

	"github.com/parley-im/parley/cmd/parley/cli"
	"github.com/parley-im/parley/tui"
)

// version is the release identifier, overridden at build time with
// -ldflags "-X .../commands.version=...".
var version = "devel"

// Root builds and returns the complete parley command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "parley",
		Description: `parley: terminal chat client.

Sign in once with "parley login", then run "parley" with no arguments
to open the chat UI. Friends, groups, and messages live on the
configured parley server; the client polls it for updates while a
conversation is open.`,
		Usage: "parley [command] [flags]",
		Subcommands: []*cli.Command{
			loginCommand(),
			registerCommand(),
			logoutCommand(),
			whoamiCommand(),
			friendsCommand(),
			groupsCommand(),
			chatCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("parley %s\n", version)
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Open the chat UI",
				Command:     "parley",
			},
			{
				Description: "Sign in (saves the session locally)",
				Command:     "parley login sam@example.com",
			},
			{
				Description: "Jump straight into a conversation",
				Command:     "parley chat sam@example.com",
			},
			{
				Description: "See pending friend requests",
				Command:     "parley friends pending",
			},
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unknown argument %q\n\nRun 'parley --help' for usage.", args[0])
			}
			app, err := newTUIApp()
			if err != nil {
				return err
			}
			if app.Session != nil {
				defer app.Session.Close()
			}
			return runTUI(tui.NewModel(app))
		},
	}
}
