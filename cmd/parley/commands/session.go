// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/parley-im/parley/cmd/parley/cli"
	"github.com/parley-im/parley/lib/config"
	"github.com/parley-im/parley/lib/sessionfile"
)

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Discard the saved session",
		Description: `Remove the saved session file.

The access token is not revoked server-side; the backend has no
revocation endpoint. Discarding the file is what signing out means
here.`,
		Usage: "parley logout",
		Run: func(args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := sessionfile.ClearAt(sessionPath(cfg)); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			fmt.Fprintln(os.Stderr, "Signed out")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the signed-in account",
		Usage:   "parley whoami",
		Run: func(args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			path := sessionPath(cfg)
			stored, err := sessionfile.LoadFrom(path)
			if err != nil {
				return err
			}
			fmt.Printf("user:    %s\n", stored.UserID)
			fmt.Printf("server:  %s\n", stored.ServerURL)
			fmt.Printf("session: %s\n", path)
			return nil
		},
	}
}
