// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/parley-im/parley/api"
	"github.com/parley-im/parley/cmd/parley/cli"
	"github.com/parley-im/parley/lib/config"
	"github.com/parley-im/parley/lib/secret"
	"github.com/parley-im/parley/lib/sessionfile"
)

func loginCommand() *cli.Command {
	var serverURL string
	var passwordFile string

	return &cli.Command{
		Name:    "login",
		Summary: "Sign in and save the session",
		Description: `Sign in to a parley server and save the session locally.

After login, the chat UI and every other command use the saved session
transparently. The session file is stored at ~/.config/parley/session.json
(or $PARLEY_SESSION_FILE if set, or $XDG_CONFIG_HOME/parley/session.json)
with mode 0600, since it contains the access token.

The password is prompted interactively unless --password-file names a
file to read it from ("-" reads from stdin).`,
		Usage: "parley login <email> [flags]",
		Examples: []cli.Example{
			{
				Description: "Sign in interactively (prompts for password)",
				Command:     "parley login sam@example.com",
			},
			{
				Description: "Sign in against an explicit server",
				Command:     "parley login sam@example.com --server http://chat.example.com:8080",
			},
			{
				Description: "Sign in with the password read from a file",
				Command:     "parley login sam@example.com --password-file ~/.parley-password",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flagSet.StringVar(&serverURL, "server", "", "server URL (default: from config)")
			flagSet.StringVar(&passwordFile, "password-file", "", "path to file containing the password, or - for stdin (default: prompt)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("email is required\n\nUsage: parley login <email> [flags]")
			}
			email := args[0]
			if len(args) > 1 {
				return fmt.Errorf("unexpected argument: %s", args[1])
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if serverURL == "" {
				serverURL = cfg.Server.URL
			}

			password, err := readPassword(passwordFile)
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			defer password.Close()

			logger := cli.NewCommandLogger()
			client, err := api.NewClient(api.ClientConfig{
				ServerURL: serverURL,
				Logger:    logger,
			})
			if err != nil {
				return err
			}
			defer client.CloseIdleConnections()

			ctx, cancel := requestContext(cfg)
			defer cancel()

			session, err := client.Login(ctx, email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			defer session.Close()

			stored := sessionfile.Session{
				ServerURL: serverURL,
				UserID:    session.UserID(),
				Token:     session.Token(),
			}
			path := sessionPath(cfg)
			if err := stored.SaveTo(path); err != nil {
				return fmt.Errorf("save session: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Logged in as %s\n", session.UserID())
			fmt.Fprintf(os.Stderr, "Session saved to %s\n", path)
			return nil
		},
	}
}

// readPassword resolves the password source: a file path, "-" for
// stdin, or an interactive prompt when no path is given.
func readPassword(path string) (*secret.Buffer, error) {
	if path == "" {
		return secret.Prompt("Password: ")
	}
	return secret.ReadFromPath(path)
}
