// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/parley-im/parley/api"
	"github.com/parley-im/parley/cmd/parley/cli"
	"github.com/parley-im/parley/lib/config"
)

func registerCommand() *cli.Command {
	var serverURL string
	var firstName string
	var lastName string
	var passwordFile string

	return &cli.Command{
		Name:    "register",
		Summary: "Create a new account",
		Description: `Create an account on a parley server.

Registration does not sign you in; run "parley login" afterwards.`,
		Usage: "parley register <email> --first-name <name> --last-name <name> [flags]",
		Examples: []cli.Example{
			{
				Description: "Create an account (prompts for password)",
				Command:     "parley register sam@example.com --first-name Sam --last-name Reyes",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("register", pflag.ContinueOnError)
			flagSet.StringVar(&serverURL, "server", "", "server URL (default: from config)")
			flagSet.StringVar(&firstName, "first-name", "", "first name")
			flagSet.StringVar(&lastName, "last-name", "", "last name")
			flagSet.StringVar(&passwordFile, "password-file", "", "path to file containing the password, or - for stdin (default: prompt)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("email is required\n\nUsage: parley register <email> [flags]")
			}
			email := args[0]
			if firstName == "" || lastName == "" {
				return fmt.Errorf("--first-name and --last-name are required")
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

			err = client.Register(ctx, api.RegisterRequest{
				FirstName: firstName,
				LastName:  lastName,
				Email:     email,
				Password:  password,
			})
			if err != nil {
				if api.IsStatus(err, http.StatusConflict) {
					return fmt.Errorf("an account with email %s already exists", email)
				}
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Account created for %s\n", email)
			fmt.Fprintf(os.Stderr, "Run 'parley login %s' to sign in\n", email)
			return nil
		},
	}
}
