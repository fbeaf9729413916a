// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/parley-im/parley/cmd/parley/cli"
)

func groupsCommand() *cli.Command {
	return &cli.Command{
		Name:    "groups",
		Summary: "Manage group conversations",
		Subcommands: []*cli.Command{
			groupsListCommand(),
			groupsCreateCommand(),
			groupsShowCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "List your groups",
				Command:     "parley groups list",
			},
			{
				Description: "Create a group with two members",
				Command:     "parley groups create book-club --member u-123 --member u-456",
			},
			{
				Description: "Show a group's admin and members",
				Command:     "parley groups show g-789",
			},
		},
	}
}

func groupsListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Summary: "List your groups",
		Usage:   "parley groups list",
		Run: func(args []string) error {
			logger := cli.NewCommandLogger()
			cfg, session, err := activeSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			ctx, cancel := requestContext(cfg)
			defer cancel()

			groups, err := session.Groups(ctx)
			if err != nil {
				return fmt.Errorf("list groups: %w", err)
			}
			if len(groups) == 0 {
				fmt.Fprintln(os.Stderr, "No groups yet. Try 'parley groups create <name> --member <user-id>'.")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "NAME\tID\tCREATED")
			for _, group := range groups {
				created := ""
				if !group.CreatedAt.Time.IsZero() {
					created = group.CreatedAt.Time.Format("2006-01-02")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", group.GroupName, group.GroupID, created)
			}
			return tw.Flush()
		},
	}
}

func groupsCreateCommand() *cli.Command {
	var memberIDs []string

	return &cli.Command{
		Name:    "create",
		Summary: "Create a group",
		Usage:   "parley groups create <name> --member <user-id> [--member <user-id> ...]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flagSet.StringArrayVar(&memberIDs, "member", nil, "user id to include (repeatable); find ids with 'parley friends list'")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one group name is required\n\nUsage: parley groups create <name> [flags]")
			}
			if len(memberIDs) == 0 {
				return fmt.Errorf("at least one --member is required")
			}

			logger := cli.NewCommandLogger()
			cfg, session, err := activeSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			ctx, cancel := requestContext(cfg)
			defer cancel()

			group, err := session.CreateGroup(ctx, args[0], memberIDs)
			if err != nil {
				return fmt.Errorf("create group: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Created group %q (%s)\n", group.GroupName, group.GroupID)
			return nil
		},
	}
}

func groupsShowCommand() *cli.Command {
	return &cli.Command{
		Name:    "show",
		Summary: "Show a group's admin and members",
		Usage:   "parley groups show <group-id>",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one group id is required\n\nUsage: parley groups show <group-id>")
			}

			logger := cli.NewCommandLogger()
			cfg, session, err := activeSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			ctx, cancel := requestContext(cfg)
			defer cancel()

			details, err := session.GroupDetails(ctx, args[0])
			if err != nil {
				return fmt.Errorf("group details: %w", err)
			}

			fmt.Printf("name:  %s\n", details.Group.GroupName)
			fmt.Printf("admin: %s\n", details.AdminName)
			if !details.Group.CreatedAt.Time.IsZero() {
				fmt.Printf("created: %s\n", details.Group.CreatedAt.Time.Format("2006-01-02"))
			}
			fmt.Println("members:")
			printUserTable(details.Members)
			return nil
		},
	}
}
