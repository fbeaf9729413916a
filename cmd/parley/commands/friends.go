// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/parley-im/parley/api"
	"github.com/parley-im/parley/cmd/parley/cli"
)

func friendsCommand() *cli.Command {
	return &cli.Command{
		Name:    "friends",
		Summary: "Manage friends and friend requests",
		Subcommands: []*cli.Command{
			friendsListCommand(),
			friendsAddCommand(),
			friendsAcceptCommand(),
			friendsPendingCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "List accepted friends",
				Command:     "parley friends list",
			},
			{
				Description: "Send a friend request",
				Command:     "parley friends add sam@example.com",
			},
			{
				Description: "Accept a received request",
				Command:     "parley friends accept sam@example.com",
			},
		},
	}
}

func friendsListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Summary: "List accepted friends",
		Usage:   "parley friends list",
		Run: func(args []string) error {
			logger := cli.NewCommandLogger()
			cfg, session, err := activeSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			ctx, cancel := requestContext(cfg)
			defer cancel()

			friends, err := session.Friends(ctx)
			if err != nil {
				return fmt.Errorf("list friends: %w", err)
			}
			if len(friends) == 0 {
				fmt.Fprintln(os.Stderr, "No friends yet. Try 'parley friends add <email>'.")
				return nil
			}

			printUserTable(friends)
			return nil
		},
	}
}

func friendsAddCommand() *cli.Command {
	return &cli.Command{
		Name:    "add",
		Summary: "Send a friend request by email",
		Usage:   "parley friends add <email>",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one email is required\n\nUsage: parley friends add <email>")
			}
			email := args[0]

			logger := cli.NewCommandLogger()
			cfg, session, err := activeSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			ctx, cancel := requestContext(cfg)
			defer cancel()

			if err := session.AddFriend(ctx, email); err != nil {
				return fmt.Errorf("add friend: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Friend request sent to %s\n", email)
			return nil
		},
	}
}

func friendsAcceptCommand() *cli.Command {
	return &cli.Command{
		Name:    "accept",
		Summary: "Accept a received friend request",
		Usage:   "parley friends accept <email>",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one email is required\n\nUsage: parley friends accept <email>")
			}
			email := args[0]

			logger := cli.NewCommandLogger()
			cfg, session, err := activeSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			ctx, cancel := requestContext(cfg)
			defer cancel()

			if err := session.AcceptFriend(ctx, email); err != nil {
				return fmt.Errorf("accept friend: %w", err)
			}
			fmt.Fprintf(os.Stderr, "%s is now a friend\n", email)
			return nil
		},
	}
}

func friendsPendingCommand() *cli.Command {
	return &cli.Command{
		Name:    "pending",
		Summary: "Show pending friend requests, both directions",
		Usage:   "parley friends pending",
		Run: func(args []string) error {
			logger := cli.NewCommandLogger()
			cfg, session, err := activeSession(logger)
			if err != nil {
				return err
			}
			defer session.Close()

			ctx, cancel := requestContext(cfg)
			defer cancel()

			received, err := session.PendingRequests(ctx)
			if err != nil {
				return fmt.Errorf("list received requests: %w", err)
			}
			sent, err := session.SentRequests(ctx)
			if err != nil {
				return fmt.Errorf("list sent requests: %w", err)
			}

			fmt.Println("Received:")
			printRequestTable(received)
			fmt.Println("\nSent:")
			printRequestTable(sent)
			return nil
		},
	}
}

func printUserTable(users []api.User) {
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tID")
	for _, user := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", user.DisplayName(), user.Email, user.UserID)
	}
	tw.Flush()
}

func printRequestTable(requests []api.FriendRequest) {
	if len(requests) == 0 {
		fmt.Println("  none")
		return
	}
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	for _, request := range requests {
		fmt.Fprintf(tw, "  %s\t%s\n", request.DisplayName(), request.Email)
	}
	tw.Flush()
}
