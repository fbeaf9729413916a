// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/parley-im/parley/api"
	"github.com/parley-im/parley/cmd/parley/cli"
	"github.com/parley-im/parley/tui"
)

func chatCommand() *cli.Command {
	var groupRef string

	return &cli.Command{
		Name:    "chat",
		Summary: "Open a conversation",
		Description: `Open a conversation directly, skipping the menus.

With a friend's email (or display name) as the argument, opens the 1:1
conversation. With --group, opens the named group instead.`,
		Usage: "parley chat <friend-email> | parley chat --group <name-or-id>",
		Examples: []cli.Example{
			{
				Description: "Chat with a friend",
				Command:     "parley chat sam@example.com",
			},
			{
				Description: "Open a group conversation",
				Command:     "parley chat --group book-club",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("chat", pflag.ContinueOnError)
			flagSet.StringVar(&groupRef, "group", "", "group name or id to open")
			return flagSet
		},
		Run: func(args []string) error {
			app, err := newTUIApp()
			if err != nil {
				return err
			}
			if app.Session == nil {
				return fmt.Errorf("not signed in: run \"parley login\" first")
			}
			defer app.Session.Close()

			if groupRef != "" {
				if len(args) > 0 {
					return fmt.Errorf("cannot combine --group with a friend argument")
				}
				group, err := findGroup(app, groupRef)
				if err != nil {
					return err
				}
				return runTUI(tui.NewGroupChatModel(app, group))
			}

			if len(args) != 1 {
				return fmt.Errorf("a friend email is required\n\nUsage: parley chat <friend-email>")
			}
			friend, err := findFriend(app, args[0])
			if err != nil {
				return err
			}
			return runTUI(tui.NewDirectChatModel(app, friend))
		},
	}
}

// findFriend resolves a friend by email, falling back to a
// case-insensitive display name match.
func findFriend(app *tui.App, ref string) (api.User, error) {
	ctx, cancel := requestContext(app.Config)
	defer cancel()

	friends, err := app.Session.Friends(ctx)
	if err != nil {
		return api.User{}, fmt.Errorf("list friends: %w", err)
	}

	for _, friend := range friends {
		if strings.EqualFold(friend.Email, ref) {
			return friend, nil
		}
	}
	for _, friend := range friends {
		if strings.EqualFold(friend.DisplayName(), ref) {
			return friend, nil
		}
	}
	return api.User{}, fmt.Errorf("no friend matches %q; see 'parley friends list'", ref)
}

// findGroup resolves a group by id, falling back to a
// case-insensitive name match.
func findGroup(app *tui.App, ref string) (api.Group, error) {
	ctx, cancel := requestContext(app.Config)
	defer cancel()

	groups, err := app.Session.Groups(ctx)
	if err != nil {
		return api.Group{}, fmt.Errorf("list groups: %w", err)
	}

	for _, group := range groups {
		if group.GroupID == ref {
			return group, nil
		}
	}
	for _, group := range groups {
		if strings.EqualFold(group.GroupName, ref) {
			return group, nil
		}
	}
	return api.Group{}, fmt.Errorf("no group matches %q; see 'parley groups list'", ref)
}
