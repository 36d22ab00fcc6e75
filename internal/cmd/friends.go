package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/easemob/easemob-cli/internal/api"
)

func newFriendsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "friends",
		Aliases: []string{"contacts"},
		Short:   "Manage a user's contact list",
	}
	cmd.AddCommand(newFriendsAddCmd())
	cmd.AddCommand(newFriendsRemoveCmd())
	cmd.AddCommand(newFriendsListCmd())
	return cmd
}

func newFriendsAddCmd() *cobra.Command {
	var concurrency int64

	cmd := &cobra.Command{
		Use:   "add <owner> <friend>...",
		Short: "Add one or more friends to owner's contacts",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			owner, friends := args[0], args[1:]
			contacts := client.Contacts()

			if len(friends) == 1 {
				resp, err := contacts.Add(cmd.Context(), owner, friends[0])
				if err != nil {
					return err
				}
				return printResponse(cmd, resp, nil)
			}

			results := runBulkOperation(cmd.Context(), friends, concurrency, cmd.ErrOrStderr(), func(ctx context.Context, friend string) (*api.Response, error) {
				return contacts.Add(ctx, owner, friend)
			})
			return printBulkResults(formatter(cmd), "add friend", results)
		},
	}
	cmd.Flags().Int64Var(&concurrency, "concurrency", DefaultConcurrency, "Maximum parallel requests when adding several friends")
	return cmd
}

func newFriendsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <owner> <friend>",
		Aliases: []string{"rm"},
		Short:   "Remove a friend from owner's contacts",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.Contacts().Remove(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printResponse(cmd, resp, nil)
		},
	}
}

func newFriendsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list <owner>",
		Aliases: []string{"ls"},
		Short:   "List owner's friends",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.Contacts().List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResponse(cmd, resp, nil)
		},
	}
}
