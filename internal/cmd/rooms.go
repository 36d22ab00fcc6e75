package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easemob/easemob-cli/internal/api"
)

func newRoomsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rooms",
		Aliases: []string{"room"},
		Short:   "Manage chat rooms",
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List chat rooms",
		Args:    cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string, c *api.Client) (*api.Response, error) {
			return c.Rooms().List(cmd.Context(), listOptions(cmd))
		}),
	}
	addListFlags(list)

	cmd.AddCommand(list, newRoomsCreateCmd(), newRoomsUpdateCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "get <room-id>",
		Short: "Show a chat room",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			return c.Rooms().Get(cmd.Context(), args[0])
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <room-id>",
		Short: "Delete a chat room",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			return c.Rooms().Delete(cmd.Context(), args[0])
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "members <room-id>",
		Short: "List chat room members",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			return c.Rooms().Members(cmd.Context(), args[0])
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add-member <room-id> <username>",
		Short: "Add a user to a chat room",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			return c.Rooms().AddMember(cmd.Context(), args[0], args[1])
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove-member <room-id> <username>",
		Short: "Remove a user from a chat room",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			return c.Rooms().RemoveMember(cmd.Context(), args[0], args[1])
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "joined <username>",
		Short: "List the chat rooms a user is in",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			return c.Rooms().JoinedBy(cmd.Context(), args[0])
		}),
	})
	return cmd
}

func newRoomsCreateCmd() *cobra.Command {
	var spec api.RoomSpec

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a chat room",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			if spec.Owner == "" {
				return nil, fmt.Errorf("--owner is required")
			}
			spec.Name = args[0]
			return c.Rooms().Create(cmd.Context(), spec)
		}),
	}
	cmd.Flags().StringVar(&spec.Owner, "owner", "", "Owner username")
	cmd.Flags().StringVar(&spec.Description, "desc", "", "Description")
	cmd.Flags().IntVar(&spec.MaxUsers, "max-users", 0, "Member limit (0 uses the platform default)")
	cmd.Flags().StringSliceVar(&spec.Members, "members", nil, "Initial members (comma-separated)")
	return cmd
}

func newRoomsUpdateCmd() *cobra.Command {
	var upd api.RoomUpdate

	cmd := &cobra.Command{
		Use:   "update <room-id>",
		Short: "Change a chat room's name, description or member limit",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			if upd == (api.RoomUpdate{}) {
				return nil, fmt.Errorf("at least one of --name, --desc or --max-users is required")
			}
			return c.Rooms().Update(cmd.Context(), args[0], upd)
		}),
	}
	cmd.Flags().StringVar(&upd.Name, "name", "", "New name")
	cmd.Flags().StringVar(&upd.Description, "desc", "", "New description")
	cmd.Flags().IntVar(&upd.MaxUsers, "max-users", 0, "New member limit")
	return cmd
}
