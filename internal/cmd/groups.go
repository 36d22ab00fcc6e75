package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easemob/easemob-cli/internal/api"
)

// run wraps a RunE body that needs a client and produces one response.
func run(call func(cmd *cobra.Command, args []string, client *api.Client) (*api.Response, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		resp, err := call(cmd, args, client)
		if err != nil {
			return err
		}
		return printResponse(cmd, resp, nil)
	}
}

func newGroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group"},
		Short:   "Manage chat groups",
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List groups one page at a time",
		Args:    cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string, c *api.Client) (*api.Response, error) {
			return c.Groups().List(cmd.Context(), listOptions(cmd))
		}),
	}
	addListFlags(list)

	get := &cobra.Command{
		Use:   "get <group-id>...",
		Short: "Show one or more groups",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			return c.Groups().Get(cmd.Context(), args...)
		}),
	}

	cmd.AddCommand(list, get, newGroupsCreateCmd(), newGroupsUpdateCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <group-id>",
		Short: "Delete a group",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			return c.Groups().Delete(cmd.Context(), args[0])
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "members <group-id>",
		Short: "List group members",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			return c.Groups().Members(cmd.Context(), args[0])
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add-member <group-id> <username>...",
		Short: "Add one or more users to a group",
		Args:  cobra.MinimumNArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			if len(args) == 2 {
				return c.Groups().AddMember(cmd.Context(), args[0], args[1])
			}
			return c.Groups().AddMembers(cmd.Context(), args[0], args[1:])
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove-member <group-id> <username>",
		Short: "Remove a user from a group",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			return c.Groups().RemoveMember(cmd.Context(), args[0], args[1])
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "joined <username>",
		Short: "List the groups a user belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			return c.Groups().JoinedBy(cmd.Context(), args[0])
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "transfer <group-id> <new-owner>",
		Short: "Transfer group ownership",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			return c.Groups().TransferOwner(cmd.Context(), args[0], args[1])
		}),
	})
	return cmd
}

func newGroupsCreateCmd() *cobra.Command {
	var spec api.GroupSpec

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			if spec.Owner == "" {
				return nil, fmt.Errorf("--owner is required")
			}
			spec.Name = args[0]
			return c.Groups().Create(cmd.Context(), spec)
		}),
	}
	cmd.Flags().StringVar(&spec.Owner, "owner", "", "Owner username")
	cmd.Flags().StringVar(&spec.Description, "desc", "", "Description")
	cmd.Flags().BoolVar(&spec.Public, "public", true, "Whether the group is listed publicly")
	cmd.Flags().IntVar(&spec.MaxUsers, "max-users", 0, "Member limit (0 uses the platform default)")
	cmd.Flags().BoolVar(&spec.MembersOnly, "approval", false, "Require owner approval to join")
	cmd.Flags().BoolVar(&spec.AllowInvites, "allow-invites", false, "Let members invite others")
	cmd.Flags().StringSliceVar(&spec.Members, "members", nil, "Initial members (comma-separated)")
	return cmd
}

func newGroupsUpdateCmd() *cobra.Command {
	var upd api.GroupUpdate

	cmd := &cobra.Command{
		Use:   "update <group-id>",
		Short: "Change a group's name, description or member limit",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, c *api.Client) (*api.Response, error) {
			if upd == (api.GroupUpdate{}) {
				return nil, fmt.Errorf("at least one of --name, --desc or --max-users is required")
			}
			return c.Groups().Update(cmd.Context(), args[0], upd)
		}),
	}
	cmd.Flags().StringVar(&upd.Name, "name", "", "New name")
	cmd.Flags().StringVar(&upd.Description, "desc", "", "New description")
	cmd.Flags().IntVar(&upd.MaxUsers, "max-users", 0, "New member limit")
	return cmd
}
