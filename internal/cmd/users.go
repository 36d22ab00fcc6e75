package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/easemob/easemob-cli/internal/api"
	"github.com/easemob/easemob-cli/internal/iocontext"
	"github.com/easemob/easemob-cli/internal/outfmt"
)

var userColumns = []string{"username", "nickname", "activated", "created"}

func printUsers(f *outfmt.Formatter, resp *api.Response) error {
	return printEntities(f, resp, userColumns)
}

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage IM users",
	}
	cmd.AddCommand(newUsersRegisterCmd())
	cmd.AddCommand(newUsersImportCmd())
	cmd.AddCommand(newUsersGetCmd())
	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersDeleteCmd())
	cmd.AddCommand(newUsersBulkDeleteCmd())
	cmd.AddCommand(newUsersPasswordCmd())
	cmd.AddCommand(newUsersNicknameCmd())
	cmd.AddCommand(newUsersDisconnectCmd())
	cmd.AddCommand(newUsersStatusCmd())
	return cmd
}

// userAction builds a command taking one username and running op on it.
func userAction(use, short string, op func(ctx context.Context, users api.UsersService, name string) (*api.Response, error), text func(*outfmt.Formatter, *api.Response) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <username>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := op(cmd.Context(), client.Users(), args[0])
			if err != nil {
				return err
			}
			return printResponse(cmd, resp, text)
		},
	}
}

func newUsersRegisterCmd() *cobra.Command {
	var password, nickname string
	var public bool

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("--password is required")
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			var resp *api.Response
			if public {
				resp, err = client.Users().PublicRegister(cmd.Context(), args[0], password, nickname)
			} else if nickname != "" {
				resp, err = client.Users().RegisterBatch(cmd.Context(), []api.UserCredentials{{Username: args[0], Password: password, Nickname: nickname}})
			} else {
				resp, err = client.Users().Register(cmd.Context(), args[0], password)
			}
			if err != nil {
				return err
			}
			return printResponse(cmd, resp, printUsers)
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password for the new user")
	cmd.Flags().StringVar(&nickname, "nickname", "", "Push nickname")
	cmd.Flags().BoolVar(&public, "public", false, "Register without a token (open registration apps)")
	return cmd
}

func newUsersImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create users listed in a YAML or JSON file",
		Long: `Create several users in one request. The file holds a list of
{username, password, nickname} entries; use - for stdin.`,
		Example: `  em users import users.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := readUserList(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.Users().RegisterBatch(cmd.Context(), users)
			if err != nil {
				return err
			}
			return printResponse(cmd, resp, printUsers)
		},
	}
}

func readUserList(ctx context.Context, path string) ([]api.UserCredentials, error) {
	var data []byte
	var err error
	if path == "-" {
		dec := yaml.NewDecoder(iocontext.GetIO(ctx).In)
		var users []api.UserCredentials
		if err := dec.Decode(&users); err != nil {
			return nil, fmt.Errorf("failed to parse user list: %w", err)
		}
		return users, nil
	}
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var users []api.UserCredentials
	if err := yaml.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return users, nil
}

func newUsersGetCmd() *cobra.Command {
	return userAction("get", "Show a user", func(ctx context.Context, u api.UsersService, name string) (*api.Response, error) {
		return u.Get(ctx, name)
	}, printUsers)
}

func newUsersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users one page at a time",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.Users().List(cmd.Context(), listOptions(cmd))
			if err != nil {
				return err
			}
			return printResponse(cmd, resp, printUsers)
		},
	}
	addListFlags(cmd)
	return cmd
}

func newUsersDeleteCmd() *cobra.Command {
	return userAction("delete", "Delete a user and the groups and rooms it owns", func(ctx context.Context, u api.UsersService, name string) (*api.Response, error) {
		return u.Delete(ctx, name)
	}, printUsers)
}

func newUsersBulkDeleteCmd() *cobra.Command {
	var concurrency int64

	cmd := &cobra.Command{
		Use:   "bulk-delete <username>...",
		Short: "Delete several users concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			users := client.Users()
			results := runBulkOperation(cmd.Context(), args, concurrency, cmd.ErrOrStderr(), func(ctx context.Context, name string) (*api.Response, error) {
				return users.Delete(ctx, name)
			})
			return printBulkResults(formatter(cmd), "delete", results)
		},
	}
	cmd.Flags().Int64Var(&concurrency, "concurrency", DefaultConcurrency, "Maximum parallel requests")
	return cmd
}

func newUsersPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "password <username> <new-password>",
		Short: "Reset a user's password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.Users().ChangePassword(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printResponse(cmd, resp, nil)
		},
	}
}

func newUsersNicknameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nickname <username> <nickname>",
		Short: "Set a user's push nickname",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.Users().ChangeNickname(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printResponse(cmd, resp, printUsers)
		},
	}
}

func newUsersDisconnectCmd() *cobra.Command {
	return userAction("disconnect", "Force a user offline", func(ctx context.Context, u api.UsersService, name string) (*api.Response, error) {
		return u.Disconnect(ctx, name)
	}, nil)
}

func newUsersStatusCmd() *cobra.Command {
	return userAction("status", "Show whether a user is online", func(ctx context.Context, u api.UsersService, name string) (*api.Response, error) {
		return u.Status(ctx, name)
	}, nil)
}
