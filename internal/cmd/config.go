package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/easemob/easemob-cli/internal/api"
	"github.com/easemob/easemob-cli/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit tenant configuration",
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigProfilesCmd())
	cmd.AddCommand(newConfigUseCmd())
	cmd.AddCommand(newConfigExportCmd())
	return cmd
}

func isSecretField(name string) bool {
	return name == api.FieldClientSecret.String() || name == api.FieldAccessToken.String()
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

func newConfigShowCmd() *cobra.Command {
	var showSecrets bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved tenant configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tenant, err := resolveTenant()
			if err != nil {
				return err
			}

			values := make(map[string]any, len(api.Fields())+1)
			pairs := make([][2]string, 0, len(api.Fields())+1)
			for _, name := range api.Fields() {
				v, _ := tenant.Get(name)
				if isSecretField(name) && !showSecrets {
					v = maskSecret(v)
				}
				values[name] = v
				pairs = append(pairs, [2]string{name, orDash(v)})
			}
			values["base_url"] = tenant.BaseURL()
			pairs = append(pairs, [2]string{"base_url", tenant.BaseURL()})

			f := formatter(cmd)
			if handled, err := f.Output(values); handled {
				return err
			}
			return f.KeyValues(pairs)
		},
	}
	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print client_secret and access_token unmasked")
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <field>",
		Short: "Print one configuration field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseFieldArg(args[0]); err != nil {
				return err
			}
			tenant, err := resolveTenant()
			if err != nil {
				return err
			}
			v, _ := tenant.Get(args[0])
			formatter(cmd).Println(v)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Change one field of the stored profile or --config file",
		Long: "Change one configuration field. Valid fields: " + fieldList() + ".\n" +
			"Changing domain_name, org_name, app_name, client_id or client_secret\n" +
			"takes effect on the next command; a cached token is never reused across tenants.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, value := args[0], args[1]
			if _, err := parseFieldArg(name); err != nil {
				return err
			}

			if flags.ConfigFile != "" {
				tenant, err := config.LoadFile(flags.ConfigFile)
				if err != nil && !api.IsNotFoundError(err) {
					return err
				}
				if err != nil {
					tenant = api.NewTenantConfig(nil)
				}
				tenant.Set(name, value)
				return config.WriteFile(flags.ConfigFile, tenant)
			}

			profile := flags.Profile
			if profile == "" {
				current, err := config.CurrentProfile()
				if err != nil {
					return err
				}
				profile = current
			}
			tenant, err := config.LoadProfile(profile)
			if errors.Is(err, config.ErrNotConfigured) {
				tenant, err = api.NewTenantConfig(nil), nil
			}
			if err != nil {
				return err
			}
			tenant.Set(name, value)
			if err := config.SaveProfile(profile, tenant); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Updated %s in profile %q\n", strings.TrimSpace(name), profile)
			return nil
		},
	}
}

func fieldList() string {
	return strings.Join(api.Fields(), ", ")
}

// parseFieldArg rejects unknown field names with a suggestion.
func parseFieldArg(name string) (api.Field, error) {
	if f, ok := api.ParseField(name); ok {
		return f, nil
	}
	msg := fmt.Sprintf("unknown configuration field %q", name)
	if suggestions := suggestField(name, api.Fields()); len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
	}
	return 0, &api.ValidationError{Field: "field", Reason: msg + "; valid fields: " + fieldList()}
}

func newConfigProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List stored profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := config.ListProfiles()
			if err != nil {
				return err
			}
			current, err := config.CurrentProfile()
			if err != nil {
				return err
			}

			f := formatter(cmd)
			if handled, err := f.Output(map[string]any{"current": current, "profiles": profiles}); handled {
				return err
			}
			if len(profiles) == 0 {
				f.Empty("No profiles stored. Run 'em auth login'.")
				return nil
			}
			rows := make([][]string, len(profiles))
			for i, p := range profiles {
				marker := ""
				if p == current {
					marker = "*"
				}
				rows[i] = []string{marker, p}
			}
			return f.Table([]string{"", "PROFILE"}, rows)
		},
	}
}

func newConfigUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <profile>",
		Short: "Switch the current profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadProfile(args[0]); err != nil {
				return err
			}
			if err := config.SetCurrentProfile(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Using profile %q\n", args[0])
			return nil
		},
	}
}

func newConfigExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the resolved tenant to a YAML file usable with --config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tenant, err := resolveTenant()
			if err != nil {
				return err
			}
			if err := config.WriteFile(args[0], tenant); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", args[0])
			return nil
		},
	}
}
