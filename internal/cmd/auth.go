package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easemob/easemob-cli/internal/api"
	"github.com/easemob/easemob-cli/internal/config"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage tenant credentials",
	}
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthTokenCmd())
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var (
		domain, org, app       string
		clientID, clientSecret string
		accessToken            string
		verify                 bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store tenant credentials in the keychain",
		Example: `  em auth login --org 1122161011178276 --app testapp --client-id YXA6... --client-secret YXA6...
  em auth login --profile staging --domain https://a1-sgp.easemob.com --org o --app a --access-token YWMt...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if org == "" || app == "" {
				return fmt.Errorf("--org and --app are required")
			}
			if accessToken == "" && (clientID == "" || clientSecret == "") {
				return fmt.Errorf("--client-id and --client-secret are required unless --access-token is given")
			}

			tenant := api.NewTenantConfig(map[string]string{
				api.FieldOrgName.String():      org,
				api.FieldAppName.String():      app,
				api.FieldClientID.String():     clientID,
				api.FieldClientSecret.String(): clientSecret,
				api.FieldAccessToken.String():  accessToken,
			})
			if domain != "" {
				tenant.DomainName = domain
			}

			if verify {
				if _, err := newClientFor(tenant).Token(cmd.Context()); err != nil {
					return err
				}
			}

			profile := flags.Profile
			if profile == "" {
				profile = "default"
			}
			if err := config.SaveProfile(profile, tenant); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved profile %q for %s\n", profile, tenant.BaseURL())
			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "REST domain (default "+api.DefaultDomain+")")
	cmd.Flags().StringVar(&org, "org", "", "Organization name")
	cmd.Flags().StringVar(&app, "app", "", "Application name")
	cmd.Flags().StringVar(&clientID, "client-id", "", "Client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "Client secret")
	cmd.Flags().StringVar(&accessToken, "access-token", "", "Pre-issued access token")
	cmd.Flags().BoolVar(&verify, "verify", false, "Fetch a token before saving")
	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove a stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile := flags.Profile
			if profile == "" {
				current, err := config.CurrentProfile()
				if err != nil {
					return err
				}
				profile = current
			}
			if err := config.DeleteProfile(profile); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Removed profile %q\n", profile)
			return nil
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which tenant commands will use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tenant, err := resolveTenant()
			if err != nil {
				return err
			}

			method := "client_credentials"
			if tenant.AccessToken != "" {
				method = "access_token"
			}
			status := map[string]any{
				"base_url":    tenant.BaseURL(),
				"org_name":    tenant.OrgName,
				"app_name":    tenant.AppName,
				"client_id":   tenant.ClientID,
				"auth_method": method,
			}

			f := formatter(cmd)
			if handled, err := f.Output(status); handled {
				return err
			}
			return f.KeyValues([][2]string{
				{"Base URL", tenant.BaseURL()},
				{"Client ID", orDash(tenant.ClientID)},
				{"Auth", method},
			})
		},
	}
}

func newAuthTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the tenant",
		Long:  "Print the configured access_token, or one obtained with the client_credentials grant.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			env, err := client.TokenEnvelope(cmd.Context())
			if err != nil {
				return err
			}

			f := formatter(cmd)
			if handled, err := f.Output(env); handled {
				return err
			}
			f.Println(env.AccessToken)
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
