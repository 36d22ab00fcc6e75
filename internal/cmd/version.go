package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easemob/easemob-cli/internal/update"
)

// version is set at build time via ldflags
var version = "dev"

func newVersionCmd() *cobra.Command {
	var minVersion string
	var check bool

	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print version information",
		Example: `  em version
  em version --min-version 1.2.0   # exit non-zero when older`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := formatter(cmd)
			if handled, err := f.Output(map[string]string{"version": version}); !handled {
				f.Println("easemob-cli version " + version)
			} else if err != nil {
				return err
			}

			if minVersion != "" {
				ok, err := update.MeetsMinimum(version, minVersion)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("version %s is older than required %s", version, minVersion)
				}
			}

			if check {
				result := update.CheckForUpdate(cmd.Context(), version)
				if result != nil && result.UpdateAvailable {
					errOut := cmd.ErrOrStderr()
					_, _ = fmt.Fprintf(errOut, "\nUpdate available: %s -> %s\n", result.CurrentVersion, result.LatestVersion)
					_, _ = fmt.Fprintf(errOut, "Download: %s\n", result.UpdateURL)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&minVersion, "min-version", "", "Fail unless this build is at least the given semver")
	cmd.Flags().BoolVar(&check, "check", false, "Check for a newer release")
	return cmd
}
