package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/easemob/easemob-cli/internal/api"
	"github.com/easemob/easemob-cli/internal/debug"
	"github.com/easemob/easemob-cli/internal/iocontext"
	"github.com/easemob/easemob-cli/internal/outfmt"
)

const (
	envOutput  = "EASEMOB_OUTPUT"
	envEnvFile = "EASEMOB_ENV_FILE"
)

// rootFlags holds global CLI flags
type rootFlags struct {
	Output     string
	JSON       bool
	Query      string
	Compact    bool
	Debug      bool
	Quiet      bool
	Timeout    time.Duration
	Profile    string
	ConfigFile string
}

// flags is reset at the start of every Execute call. Reading it outside a
// command's RunE sees the previous invocation's values.
var flags rootFlags

func defaultOutput() string {
	if value := strings.TrimSpace(os.Getenv(envOutput)); value != "" {
		return value
	}
	return "text"
}

// loadDotEnv loads EASEMOB_ENV_FILE, or ./.env when present. Variables
// already set in the environment are not overwritten.
func loadDotEnv() {
	path := strings.TrimSpace(os.Getenv(envEnvFile))
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

// Execute runs the root command
func Execute(ctx context.Context, args []string) error {
	loadDotEnv()

	flags = rootFlags{
		Output:  defaultOutput(),
		Timeout: api.DefaultTimeout,
	}

	root := &cobra.Command{
		Use:                "em",
		Short:              "Command line client for the Easemob IM REST platform",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if flags.JSON {
				if cmd.Flags().Changed("output") && flags.Output != "json" {
					return fmt.Errorf("--json conflicts with --output %s", flags.Output)
				}
				flags.Output = "json"
			}
			if flags.Query != "" && flags.Output != "json" {
				if cmd.Flags().Changed("output") {
					return fmt.Errorf("--query requires --output json")
				}
				flags.Output = "json"
			}
			if flags.Timeout < 0 {
				return fmt.Errorf("--timeout must be >= 0")
			}

			mode, err := outfmt.Parse(flags.Output)
			if err != nil {
				return err
			}
			ctx = outfmt.WithMode(ctx, mode)
			ctx = outfmt.WithCompact(ctx, flags.Compact)
			if flags.Query != "" {
				ctx = outfmt.WithQuery(ctx, flags.Query)
			}

			streams := *iocontext.GetIO(ctx)
			if flags.Quiet {
				streams.ErrOut = io.Discard
			}
			ctx = iocontext.WithIO(ctx, &streams)
			cmd.SetOut(streams.Out)
			cmd.SetErr(streams.ErrOut)

			debug.SetupLogger(flags.Debug)
			ctx = debug.WithDebug(ctx, flags.Debug)

			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetContext(ctx)
	root.SetArgs(args)
	streams := iocontext.GetIO(ctx)
	root.SetOut(streams.Out)
	root.SetErr(streams.ErrOut)

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.Output, "output", "o", flags.Output, "Output format: text|json (env "+envOutput+")")
	pf.BoolVarP(&flags.JSON, "json", "j", false, "Shorthand for --output json")
	pf.StringVarP(&flags.Query, "query", "q", "", "jq expression to filter JSON output")
	pf.BoolVar(&flags.Compact, "compact-json", false, "Compact JSON output (no indentation)")
	pf.BoolVar(&flags.Debug, "debug", false, "Log HTTP requests to stderr")
	pf.BoolVarP(&flags.Quiet, "quiet", "Q", false, "Suppress non-essential output on stderr")
	pf.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "HTTP request timeout (e.g. 30s, 2m)")
	pf.StringVarP(&flags.Profile, "profile", "p", "", "Tenant profile to use (env EASEMOB_PROFILE)")
	pf.StringVar(&flags.ConfigFile, "config", "", "YAML tenant file to use instead of a stored profile")

	root.AddCommand(newAuthCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newUsersCmd())
	root.AddCommand(newFriendsCmd())
	root.AddCommand(newFilesCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newMessagesCmd())
	root.AddCommand(newGroupsCmd())
	root.AddCommand(newRoomsCmd())
	root.AddCommand(newVersionCmd())

	targetCmd, err := root.ExecuteC()
	if err != nil {
		_, _ = fmt.Fprint(root.ErrOrStderr(), describeError(err, root, targetCmd))
		return err
	}
	return nil
}

// describeError renders err for stderr. Unknown commands and flags get a
// "did you mean" hint; API and auth failures get HandleError's suggestions.
func describeError(err error, root, targetCmd *cobra.Command) string {
	msg := err.Error()

	if strings.Contains(msg, "unknown command") {
		if unknown := extractQuoted(msg); unknown != "" {
			parent := root
			if targetCmd != nil {
				parent = targetCmd
			}
			var names []string
			for _, c := range parent.Commands() {
				if c.IsAvailableCommand() {
					names = append(names, c.Name())
					names = append(names, c.Aliases...)
				}
			}
			if suggestion := suggestCommand(unknown, names); suggestion != "" {
				return fmt.Sprintf("%s\n\nDid you mean %q?\n", msg, suggestion)
			}
		}
		return msg + "\n"
	}

	if strings.Contains(msg, "unknown flag") || strings.Contains(msg, "unknown shorthand flag") {
		if unknown := extractFlag(msg); unknown != "" {
			cmd := root
			if targetCmd != nil {
				cmd = targetCmd
			}
			if suggestion := suggestFlag(unknown, flagNames(cmd)); suggestion != "" {
				return fmt.Sprintf("%s\n\nDid you mean %q?\nRun %q to see supported flags.\n", msg, suggestion, cmd.CommandPath()+" --help")
			}
		}
		return msg + "\n"
	}

	if errors.Is(err, pflag.ErrHelp) {
		return ""
	}
	return HandleError(err)
}

func flagNames(cmd *cobra.Command) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			for _, n := range []string{"--" + f.Name, shorthand(f)} {
				if n != "" && !seen[n] {
					seen[n] = true
					names = append(names, n)
				}
			}
		})
	}
	add(cmd.Flags())
	add(cmd.InheritedFlags())
	return names
}

func shorthand(f *pflag.Flag) string {
	if f.Shorthand == "" {
		return ""
	}
	return "-" + f.Shorthand
}

// extractQuoted extracts the first double-quoted substring from s.
func extractQuoted(s string) string {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(s[start+1:], '"')
	if end < 0 {
		return ""
	}
	return s[start+1 : start+1+end]
}

// extractFlag extracts a flag name (e.g. "--foo" or "-x") from a pflag error.
func extractFlag(s string) string {
	if idx := strings.Index(s, "--"); idx >= 0 {
		rest := s[idx:]
		if end := strings.IndexAny(rest, " ="); end >= 0 {
			rest = rest[:end]
		}
		return rest
	}
	// "unknown shorthand flag: 'x' in -x"
	idx := strings.LastIndex(s, " -")
	if idx < 0 {
		return ""
	}
	rest := strings.TrimSpace(s[idx+1:])
	if end := strings.IndexByte(rest, ' '); end >= 0 {
		rest = rest[:end]
	}
	return rest
}
