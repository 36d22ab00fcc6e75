package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/easemob/easemob-cli/internal/api"
	"github.com/easemob/easemob-cli/internal/outfmt"
	"github.com/easemob/easemob-cli/internal/timebucket"
)

func newFilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Upload and download chat files",
	}
	cmd.AddCommand(newFilesUploadCmd())
	cmd.AddCommand(newFilesDownloadCmd())
	return cmd
}

func newFilesUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a file; prints its uuid and share-secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.Files().Upload(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResponse(cmd, resp, func(f *outfmt.Formatter, r *api.Response) error {
				return printEntities(f, r, []string{"uuid", "share-secret"})
			})
		},
	}
}

func newFilesDownloadCmd() *cobra.Command {
	var secret, out string

	cmd := &cobra.Command{
		Use:   "download <uuid>",
		Short: "Download a file by uuid",
		Example: `  em files download 5b3b5e30-1b2a-11e6-a1a8-7b0c1f8d3f31 --secret W3tkU... --out photo.jpg
  em files download 5b3b5e30-1b2a-11e6-a1a8-7b0c1f8d3f31 --secret W3tkU... > photo.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := uuid.Validate(args[0]); err != nil {
				return &api.ValidationError{Field: "uuid", Reason: err.Error()}
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.Files().Download(cmd.Context(), args[0], secret)
			if err != nil {
				return err
			}
			if err := resp.Err(); err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(resp.Body)
				return err
			}
			if err := os.WriteFile(out, resp.Body, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d bytes to %s\n", len(resp.Body), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "share-secret returned by upload")
	cmd.Flags().StringVarP(&out, "out", "O", "", "Write to this file instead of stdout")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}

// now is replaced in tests.
var now = time.Now

func newHistoryCmd() *cobra.Command {
	var utc bool

	cmd := &cobra.Command{
		Use:   "history <time>",
		Short: "Fetch the chat history archive for an hour bucket",
		Long: `Fetch the download link of the chat history archive for one hour.

The hour is a YYYYMMDDHH bucket, e.g. 2026101812, or a time expression
such as "3h ago", "yesterday" or "2026-10-18 12", resolved in local time
unless --utc is set.`,
		Example: `  em history 2026101812
  em history "2h ago" --utc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := time.Local
			if utc {
				loc = time.UTC
			}
			bucket, err := timebucket.Bucket(args[0], now(), loc)
			if err != nil {
				return &api.ValidationError{Field: "time", Reason: err.Error()}
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.ChatMessages().History(cmd.Context(), bucket)
			if err != nil {
				return err
			}
			return printResponse(cmd, resp, nil)
		},
	}
	cmd.Flags().BoolVar(&utc, "utc", false, "Resolve time expressions in UTC")
	return cmd
}
