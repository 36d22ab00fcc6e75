package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/easemob/easemob-cli/internal/api"
	"github.com/easemob/easemob-cli/internal/resolve"
)

func newMessagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"msg"},
		Short:   "Send messages",
	}
	cmd.AddCommand(newMessagesSendCmd())
	return cmd
}

// parseTargetType accepts abbreviations such as "group" or "room".
func parseTargetType(s string) (api.TargetType, error) {
	if t, err := api.ParseTargetType(s); err == nil {
		return t, nil
	}
	names := make([]string, len(api.TargetTypes))
	for i, t := range api.TargetTypes {
		names[i] = string(t)
	}
	match, err := resolve.Match(s, names)
	if err != nil {
		return "", &api.ValidationError{Field: "target_type", Reason: fmt.Sprintf("%q: %v (use users, chatgroups or chatrooms)", s, err)}
	}
	return api.TargetType(match), nil
}

func newMessagesSendCmd() *cobra.Command {
	var (
		targetType string
		from       string
		text       string
		cmdAction  string
		ext        map[string]string
	)

	cmd := &cobra.Command{
		Use:   "send <target>...",
		Short: "Send a text or command message",
		Example: `  em messages send alice bob --text "hello" --from admin
  em messages send 1234567890 --type chatgroups --text "hi all"
  em messages send alice --action refresh_profile`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tt, err := parseTargetType(targetType)
			if err != nil {
				return err
			}
			if (text == "") == (cmdAction == "") {
				return fmt.Errorf("exactly one of --text or --action is required")
			}

			msg := api.TextMessage(tt, args, from, text)
			if cmdAction != "" {
				msg.Msg = api.MessageBody{Type: "cmd", Action: cmdAction}
			}
			if len(ext) > 0 {
				msg.Ext = make(map[string]any, len(ext))
				for k, v := range ext {
					msg.Ext[strings.TrimSpace(k)] = v
				}
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.Messages().Send(cmd.Context(), msg)
			if err != nil {
				return err
			}
			return printResponse(cmd, resp, nil)
		},
	}
	cmd.Flags().StringVarP(&targetType, "type", "t", string(api.TargetUsers), "Target type: users|chatgroups|chatrooms")
	cmd.Flags().StringVar(&from, "from", "", "Sender username (default admin)")
	cmd.Flags().StringVar(&text, "text", "", "Text message body")
	cmd.Flags().StringVar(&cmdAction, "action", "", "Send a command message with this action")
	cmd.Flags().StringToStringVar(&ext, "ext", nil, "Extension attributes (key=value,...)")
	return cmd
}
