package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/easemob/easemob-cli/internal/api"
	"github.com/easemob/easemob-cli/internal/config"
)

// HandleError renders err with suggestions for the user.
func HandleError(err error) string {
	if err == nil {
		return ""
	}

	var msg strings.Builder

	var apiErr *api.APIError
	var authErr *api.AuthError
	var notFound *api.NotFoundError
	var validation *api.ValidationError

	switch {
	case errors.Is(err, config.ErrNotConfigured):
		fmt.Fprintf(&msg, "Error: %s\n\n", err)
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Run: em auth login --org <org> --app <app> --client-id <id> --client-secret <secret>\n")
		msg.WriteString("  - Or set EASEMOB_ORG and EASEMOB_APP with EASEMOB_CLIENT_ID/EASEMOB_CLIENT_SECRET\n")

	case errors.As(err, &authErr):
		fmt.Fprintf(&msg, "Authentication failed: %s\n\n", authErr.Reason)
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check client_id and client_secret: em config show\n")
		msg.WriteString("  - Run: em auth login\n")

	case errors.As(err, &apiErr):
		fmt.Fprintf(&msg, "%s\n\n", apiErr.Error())
		msg.WriteString(suggestionsForStatusCode(apiErr.StatusCode, apiErr.Envelope.Error))
		if apiErr.RequestID != "" {
			fmt.Fprintf(&msg, "\nRequest ID: %s\n", apiErr.RequestID)
		}

	case errors.As(err, &notFound):
		fmt.Fprintf(&msg, "Error: %s\n", notFound.Error())

	case errors.As(err, &validation):
		fmt.Fprintf(&msg, "Error: %s\n", validation.Error())

	case strings.Contains(err.Error(), "connection refused"):
		msg.WriteString("Connection refused.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Verify domain_name: em config show\n")
		msg.WriteString("  - Check your network connection\n")

	case strings.Contains(err.Error(), "no such host"):
		msg.WriteString("DNS resolution failed.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check the domain_name spelling\n")
		msg.WriteString("  - Verify your DNS settings\n")

	default:
		fmt.Fprintf(&msg, "Error: %s\n", err.Error())
	}

	return msg.String()
}

func suggestionsForStatusCode(code int, errName string) string {
	var s strings.Builder
	s.WriteString("Suggestions:\n")

	switch {
	case errName == "duplicate_unique_property_exists":
		s.WriteString("  - The user or resource already exists\n")
	case code == 400:
		s.WriteString("  - Check your request parameters\n")
		s.WriteString("  - Use --debug to see the full request\n")
	case code == 401:
		s.WriteString("  - The access token is invalid or expired\n")
		s.WriteString("  - Drop a stale access_token: em config set access_token ''\n")
	case code == 403:
		s.WriteString("  - The application does not allow this action\n")
	case code == 404:
		s.WriteString("  - The user, group, room or file doesn't exist\n")
		s.WriteString("  - Check org_name and app_name: em config show\n")
	case code == 413:
		s.WriteString("  - The uploaded file is too large\n")
	case code == 429:
		s.WriteString("  - Too many requests\n")
		s.WriteString("  - Wait and retry in a few seconds\n")
	case code >= 500:
		s.WriteString("  - Server error - wait and retry\n")
	default:
		s.WriteString("  - Use --debug for more details\n")
	}
	return s.String()
}
