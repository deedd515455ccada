package main

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/scribe/internal/notify"
	"github.com/gorewood/scribe/internal/output"
)

// newNotifyCmd creates the notify command.
func newNotifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notify [message]",
		Short: "Send a message to the configured Discord webhook",
		Long: `Send a message to the Discord webhook in SCRIBE_DISCORD_WEBHOOK_URL.

The message comes from the argument, or from stdin when no argument is
given. Messages longer than 2000 characters are split into several posts,
preferably at line breaks.

Examples:
  scribe notify "deployed v1.4.0"
  git log -1 --format=%B | scribe notify
  scribe commit | scribe notify`,
		Args: cobra.MaximumNArgs(1),
		RunE: runNotify,
	}
}

// runNotify executes the notify command.
func runNotify(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	cfg, err := configFrom(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	message := ""
	if len(args) > 0 {
		message = args[0]
	} else {
		message, err = readStdinIfPiped(cmd)
		if err != nil {
			printer.Error(err)
			return err
		}
	}
	if strings.TrimSpace(message) == "" {
		err := output.NewUserError("no message provided. Pass it as an argument or pipe it via stdin")
		printer.Error(err)
		return err
	}

	sent, err := notify.NewWebhook(cfg.DiscordWebhookURL, nil).Send(cmd.Context(), message)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"sent": sent})
	}
	printer.Stderr("%s\n", printer.Dim("sent "+plural(sent, "message")))
	return nil
}

// readStdinIfPiped reads stdin unless it is an interactive terminal.
func readStdinIfPiped(cmd *cobra.Command) (string, error) {
	stdin := cmd.InOrStdin()
	if file, ok := stdin.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return "", nil //nolint:nilerr // stat failure means stdin isn't usable, not an error
		}
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return "", nil
		}
	}

	content, err := io.ReadAll(stdin)
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to read stdin", err)
	}
	return strings.TrimSpace(string(content)), nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
