package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/scribe/internal/llm"
	"github.com/gorewood/scribe/internal/output"
)

// healthFlags holds flag values for the health command.
type healthFlags struct {
	url string
}

// newHealthCmd creates the health command.
func newHealthCmd() *cobra.Command {
	var flags healthFlags

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the LLM server is ready",
		Long: `Probe GET {url}/health on the LLM server.

The server is ready when it answers 200 and is not still loading its model.
The probe gives up after 5 seconds.

Examples:
  scribe health
  scribe health --url http://gpu-box:8080
  scribe health --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHealth(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.url, "url", "", "LLM server base URL (default from SCRIBE_LLM_URL)")
	return cmd
}

// runHealth executes the health command.
func runHealth(cmd *cobra.Command, flags healthFlags) error {
	printer := newPrinter(cmd)

	cfg, err := configFrom(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	if flags.url != "" {
		cfg.BaseURL = strings.TrimRight(flags.url, "/")
	}

	client := newClient(cfg)
	if err := ensureReady(cmd.Context(), client); err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"url":   client.BaseURL(),
			"ready": true,
		})
	}
	return printer.Success(map[string]any{"message": "LLM server at " + client.BaseURL() + " is ready"})
}

// ensureReady probes the server and reports an unreachable or still loading
// server as a user error.
func ensureReady(ctx context.Context, client *llm.Client) error {
	if err := client.Health(ctx); err != nil {
		return output.NewUserErrorWithCause("LLM server at "+client.BaseURL()+" is not ready", err)
	}
	return nil
}
