package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/scribe/internal/bundle"
	"github.com/gorewood/scribe/internal/git"
	"github.com/gorewood/scribe/internal/output"
)

// newBundleCmd creates the bundle command.
func newBundleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bundle",
		Short: "Print the diff bundle sent to the model",
		Long: `Print the text bundle scribe would send to the model, without truncation.

The bundle has four sections in a fixed order: change overview (diffstat),
working tree status, staged diff, and untracked files. Empty sections hold
a "(none)" placeholder.

Examples:
  scribe bundle          # Print the bundle
  scribe bundle --json   # Bundle plus per-file summary as JSON`,
		Args: cobra.NoArgs,
		RunE: runBundle,
	}
}

// runBundle executes the bundle command.
func runBundle(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	ctx := cmd.Context()

	if !git.IsRepo() {
		err := output.NewUserError("not in a git repository")
		printer.Error(err)
		return err
	}

	repo, err := git.Open(ctx)
	if err != nil {
		printer.Error(err)
		return err
	}

	b, err := bundle.Collect(ctx, repo)
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("failed to collect diff bundle", err)
		printer.Error(sysErr)
		return sysErr
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"bundle":    b.Render(),
			"summary":   b.Summary,
			"untracked": b.Untracked,
		})
	}

	printer.Print("%s", b.Render())
	return nil
}
