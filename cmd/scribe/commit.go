package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/scribe/internal/config"
	"github.com/gorewood/scribe/internal/draft"
	"github.com/gorewood/scribe/internal/generate"
	"github.com/gorewood/scribe/internal/git"
	"github.com/gorewood/scribe/internal/llm"
	"github.com/gorewood/scribe/internal/output"
	"github.com/gorewood/scribe/internal/prompt"
)

// commitFlags holds all flag values for the commit command.
type commitFlags struct {
	output       string
	yes          bool
	maxChars     int
	maxRetries   int
	model        string
	url          string
	stripChatter bool
}

// newCommitCmd creates the commit command.
func newCommitCmd() *cobra.Command {
	var flags commitFlags

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Draft a commit message for the staged changes",
		Long: `Draft a commit message for the staged changes using the local LLM.

The staged diff is bundled with the working tree status and the list of
untracked files, truncated to --max-chars, and sent to the chat endpoint.
If the server rejects the prompt as larger than its context window, the
bundle is shrunk in proportion to the reported token counts and the request
is retried, up to --max-retries requests in total.

Before generating, the server's /health endpoint is probed; an unreachable
server or one still loading its model stops the command early.

The message is printed to stdout. With --yes it is also committed.

Examples:
  scribe commit                      # Print a suggested message
  scribe commit --yes                # Commit with the suggested message
  scribe commit -o .git/COMMIT_MSG   # Write the message to a file
  scribe commit --max-chars 6000     # Start from a smaller diff budget
  scribe commit --json               # Message plus attempt details as JSON

Exit codes:
  1  not a repository, nothing staged, bad configuration, or server not ready
  2  the server failed or rejected the request
  3  the diff never fit the context window, or the reply was empty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommit(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write the message to this file")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Commit with the generated message")
	cmd.Flags().IntVar(&flags.maxChars, "max-chars", 0, "Initial diff budget in characters (default from SCRIBE_MAX_CHARS)")
	cmd.Flags().IntVar(&flags.maxRetries, "max-retries", 0, "Maximum number of requests (default from SCRIBE_MAX_RETRIES)")
	cmd.Flags().StringVarP(&flags.model, "model", "m", "", "Model name sent to the server (default from SCRIBE_MODEL)")
	cmd.Flags().StringVar(&flags.url, "url", "", "LLM server base URL (default from SCRIBE_LLM_URL)")
	cmd.Flags().BoolVar(&flags.stripChatter, "strip-chatter", false, "Remove conversational lead-ins and sign-offs from the reply")

	return cmd
}

// applyTo overlays explicitly set flags on cfg and revalidates it.
func (f commitFlags) applyTo(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("max-chars") {
		cfg.MaxChars = f.maxChars
	}
	if cmd.Flags().Changed("max-retries") {
		cfg.MaxRetries = f.maxRetries
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = f.model
	}
	if cmd.Flags().Changed("url") {
		cfg.BaseURL = strings.TrimRight(f.url, "/")
	}
	if err := cfg.Validate(); err != nil {
		return output.NewUserErrorWithCause("invalid options", err)
	}
	return nil
}

// runCommit executes the commit command.
func runCommit(cmd *cobra.Command, flags commitFlags) error {
	printer := newPrinter(cmd)
	ctx := cmd.Context()

	cfg, err := configFrom(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	if err := flags.applyTo(cmd, cfg); err != nil {
		printer.Error(err)
		return err
	}

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

	staged, err := repo.HasStagedChanges(ctx)
	if err != nil {
		printer.Error(err)
		return err
	}
	if !staged {
		err := output.NewUserError("no staged changes; stage files with 'git add' first")
		printer.Error(err)
		return err
	}

	client := newClient(cfg)
	if err := ensureReady(ctx, client); err != nil {
		printer.Error(err)
		return err
	}

	d := &draft.Drafter{
		Source:       repo,
		Templates:    prompt.NewLoader(repo.Root),
		Generator:    generate.New(client, generateOptions(cfg)),
		StripChatter: flags.stripChatter,
	}
	result, err := d.Run(ctx)
	if err != nil {
		exitErr := toExitError(err)
		printer.Error(exitErr)
		return exitErr
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, []byte(result.Message), 0o644); err != nil { //nolint:gosec // commit message files are not secret
			sysErr := output.NewSystemErrorWithCause("failed to write "+flags.output, err)
			printer.Error(sysErr)
			return sysErr
		}
	}

	committed := ""
	if flags.yes {
		committed, err = commitMessage(cmd, repo, result.Message)
		if err != nil {
			printer.Error(err)
			return err
		}
	}

	if printer.IsJSON() {
		data := map[string]any{
			"message":         result.Message,
			"attempts":        result.Attempts,
			"final_max_chars": result.FinalMaxChars,
			"committed":       flags.yes,
		}
		if flags.output != "" {
			data["output_file"] = flags.output
		}
		if committed != "" {
			data["git_output"] = committed
		}
		return printer.WriteJSON(data)
	}

	printer.Print("%s\n", result.Message)
	if result.Attempts > 1 {
		printer.Stderr("%s\n", printer.Dim(fmt.Sprintf(
			"diff truncated to %d chars after %d attempts", result.FinalMaxChars, result.Attempts)))
	}
	if committed != "" {
		printer.Stderr("%s\n", committed)
	}
	return nil
}

// commitMessage writes msg to a temp file and runs git commit -F on it.
func commitMessage(cmd *cobra.Command, repo *git.Repo, msg string) (string, error) {
	tmp, err := os.CreateTemp("", "scribe-commit-*.txt")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to create message file", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(msg + "\n"); err != nil {
		_ = tmp.Close()
		return "", output.NewSystemErrorWithCause("failed to write message file", err)
	}
	if err := tmp.Close(); err != nil {
		return "", output.NewSystemErrorWithCause("failed to write message file", err)
	}

	out, err := repo.CommitFile(cmd.Context(), tmp.Name())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// newClient builds the chat client from the configuration.
func newClient(cfg *config.Config) *llm.Client {
	return llm.New(llm.Options{
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		Timeout:     cfg.Timeout,
	})
}

// generateOptions maps the configuration onto retry loop options.
func generateOptions(cfg *config.Config) generate.Options {
	return generate.Options{
		MaxChars:   cfg.MaxChars,
		MaxRetries: cfg.MaxRetries,
		Shrink: generate.Shrink{
			SafetyFactor: cfg.ShrinkFactor,
			MinRatio:     cfg.ShrinkMinRatio,
			MaxRatio:     cfg.ShrinkMaxRatio,
			Floor:        cfg.MinChars,
		},
	}
}
