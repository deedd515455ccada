package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/scribe/internal/bundle"
	"github.com/gorewood/scribe/internal/draft"
	"github.com/gorewood/scribe/internal/generate"
	"github.com/gorewood/scribe/internal/output"
)

// --- Bundle tool ---

// BundleInput is the input for the bundle_diff tool (no parameters needed).
type BundleInput struct{}

// FileChange is one file touched by the staged diff.
type FileChange struct {
	Path string `json:"path" jsonschema:"file path"`
	Kind string `json:"kind" jsonschema:"added, modified, deleted or renamed"`
}

// BundleOutput is the output for the bundle_diff tool.
type BundleOutput struct {
	Bundle    string       `json:"bundle"              jsonschema:"rendered diff bundle text"`
	HasStaged bool         `json:"has_staged"          jsonschema:"whether anything is staged"`
	Files     int          `json:"files"               jsonschema:"number of files in the staged diff"`
	Hunks     int          `json:"hunks"               jsonschema:"number of hunks in the staged diff"`
	Changes   []FileChange `json:"changes,omitempty"   jsonschema:"per-file change kinds"`
	Untracked []string     `json:"untracked,omitempty" jsonschema:"untracked paths"`
}

func handleBundle(env *Env) mcp.ToolHandlerFor[BundleInput, BundleOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ BundleInput) (*mcp.CallToolResult, BundleOutput, error) {
		src, err := env.OpenSource(ctx)
		if err != nil {
			return nil, BundleOutput{}, fmt.Errorf("opening repository: %w", err)
		}

		b, err := bundle.Collect(ctx, src)
		if err != nil {
			return nil, BundleOutput{}, fmt.Errorf("collecting bundle: %w", err)
		}

		out := BundleOutput{
			Bundle:    b.Render(),
			HasStaged: strings.TrimSpace(b.Diff) != "",
			Files:     b.Summary.Files,
			Hunks:     b.Summary.Hunks,
			Untracked: b.Untracked,
		}
		for _, c := range b.Summary.Changes {
			out.Changes = append(out.Changes, FileChange{Path: c.Path, Kind: c.Kind})
		}
		return nil, out, nil
	}
}

// --- Generate tool ---

// GenerateInput is the input for the generate_commit_message tool.
type GenerateInput struct {
	MaxChars     int  `json:"max_chars,omitempty"     jsonschema:"initial character budget for the diff bundle"`
	MaxRetries   int  `json:"max_retries,omitempty"   jsonschema:"maximum number of requests"`
	StripChatter bool `json:"strip_chatter,omitempty" jsonschema:"remove conversational lead-ins from the reply"`
}

// GenerateOutput is the output for the generate_commit_message tool.
type GenerateOutput struct {
	Message       string `json:"message"         jsonschema:"sanitized commit message"`
	Attempts      int    `json:"attempts"        jsonschema:"number of requests made"`
	FinalMaxChars int    `json:"final_max_chars" jsonschema:"character budget of the successful request"`
}

func handleGenerate(env *Env) mcp.ToolHandlerFor[GenerateInput, GenerateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, GenerateOutput, error) {
		if input.MaxChars < 0 || input.MaxRetries < 0 {
			return nil, GenerateOutput{}, output.NewUserError("max_chars and max_retries must not be negative")
		}

		opts := env.Options
		if input.MaxChars > 0 {
			if input.MaxChars < opts.Shrink.Floor {
				return nil, GenerateOutput{}, output.NewUserError(
					fmt.Sprintf("max_chars must be at least %d", opts.Shrink.Floor))
			}
			opts.MaxChars = input.MaxChars
		}
		if input.MaxRetries > 0 {
			opts.MaxRetries = input.MaxRetries
		}

		src, err := env.OpenSource(ctx)
		if err != nil {
			return nil, GenerateOutput{}, fmt.Errorf("opening repository: %w", err)
		}

		staged, err := src.HasStagedChanges(ctx)
		if err != nil {
			return nil, GenerateOutput{}, fmt.Errorf("checking staged changes: %w", err)
		}
		if !staged {
			return nil, GenerateOutput{}, output.NewUserError("no staged changes; stage files with 'git add' first")
		}

		d := &draft.Drafter{
			Source:       src,
			Templates:    env.Templates,
			Generator:    generate.New(env.Sender, opts),
			StripChatter: input.StripChatter,
		}
		result, err := d.Run(ctx)
		if err != nil {
			return nil, GenerateOutput{}, err
		}

		return nil, GenerateOutput{
			Message:       result.Message,
			Attempts:      result.Attempts,
			FinalMaxChars: result.FinalMaxChars,
		}, nil
	}
}
