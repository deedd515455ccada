// Package mcp provides a Model Context Protocol server for scribe.
// It exposes the diff bundle and commit message generation as MCP tools so
// coding agents can draft commit messages through the local model.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/scribe/internal/bundle"
	"github.com/gorewood/scribe/internal/draft"
	"github.com/gorewood/scribe/internal/generate"
)

// Repository is the repository view the tools operate on.
type Repository interface {
	bundle.Source
	HasStagedChanges(ctx context.Context) (bool, error)
}

// Env holds the collaborators the tools need.
type Env struct {
	// OpenSource opens the repository the tools operate on.
	OpenSource func(ctx context.Context) (Repository, error)
	Templates  draft.TemplateLoader
	Sender     generate.Sender
	Options    generate.Options
}

// NewServer creates an MCP server with all scribe tools registered.
func NewServer(version string, env *Env) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "scribe",
		Version: version,
	}, nil)
	registerTools(server, env)
	return server
}

// Run serves the tools over stdio until ctx is done or the client hangs up.
func Run(ctx context.Context, version string, env *Env) error {
	return NewServer(version, env).Run(ctx, &mcp.StdioTransport{})
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// generateAnnotations describes a tool that reads the repo and calls the
// model server but changes nothing locally.
func generateAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:  true,
		OpenWorldHint: boolPtr(true),
	}
}

func registerTools(server *mcp.Server, env *Env) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "bundle_diff",
		Description: "Collect the staged changes as the text bundle scribe sends to the model: diffstat, working tree status, staged diff, and untracked files, plus a per-file summary.",
		Annotations: readOnlyAnnotations(),
	}, handleBundle(env))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_commit_message",
		Description: "Draft a commit message for the staged changes using the configured local model. Shrinks the diff and retries when the model's context window overflows. Does not commit.",
		Annotations: generateAnnotations(),
	}, handleGenerate(env))
}
