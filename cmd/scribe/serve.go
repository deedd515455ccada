package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gorewood/scribe/internal/git"
	scribemcp "github.com/gorewood/scribe/internal/mcp"
	"github.com/gorewood/scribe/internal/prompt"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run scribe as a Model Context Protocol (MCP) server over stdio.

This lets MCP-capable agents draft commit messages with your local model
instead of writing them themselves.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "scribe": {
        "command": "scribe",
        "args": ["serve"]
      }
    }
  }

Available tools: bundle_diff, generate_commit_message`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := newServeEnv(cmd)
			if err != nil {
				return err
			}
			return scribemcp.Run(cmd.Context(), buildVersion(), env)
		},
	}
}

// newServeEnv wires the MCP tools to the current repository and model server.
func newServeEnv(cmd *cobra.Command) (*scribemcp.Env, error) {
	cfg, err := configFrom(cmd)
	if err != nil {
		return nil, err
	}

	root, _ := git.RepoRoot()
	return &scribemcp.Env{
		OpenSource: func(ctx context.Context) (scribemcp.Repository, error) {
			repo, err := git.Open(ctx)
			if err != nil {
				return nil, err
			}
			return repo, nil
		},
		Templates: prompt.NewLoader(root),
		Sender:    newClient(cfg),
		Options:   generateOptions(cfg),
	}, nil
}
