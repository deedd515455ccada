package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/scribe/internal/git"
	"github.com/gorewood/scribe/internal/output"
	"github.com/gorewood/scribe/internal/prompt"
)

// newTemplatesCmd creates the templates command.
func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates [name]",
		Short: "List prompt templates or show one",
		Long: `List the prompt templates scribe uses, or show one template's content.

Templates are resolved in order:
  1. .scribe/templates/<name>.md in the repository
  2. <config dir>/templates/<name>.md
  3. built-in

The "system" template is sent as the system message. The "user" template
must contain {{DIFF}}, which is replaced by the diff bundle.

Examples:
  scribe templates          # List templates and their sources
  scribe templates user     # Show the resolved user template`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTemplates,
	}
	return cmd
}

// runTemplates executes the templates command.
func runTemplates(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	root := ""
	if git.IsRepo() {
		root, _ = git.RepoRoot()
	}
	loader := prompt.NewLoader(root)

	if len(args) == 1 {
		return runTemplateShow(printer, loader, args[0])
	}
	return runTemplateList(printer, loader)
}

func runTemplateList(printer *output.Printer, loader *prompt.Loader) error {
	templates := loader.List()

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"templates": templates})
	}

	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		source := t.Source
		if t.Overrides != "" {
			source = fmt.Sprintf("%s (overrides %s)", t.Source, t.Overrides)
		}
		rows = append(rows, []string{t.Name, source, t.Description})
	}
	printer.Table([]string{"NAME", "SOURCE", "DESCRIPTION"}, rows)
	return nil
}

func runTemplateShow(printer *output.Printer, loader *prompt.Loader, name string) error {
	tmpl, err := loader.Load(name)
	if err != nil {
		userErr := output.NewUserErrorWithCause("unknown template "+name, err)
		if !errors.Is(err, prompt.ErrTemplateNotFound) {
			userErr = output.NewSystemErrorWithCause("failed to load template "+name, err)
		}
		printer.Error(userErr)
		return userErr
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"name":        name,
			"description": tmpl.Description,
			"source":      tmpl.Source,
			"content":     tmpl.Content,
		})
	}

	printer.Box(name+" ("+tmpl.Source+")", tmpl.Content)
	return nil
}
