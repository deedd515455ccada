// Package bundle composes the text snapshot of staged work that is sent to
// the model: a stat overview, the working tree status, the staged diff and
// the list of untracked paths.
package bundle

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Placeholder is rendered in place of an empty section.
const Placeholder = "(none)"

// Section headings, in render order.
const (
	headingOverview  = "## Change overview"
	headingStatus    = "## Working tree status"
	headingDiff      = "## Staged diff"
	headingUntracked = "## Untracked files"
)

// Source provides the read-only repository queries the bundler needs.
type Source interface {
	StagedStat(ctx context.Context) (string, error)
	// WorkingTree returns short-status lines and the untracked paths,
	// both taken from a single status scan.
	WorkingTree(ctx context.Context) (status string, untracked []string, err error)
	StagedDiff(ctx context.Context) (string, error)
}

// Bundle is the collected change state of a repository.
type Bundle struct {
	Stat      string   `json:"stat"`
	Status    string   `json:"status"`
	Diff      string   `json:"diff"`
	Untracked []string `json:"untracked"`
	Summary   Summary  `json:"summary"`
}

// Collect queries src in fixed order and assembles a Bundle.
// Callers must check for staged changes first.
func Collect(ctx context.Context, src Source) (*Bundle, error) {
	stat, err := src.StagedStat(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting staged stat: %w", err)
	}
	status, untracked, err := src.WorkingTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting working tree status: %w", err)
	}
	diff, err := src.StagedDiff(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting staged diff: %w", err)
	}

	paths := make([]string, 0, len(untracked))
	for _, p := range untracked {
		if p = normalize(p); p != "" {
			paths = append(paths, p)
		}
	}

	return &Bundle{
		Stat:      stat,
		Status:    status,
		Diff:      diff,
		Untracked: paths,
		Summary:   Summarize(diff),
	}, nil
}

// Render returns the bundle as one text blob. Every section is present;
// empty ones carry Placeholder.
func (b *Bundle) Render() string {
	var sb strings.Builder
	writeSection(&sb, headingOverview, b.Stat)
	sb.WriteString("\n")
	writeSection(&sb, headingStatus, b.Status)
	sb.WriteString("\n")
	writeSection(&sb, headingDiff, b.Diff)
	sb.WriteString("\n")
	writeSection(&sb, headingUntracked, strings.Join(b.Untracked, "\n"))
	return sb.String()
}

func writeSection(sb *strings.Builder, heading, body string) {
	sb.WriteString(heading)
	sb.WriteString("\n")
	body = strings.TrimRight(body, "\n")
	if strings.TrimSpace(body) == "" {
		body = Placeholder
	}
	sb.WriteString(body)
	sb.WriteString("\n")
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	return strings.ReplaceAll(filepath.ToSlash(path), `\`, "/")
}
