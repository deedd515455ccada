package git

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"github.com/gorewood/scribe/internal/output"
)

// Repo is a git repository rooted at Root.
type Repo struct {
	Root string
}

// StatusEntry is one line of short status: two status codes and a path.
type StatusEntry struct {
	Staging  byte   // index status (X)
	Worktree byte   // working tree status (Y)
	Path     string // forward-slash path relative to the root
	Extra    string // original path for renames and copies
}

// String renders the entry in `git status --short` form.
func (e StatusEntry) String() string {
	if e.Extra != "" {
		return string([]byte{e.Staging, e.Worktree}) + " " + e.Extra + " -> " + e.Path
	}
	return string([]byte{e.Staging, e.Worktree}) + " " + e.Path
}

// Open resolves the repository containing the current directory.
func Open(ctx context.Context) (*Repo, error) {
	root, err := RunContext(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, output.NewUserErrorWithCause("not in a git repository", err)
	}
	return &Repo{Root: root}, nil
}

// HasStagedChanges reports whether the index differs from HEAD.
func (r *Repo) HasStagedChanges(ctx context.Context) (bool, error) {
	out, err := runIn(ctx, r.Root, "diff", "--cached", "--name-only")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// StagedStat returns `git diff --cached --stat`.
func (r *Repo) StagedStat(ctx context.Context) (string, error) {
	out, err := runIn(ctx, r.Root, "diff", "--cached", "--stat")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// StagedDiff returns the full unified diff of staged changes.
func (r *Repo) StagedDiff(ctx context.Context) (string, error) {
	out, err := runIn(ctx, r.Root, "diff", "--cached", "--no-color", "--no-ext-diff")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// Status returns the working tree status sorted by path.
func (r *Repo) Status(_ context.Context) ([]StatusEntry, error) {
	repo, err := gogit.PlainOpenWithOptions(r.Root, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, output.NewSystemErrorWithCause("opening repository "+r.Root, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, output.NewSystemErrorWithCause("opening worktree", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, output.NewSystemErrorWithCause("reading worktree status", err)
	}

	entries := make([]StatusEntry, 0, len(status))
	for path, fs := range status {
		if fs.Staging == gogit.Unmodified && fs.Worktree == gogit.Unmodified {
			continue
		}
		entries = append(entries, StatusEntry{
			Staging:  byte(fs.Staging),
			Worktree: byte(fs.Worktree),
			Path:     normalizePath(path),
			Extra:    normalizePath(fs.Extra),
		})
	}
	slices.SortFunc(entries, func(a, b StatusEntry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return entries, nil
}

// WorkingTree renders Status as short-status lines and collects the
// untracked paths from the same scan.
func (r *Repo) WorkingTree(ctx context.Context) (string, []string, error) {
	entries, err := r.Status(ctx)
	if err != nil {
		return "", nil, err
	}
	lines := make([]string, 0, len(entries))
	var untracked []string
	for _, e := range entries {
		lines = append(lines, e.String())
		if e.Worktree == byte(gogit.Untracked) {
			untracked = append(untracked, e.Path)
		}
	}
	return strings.Join(lines, "\n"), untracked, nil
}

// CommitFile records the staged changes with the message stored in path.
func (r *Repo) CommitFile(ctx context.Context, path string) (string, error) {
	out, err := runIn(ctx, r.Root, "commit", "-F", path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func normalizePath(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), `\`, "/")
}
