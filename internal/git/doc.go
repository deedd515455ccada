// Package git provides the read-only repository queries scribe needs to
// describe staged work, plus the single write it performs (git commit -F).
//
// Most operations shell out to the git executable, capturing stdout/stderr and
// translating failures into *output.ExitError values:
//
//	out, err := git.RunContext(ctx, "diff", "--cached", "--stat")
//
// The working tree status is read in-process with go-git, which gives
// structured per-file status codes without parsing porcelain output:
//
//	repo, err := git.Open(ctx)
//	status, untracked, err := repo.WorkingTree(ctx)
//
// Repo satisfies bundle.Source, so it plugs directly into the diff bundler.
package git
