package bundle

import (
	"strings"

	"github.com/waigani/diffparser"
)

// Summary counts what the staged diff touches.
type Summary struct {
	Files    int          `json:"files"`
	Added    int          `json:"added"`
	Modified int          `json:"modified"`
	Deleted  int          `json:"deleted"`
	Renamed  int          `json:"renamed"`
	Hunks    int          `json:"hunks"`
	Changes  []FileChange `json:"changes,omitempty"`
}

// FileChange is one file in the staged diff.
type FileChange struct {
	Path string `json:"path"`
	Kind string `json:"kind"` // added, modified, deleted, renamed
}

// Summarize parses a unified diff. Unparseable input yields an empty Summary;
// the summary is informational and never blocks a bundle.
func Summarize(diff string) Summary {
	var s Summary
	if diff == "" {
		return s
	}

	parsed, err := diffparser.Parse(diff)
	if err != nil || parsed == nil {
		return s
	}

	for _, f := range parsed.Files {
		if f.OrigName == "" && f.NewName == "" {
			// Pure renames and mode changes carry no ---/+++ lines.
			f.OrigName, f.NewName = namesFromHeader(f.DiffHeader)
		}
		change := FileChange{Path: f.NewName, Kind: "modified"}
		switch {
		case f.Mode == diffparser.NEW:
			change.Kind = "added"
			s.Added++
		case f.Mode == diffparser.DELETED:
			change.Kind = "deleted"
			change.Path = f.OrigName
			s.Deleted++
		case f.OrigName != "" && f.NewName != "" && f.OrigName != f.NewName:
			change.Kind = "renamed"
			s.Renamed++
		default:
			s.Modified++
		}
		s.Hunks += len(f.Hunks)
		s.Changes = append(s.Changes, change)
	}
	s.Files = len(s.Changes)
	return s
}

// namesFromHeader extracts both paths from "diff --git a/<old> b/<new>".
func namesFromHeader(header string) (orig, updated string) {
	rest, ok := strings.CutPrefix(header, "diff --git a/")
	if !ok {
		return "", ""
	}
	orig, updated, ok = strings.Cut(rest, " b/")
	if !ok {
		return "", ""
	}
	return orig, updated
}
