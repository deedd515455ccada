package draft

import "testing"

func TestStripChatter(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "clean output unchanged",
			in:   "feat(api): add pagination\n\nAdds cursor support.",
			want: "feat(api): add pagination\n\nAdds cursor support.",
		},
		{
			name: "strips here is preamble",
			in:   "Here is the commit message:\n\nfix: handle empty diff",
			want: "fix: handle empty diff",
		},
		{
			name: "strips several preamble lines",
			in:   "Sure!\nBased on the diff, this adds retries.\n\nfeat: retry on overflow",
			want: "feat: retry on overflow",
		},
		{
			name: "strips let me know signoff",
			in:   "docs: update readme\n\nLet me know if you want a longer body.",
			want: "docs: update readme",
		},
		{
			name: "case insensitive",
			in:   "COMMIT MESSAGE:\nchore: bump deps",
			want: "chore: bump deps",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "body lines matching patterns survive",
			in:   "refactor: split loader\n\nHere is why: the old one leaked.\nDone.",
			want: "refactor: split loader\n\nHere is why: the old one leaked.\nDone.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripChatter(tt.in); got != tt.want {
				t.Errorf("StripChatter():\n  got:  %q\n  want: %q", got, tt.want)
			}
		})
	}
}

func TestMatchesAnyPrefix(t *testing.T) {
	tests := []struct {
		line     string
		patterns []string
		want     bool
	}{
		{"Here is the output", preamblePatterns, true},
		{"here's what changed", preamblePatterns, true},
		{"feat: add x", preamblePatterns, false},
		{"Let me know if", signoffPatterns, true},
		{"- Let me fix this", signoffPatterns, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := matchesAnyPrefix(tt.line, tt.patterns); got != tt.want {
				t.Errorf("matchesAnyPrefix(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
