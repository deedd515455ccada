package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitFrontmatter(t *testing.T) {
	tests := []struct {
		name            string
		raw             string
		wantFrontmatter string
		wantContent     string
	}{
		{
			name:            "with frontmatter",
			raw:             "---\nname: user\n---\nWrite a message.",
			wantFrontmatter: "name: user",
			wantContent:     "Write a message.",
		},
		{
			name:        "without frontmatter",
			raw:         "Just content",
			wantContent: "Just content",
		},
		{
			name:        "unclosed frontmatter",
			raw:         "---\nname: user\nno closing",
			wantContent: "---\nname: user\nno closing",
		},
		{
			name:        "empty frontmatter",
			raw:         "---\n---\nBody",
			wantContent: "Body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, content := splitFrontmatter(tt.raw)
			if fm != tt.wantFrontmatter {
				t.Errorf("frontmatter = %q, want %q", fm, tt.wantFrontmatter)
			}
			if content != tt.wantContent {
				t.Errorf("content = %q, want %q", content, tt.wantContent)
			}
		})
	}
}

func TestParseTemplate_InvalidYAML(t *testing.T) {
	if _, err := parseTemplate("---\nname: [unclosed\n---\nbody"); err == nil {
		t.Fatal("expected error for invalid frontmatter")
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		tmpl  string
		input string
		want  string
	}{
		{
			name:  "plain",
			tmpl:  "Diff:\n{{DIFF}}\nEnd",
			input: "+added line",
			want:  "Diff:\n+added line\nEnd",
		},
		{
			name:  "quotes and backslashes",
			tmpl:  "<{{DIFF}}>",
			input: `say "hi" \n 'there' \\ $1 & \0`,
			want:  `<say "hi" \n 'there' \\ $1 & \0>`,
		},
		{
			name:  "multibyte",
			tmpl:  "[{{DIFF}}]",
			input: "변경 사항 ✓ 日本語",
			want:  "[변경 사항 ✓ 日本語]",
		},
		{
			name:  "placeholder inside input stays literal",
			tmpl:  "A {{DIFF}} B",
			input: "x {{DIFF}} y",
			want:  "A x {{DIFF}} y B",
		},
		{
			name:  "template without placeholder",
			tmpl:  "no slot here",
			input: "ignored",
			want:  "no slot here",
		},
		{
			name:  "empty input",
			tmpl:  "before {{DIFF}} after",
			input: "",
			want:  "before  after",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.tmpl, tt.input); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_PreservesInputExactly(t *testing.T) {
	input := "line1\r\n\ttabbed\x00nul\n" + strings.Repeat("é", 100)
	got := Render("{{DIFF}}", input)
	if got != input {
		t.Errorf("Render altered input: %q", got)
	}
}

func TestLoader_Builtins(t *testing.T) {
	l := &Loader{}

	sys, err := l.Load(SystemTemplate)
	if err != nil {
		t.Fatalf("Load(system) error = %v", err)
	}
	if sys.Source != "built-in" {
		t.Errorf("Source = %q, want built-in", sys.Source)
	}
	if sys.Content == "" {
		t.Error("system template content is empty")
	}

	user, err := l.Load(UserTemplate)
	if err != nil {
		t.Fatalf("Load(user) error = %v", err)
	}
	if strings.Count(user.Content, Placeholder) != 1 {
		t.Errorf("user template should contain exactly one %s, got %q", Placeholder, user.Content)
	}
}

func TestLoader_NotFound(t *testing.T) {
	l := &Loader{}
	_, err := l.Load("nope")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("error = %v, want ErrTemplateNotFound", err)
	}
}

func TestLoader_Precedence(t *testing.T) {
	project := t.TempDir()
	global := t.TempDir()

	writeTemplate(t, global, "user", "---\nname: user\ndescription: global\n---\nglobal {{DIFF}}")
	writeTemplate(t, project, "user", "---\nname: user\ndescription: project\n---\nproject {{DIFF}}")
	writeTemplate(t, global, "system", "---\ndescription: global system\n---\nglobal system")

	l := &Loader{ProjectDir: project, GlobalDir: global}

	user, err := l.Load(UserTemplate)
	if err != nil {
		t.Fatal(err)
	}
	if user.Source != "project" || user.Content != "project {{DIFF}}" {
		t.Errorf("user = %+v, want project override", user)
	}

	sys, err := l.Load(SystemTemplate)
	if err != nil {
		t.Fatal(err)
	}
	if sys.Source != "global" {
		t.Errorf("system source = %q, want global", sys.Source)
	}
}

func TestLoader_List(t *testing.T) {
	project := t.TempDir()
	writeTemplate(t, project, "user", "---\ndescription: mine\n---\n{{DIFF}}")
	writeTemplate(t, project, "extra", "---\ndescription: extra\n---\nhello")
	if err := os.WriteFile(filepath.Join(project, "notes.txt"), []byte("skip"), 0o600); err != nil {
		t.Fatal(err)
	}

	l := &Loader{ProjectDir: project}
	got := l.List()

	want := []TemplateInfo{
		{Name: "extra", Description: "extra", Source: "project"},
		{Name: "user", Description: "mine", Source: "project", Overrides: "built-in"},
		{Name: "system", Description: "System prompt for drafting a commit message from a diff bundle", Source: "built-in"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".md"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
