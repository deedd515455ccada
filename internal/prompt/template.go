// Package prompt loads the system and user prompt templates and renders the
// diff bundle into them.
//
// Templates are resolved in order:
//  1. .scribe/templates/<name>.md under the repository root (project)
//  2. <config dir>/templates/<name>.md (global)
//  3. built-in templates embedded in the binary
package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/scribe/internal/config"
)

// Placeholder marks where the diff bundle goes in a user template.
const Placeholder = "{{DIFF}}"

// Built-in template names.
const (
	SystemTemplate = "system"
	UserTemplate   = "user"
)

// ErrTemplateNotFound is returned when no source provides a template.
var ErrTemplateNotFound = errors.New("template not found")

// Template represents a prompt template with metadata and content.
type Template struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     int    `yaml:"version,omitempty"`

	// Content is the template body after the frontmatter.
	Content string `yaml:"-"`

	// Source is "project", "global" or "built-in".
	Source string `yaml:"-"`
}

// TemplateInfo describes a template for listing.
type TemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Overrides   string `json:"overrides,omitempty"`
}

// Loader resolves templates from project, global and built-in sources.
// An empty directory disables that source.
type Loader struct {
	ProjectDir string
	GlobalDir  string
}

// NewLoader returns a Loader for the repository at repoRoot.
func NewLoader(repoRoot string) *Loader {
	l := &Loader{}
	if repoRoot != "" {
		l.ProjectDir = filepath.Join(repoRoot, ".scribe", "templates")
	}
	if dir := config.Dir(); dir != "" {
		l.GlobalDir = filepath.Join(dir, "templates")
	}
	return l
}

// Load finds a template by name.
func (l *Loader) Load(name string) (*Template, error) {
	if tmpl, err := loadFromPath(l.ProjectDir, name); err == nil {
		tmpl.Source = "project"
		return tmpl, nil
	}

	if tmpl, err := loadFromPath(l.GlobalDir, name); err == nil {
		tmpl.Source = "global"
		return tmpl, nil
	}

	if tmpl, err := loadBuiltin(name); err == nil {
		tmpl.Source = "built-in"
		return tmpl, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
}

// List returns all available templates. Built-ins shadowed by a project or
// global file are reported on the overriding entry.
func (l *Loader) List() []TemplateInfo {
	seen := make(map[string]int)
	var templates []TemplateInfo

	for _, src := range []struct{ name, dir string }{
		{"project", l.ProjectDir},
		{"global", l.GlobalDir},
	} {
		infos, err := listFromPath(src.dir, src.name)
		if err != nil {
			continue
		}
		for _, info := range infos {
			if _, exists := seen[info.Name]; !exists {
				seen[info.Name] = len(templates)
				templates = append(templates, info)
			}
		}
	}

	for _, info := range listBuiltins() {
		if idx, exists := seen[info.Name]; exists {
			templates[idx].Overrides = "built-in"
			continue
		}
		templates = append(templates, info)
	}
	return templates
}

// Render substitutes input for Placeholder in tmpl in a single pass.
// Input is inserted verbatim and never re-scanned, so placeholder text
// inside the diff stays literal. A template without the placeholder is
// returned unchanged.
func Render(tmpl, input string) string {
	return strings.ReplaceAll(tmpl, Placeholder, input)
}

func loadFromPath(dir, name string) (*Template, error) {
	if dir == "" {
		return nil, errors.New("no directory")
	}

	path := filepath.Join(dir, name+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	return parseTemplate(string(data))
}

func listFromPath(dir, source string) ([]TemplateInfo, error) {
	if dir == "" {
		return nil, errors.New("no directory")
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var templates []TemplateInfo
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		tmpl, err := parseTemplate(string(data))
		if err != nil {
			continue
		}
		templates = append(templates, TemplateInfo{
			Name:        strings.TrimSuffix(entry.Name(), ".md"),
			Description: tmpl.Description,
			Source:      source,
		})
	}
	return templates, nil
}

// parseTemplate parses raw content with optional YAML frontmatter.
func parseTemplate(raw string) (*Template, error) {
	frontmatter, content := splitFrontmatter(raw)

	var tmpl Template
	if frontmatter != "" {
		if err := yaml.Unmarshal([]byte(frontmatter), &tmpl); err != nil {
			return nil, fmt.Errorf("invalid frontmatter: %w", err)
		}
	}

	tmpl.Content = strings.TrimSpace(content)
	return &tmpl, nil
}

// splitFrontmatter separates frontmatter delimited by --- lines from content.
func splitFrontmatter(raw string) (frontmatter, content string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "---") {
		return "", raw
	}

	before, after, ok := strings.Cut(raw[3:], "\n---")
	if !ok {
		return "", raw
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}
