package draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorewood/scribe/internal/bundle"
	"github.com/gorewood/scribe/internal/generate"
	"github.com/gorewood/scribe/internal/output"
	"github.com/gorewood/scribe/internal/prompt"
)

// ErrEmptyMessage is returned when the model's reply sanitizes to nothing.
var ErrEmptyMessage = errors.New("model returned an empty commit message")

// TemplateLoader resolves prompt templates by name.
type TemplateLoader interface {
	Load(name string) (*prompt.Template, error)
}

// Drafter produces a commit message for the staged changes.
type Drafter struct {
	Source       bundle.Source
	Templates    TemplateLoader
	Generator    *generate.Generator
	StripChatter bool
}

// Draft is a generated commit message and how it was obtained.
type Draft struct {
	Message       string         `json:"message"`
	Raw           string         `json:"raw"`
	Attempts      int            `json:"attempts"`
	FinalMaxChars int            `json:"final_max_chars"`
	Bundle        *bundle.Bundle `json:"-"`
}

// Run collects the diff bundle, generates a reply and sanitizes it.
// Errors from the generator are returned unwrapped so callers can match
// *generate.RequestError and generate.ErrRetriesExhausted.
func (d *Drafter) Run(ctx context.Context) (*Draft, error) {
	system, err := d.Templates.Load(prompt.SystemTemplate)
	if err != nil {
		return nil, output.NewUserErrorWithCause("failed to load system prompt", err)
	}
	user, err := d.Templates.Load(prompt.UserTemplate)
	if err != nil {
		return nil, output.NewUserErrorWithCause("failed to load user prompt", err)
	}

	b, err := bundle.Collect(ctx, d.Source)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to collect diff bundle", err)
	}

	res, err := d.Generator.Generate(ctx, system.Content, user.Content, b.Render())
	if err != nil {
		return nil, err
	}

	msg := res.Raw
	if d.StripChatter {
		msg = StripChatter(msg)
	}
	msg = Sanitize(msg)

	out := &Draft{
		Message:       msg,
		Raw:           res.Raw,
		Attempts:      res.Attempts,
		FinalMaxChars: res.FinalMaxChars,
		Bundle:        b,
	}
	if msg == "" {
		return out, fmt.Errorf("%w after %d attempt(s) at %d chars", ErrEmptyMessage, res.Attempts, res.FinalMaxChars)
	}
	return out, nil
}
