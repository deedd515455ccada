// Package generate runs the bounded retry loop that turns a diff bundle into
// raw model output, shrinking the bundle whenever the server reports that
// the prompt overflowed its context window.
package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"

	"github.com/gorewood/scribe/internal/llm"
	"github.com/gorewood/scribe/internal/prompt"
)

// ErrRetriesExhausted is returned when every attempt overflowed the
// server's context window.
var ErrRetriesExhausted = errors.New("retries exhausted")

// maxErrorBody caps how much of an upstream body is echoed in errors.
const maxErrorBody = 500

// RequestError is a non-retryable failure talking to the server.
type RequestError struct {
	// Status is the HTTP status, 0 when no response arrived.
	Status  int
	Body    string
	Reason  string
	Attempt int
	Err     error
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("llm request failed (status %s)", llm.FormatStatus(e.Status))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if body := e.Body; body != "" {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		msg += ": " + body
	}
	return msg
}

func (e *RequestError) Unwrap() error { return e.Err }

// Sender performs a single chat completion request.
type Sender interface {
	Send(ctx context.Context, prompts llm.PromptPair) llm.Outcome
}

// Options bounds the retry loop.
type Options struct {
	MaxChars   int
	MaxRetries int
	Shrink     Shrink
}

// DefaultOptions returns a 12000 character budget and three attempts.
func DefaultOptions() Options {
	return Options{
		MaxChars:   12000,
		MaxRetries: 3,
		Shrink:     DefaultShrink(),
	}
}

// State is the mutable part of one Generate call.
type State struct {
	CurrentMax int
	Attempt    int
}

// Result is a successful generation.
type Result struct {
	// Raw is the unsanitized model output. It may be empty.
	Raw           string
	Attempts      int
	FinalMaxChars int
}

// Generator drives requests against a Sender.
type Generator struct {
	sender Sender
	opts   Options
}

// New creates a Generator.
func New(sender Sender, opts Options) *Generator {
	return &Generator{sender: sender, opts: opts}
}

// Generate renders bundle into userTemplate and sends it with systemPrompt,
// retrying with a smaller bundle after each context overflow. At most
// MaxRetries requests are made, one at a time.
func (g *Generator) Generate(ctx context.Context, systemPrompt, userTemplate, bundle string) (*Result, error) {
	log := clog.FromContext(ctx)
	state := State{CurrentMax: g.opts.MaxChars, Attempt: 1}

	for {
		prompts := llm.PromptPair{
			System: systemPrompt,
			User:   prompt.Render(userTemplate, Truncate(bundle, state.CurrentMax)),
		}

		log.With("attempt", state.Attempt).
			With("max_chars", state.CurrentMax).
			Debug("Sending completion request")

		outcome := g.sender.Send(ctx, prompts)
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation canceled: %w", err)
		}

		c := llm.Classify(outcome)
		switch c.Kind {
		case llm.Success:
			return &Result{
				Raw:           c.Content,
				Attempts:      state.Attempt,
				FinalMaxChars: state.CurrentMax,
			}, nil

		case llm.Retryable:
			if state.Attempt >= g.opts.MaxRetries {
				return nil, fmt.Errorf("%w: context still exceeded after %d attempts (last limit %d chars, %d prompt tokens > %d context)",
					ErrRetriesExhausted, state.Attempt, state.CurrentMax, c.PromptTokens, c.ContextSize)
			}

			next := g.opts.Shrink.NextMax(state.CurrentMax, c.PromptTokens, c.ContextSize)
			log.With("attempt", state.Attempt).
				With("prompt_tokens", c.PromptTokens).
				With("context_size", c.ContextSize).
				With("max_chars", state.CurrentMax).
				With("next_max_chars", next).
				Warn("Context size exceeded, retrying with smaller diff")

			state.CurrentMax = next
			state.Attempt++

		default:
			return nil, &RequestError{
				Status:  outcome.Status,
				Body:    string(outcome.Body),
				Reason:  c.Reason,
				Attempt: state.Attempt,
				Err:     outcome.Err,
			}
		}
	}
}
