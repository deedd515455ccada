package main

import (
	"context"
	"errors"

	"github.com/gorewood/scribe/internal/draft"
	"github.com/gorewood/scribe/internal/generate"
	"github.com/gorewood/scribe/internal/output"
)

// toExitError maps pipeline errors onto CLI exit codes.
func toExitError(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	var reqErr *generate.RequestError
	switch {
	case errors.Is(err, generate.ErrRetriesExhausted):
		return output.NewCapacityError(
			"the diff still exceeds the model's context window after all retries; "+
				"stage fewer changes, lower --max-chars, or raise --max-retries", err)
	case errors.Is(err, draft.ErrEmptyMessage):
		return output.NewCapacityError(
			"the model returned an empty message; the server context size is "+
				"probably too small for the prompt (raise llama-server -c)", err)
	case errors.Is(err, context.Canceled):
		return output.NewSystemErrorWithCause("interrupted", err)
	case errors.As(err, &reqErr):
		return output.NewSystemErrorWithCause(reqErr.Error(), err)
	default:
		return output.NewSystemErrorWithCause("commit message generation failed", err)
	}
}
