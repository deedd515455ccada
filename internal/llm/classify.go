package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ContextExceededType is the error type llama-server reports when the
// prompt does not fit the model's context window.
const ContextExceededType = "exceed_context_size_error"

// Kind is the verdict on one Outcome.
type Kind int

// Outcome kinds.
const (
	Fatal Kind = iota
	Retryable
	Success
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Retryable:
		return "retryable"
	default:
		return "fatal"
	}
}

// Classification is the result of inspecting an Outcome.
type Classification struct {
	Kind Kind

	// Content is the raw model output, set for Success.
	Content string

	// PromptTokens and ContextSize are set for Retryable.
	PromptTokens int
	ContextSize  int

	// Reason explains a Fatal verdict.
	Reason string
}

// Classify decides how the caller should treat an Outcome:
//   - no response or any non-200 status other than 400 is Fatal
//   - 400 carrying a context-size error with usable token counts is Retryable
//   - any other 400 is Fatal
//   - 200 is Success with choices[0].message.content, which may be empty
func Classify(o Outcome) Classification {
	switch {
	case o.Err != nil || o.Status == 0:
		reason := "no response"
		if o.Err != nil {
			reason = o.Err.Error()
		}
		return Classification{Kind: Fatal, Reason: reason}
	case o.Status == http.StatusOK:
		return classifySuccess(o.Body)
	case o.Status == http.StatusBadRequest:
		return classifyBadRequest(o.Body)
	default:
		return Classification{Kind: Fatal, Reason: "unexpected status"}
	}
}

func classifySuccess(body []byte) Classification {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Classification{Kind: Fatal, Reason: fmt.Sprintf("parsing response: %v", err)}
	}
	if len(resp.Choices) == 0 {
		return Classification{Kind: Fatal, Reason: "response has no choices"}
	}
	return Classification{Kind: Success, Content: resp.Choices[0].Message.Content}
}

func classifyBadRequest(body []byte) Classification {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Error == nil {
		return Classification{Kind: Fatal, Reason: "bad request"}
	}

	e := resp.Error
	if e.Type != ContextExceededType {
		return Classification{Kind: Fatal, Reason: "bad request: " + e.Type}
	}
	if e.PromptTokens <= 0 || e.ContextTokens <= 0 {
		return Classification{Kind: Fatal, Reason: "context size error without token counts"}
	}
	return Classification{
		Kind:         Retryable,
		PromptTokens: e.PromptTokens,
		ContextSize:  e.ContextTokens,
	}
}
