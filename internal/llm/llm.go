// Package llm talks to an OpenAI-compatible chat completion server such as
// llama.cpp's llama-server.
//
// Send performs exactly one request and reports what came back. Deciding
// whether an outcome is worth retrying is Classify's job, and acting on
// that decision belongs to the caller.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTemperature is the sampling temperature sent with every request.
const DefaultTemperature = 0.2

const completionsPath = "/v1/chat/completions"

// HTTPDoer defines the HTTP operations required by Client.
// This allows injection of test doubles for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Options configures a Client.
type Options struct {
	BaseURL     string
	Model       string // empty lets the server use its loaded model
	Temperature float64
	Timeout     time.Duration // zero means no client-side timeout

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient HTTPDoer
}

// Client sends chat completion requests to a single endpoint.
type Client struct {
	baseURL     string
	model       string
	temperature float64
	httpClient  HTTPDoer
}

// New creates a Client from opts.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:     opts.BaseURL,
		model:       opts.Model,
		temperature: opts.Temperature,
		httpClient:  httpClient,
	}
}

// BaseURL returns the server root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// PromptPair is the system and user message of one request.
type PromptPair struct {
	System string
	User   string
}

// Outcome is the raw result of one request.
type Outcome struct {
	// Status is the HTTP status code, or 0 when no response arrived.
	Status int
	Body   []byte
	// Err is set when the request never produced a response.
	Err error
}

// StatusText renders the status for diagnostics, "000" when absent.
func (o Outcome) StatusText() string {
	return FormatStatus(o.Status)
}

// FormatStatus renders an HTTP status as three digits, "000" for none.
func FormatStatus(status int) string {
	return fmt.Sprintf("%03d", status)
}

// Send POSTs one chat completion request. It never retries and never
// returns a Go error: transport failures are reported through Outcome.Err
// with Status 0.
func (c *Client) Send(ctx context.Context, prompts PromptPair) Outcome {
	payload, err := json.Marshal(c.buildRequest(prompts))
	if err != nil {
		return Outcome{Err: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return Outcome{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Outcome{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{Status: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}
	return Outcome{Status: resp.StatusCode, Body: body}
}

func (c *Client) buildRequest(prompts PromptPair) chatRequest {
	return chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []chatMessage{
			{Role: "system", Content: EnsureUTF8(prompts.System)},
			{Role: "user", Content: EnsureUTF8(prompts.User)},
		},
	}
}
