// Package notify posts text to a Discord channel through an incoming webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gorewood/scribe/internal/output"
)

// MaxMessageChars is Discord's limit on a single message's content.
const MaxMessageChars = 2000

// HTTPDoer defines the HTTP operations required by Webhook.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Webhook sends messages to one Discord webhook URL.
type Webhook struct {
	url        string
	httpClient HTTPDoer
}

// NewWebhook creates a Webhook. A nil client gets a 30 second default.
func NewWebhook(url string, client HTTPDoer) *Webhook {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Webhook{url: url, httpClient: client}
}

type payload struct {
	Content string `json:"content"`
}

// Send posts content as one or more messages, in order. It returns the
// number of messages sent before any failure.
func (w *Webhook) Send(ctx context.Context, content string) (int, error) {
	if w.url == "" {
		return 0, output.NewUserError("SCRIBE_DISCORD_WEBHOOK_URL is not set")
	}

	chunks := Split(content, MaxMessageChars)
	if len(chunks) == 0 {
		return 0, output.NewUserError("nothing to send")
	}

	for i, chunk := range chunks {
		if err := w.post(ctx, chunk); err != nil {
			return i, err
		}
	}
	return len(chunks), nil
}

func (w *Webhook) post(ctx context.Context, chunk string) error {
	body, err := json.Marshal(payload{Content: chunk})
	if err != nil {
		return output.NewSystemErrorWithCause("failed to marshal webhook payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return output.NewSystemErrorWithCause("failed to create webhook request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return output.NewSystemErrorWithCause("webhook request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
	return output.NewSystemError(fmt.Sprintf("webhook error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
}

// Split breaks s into chunks of at most limit characters. It cuts after the
// last newline that fits and falls back to a hard cut at a rune boundary
// for lines longer than limit. Blank chunks are dropped.
func Split(s string, limit int) []string {
	s = strings.TrimSpace(s)
	if s == "" || limit <= 0 {
		return nil
	}

	var chunks []string
	for s != "" {
		if utf8.RuneCountInString(s) <= limit {
			chunks = append(chunks, s)
			break
		}

		hard := byteOffset(s, limit)
		cut := strings.LastIndexByte(s[:hard], '\n')
		if cut <= 0 {
			cut = hard
		}

		if chunk := strings.TrimRight(s[:cut], "\n"); strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
		s = strings.TrimLeft(s[cut:], "\n")
	}
	return chunks
}

// byteOffset returns the byte index just past the first n runes of s.
func byteOffset(s string, n int) int {
	off := 0
	for i := 0; i < n && off < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}
