package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HealthTimeout bounds a single health probe.
const HealthTimeout = 5 * time.Second

// ErrNotReady is returned when the server answers but cannot serve yet.
var ErrNotReady = errors.New("llm server not ready")

// Health probes GET {baseURL}/health. The server is ready when it answers
// 200 and the body does not report a model still loading.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("creating health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("probing %s: %w", c.baseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("reading health response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %s", ErrNotReady, FormatStatus(resp.StatusCode))
	}
	if strings.Contains(string(body), "Loading model") {
		return fmt.Errorf("%w: model is still loading", ErrNotReady)
	}
	return nil
}
