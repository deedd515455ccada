package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/gorewood/scribe/internal/output"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  []string
	}{
		{name: "empty", in: "", limit: 10, want: nil},
		{name: "fits", in: "hello", limit: 10, want: []string{"hello"}},
		{name: "newline boundary", in: "aaaa\nbbbb\ncccc", limit: 10, want: []string{"aaaa\nbbbb", "cccc"}},
		{name: "hard split", in: "abcdefghij", limit: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "runes", in: "가나다라마바", limit: 4, want: []string{"가나다라", "마바"}},
		{name: "blank lines collapsed at cut", in: "aaa\n\n\nbbb", limit: 4, want: []string{"aaa", "bbb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Split(tt.in, tt.limit)); diff != "" {
				t.Errorf("Split() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplit_RespectsLimit(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 300; i++ {
		sb.WriteString(strings.Repeat("✓", i%37))
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat("x", 4500))

	for _, chunk := range Split(sb.String(), MaxMessageChars) {
		if n := utf8.RuneCountInString(chunk); n > MaxMessageChars {
			t.Errorf("chunk has %d chars, limit %d", n, MaxMessageChars)
		}
		if !utf8.ValidString(chunk) {
			t.Error("chunk is not valid UTF-8")
		}
	}
}

func TestWebhook_Send(t *testing.T) {
	var (
		mu       sync.Mutex
		received []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var p payload
		if err := json.Unmarshal(body, &p); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		mu.Lock()
		received = append(received, p.Content)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	msg := strings.Repeat("line of text\n", 300)
	n, err := NewWebhook(srv.URL, nil).Send(context.Background(), msg)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if n != len(received) || n < 2 {
		t.Fatalf("sent %d, server received %d", n, len(received))
	}
	if got := strings.Join(received, "\n"); got != strings.TrimSpace(msg) {
		t.Error("chunks do not reassemble to the original message")
	}
}

func TestWebhook_SendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Invalid Webhook Token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	n, err := NewWebhook(srv.URL, nil).Send(context.Background(), "hi")
	if n != 0 {
		t.Errorf("sent = %d, want 0", n)
	}

	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != output.ExitSystemError {
		t.Fatalf("error = %v, want system ExitError", err)
	}
	if !strings.Contains(err.Error(), "Invalid Webhook Token") || !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestWebhook_Preconditions(t *testing.T) {
	if _, err := NewWebhook("", nil).Send(context.Background(), "hi"); output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("missing URL: exit code = %d", output.GetExitCode(err))
	}
	if _, err := NewWebhook("http://unused", nil).Send(context.Background(), "  \n "); output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("empty content: exit code = %d", output.GetExitCode(err))
	}
}
