package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestPrinter_Success_Human(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	if err := printer.Success(map[string]any{"message": "commit created"}); err != nil {
		t.Fatalf("Success() error = %v", err)
	}
	if buf.String() != "commit created\n" {
		t.Errorf("output = %q, want %q", buf.String(), "commit created\n")
	}
}

func TestPrinter_Success_JSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	if err := printer.Success(map[string]any{"message": "ok", "attempts": 2}); err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if result["attempts"] != float64(2) {
		t.Errorf("attempts = %v, want 2", result["attempts"])
	}
}

func TestPrinter_Error_HumanGoesToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	printer := NewPrinter(&stdout, false, false).WithStderr(&stderr)

	printer.Error(NewSystemErrorWithCause("request failed", errors.New("connection refused")))

	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", stdout.String())
	}
	out := stderr.String()
	if !strings.Contains(out, "Error: request failed") {
		t.Errorf("stderr = %q, want error message", out)
	}
	if !strings.Contains(out, "connection refused") {
		t.Errorf("stderr = %q, want cause", out)
	}
}

func TestPrinter_Error_JSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(NewCapacityError("retries exhausted", nil))

	var parsed struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if parsed.Code != ExitCapacity || parsed.Error != "retries exhausted" {
		t.Errorf("got %+v", parsed)
	}
}

func TestPrinter_Error_PlainError(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(errors.New("plain"))

	if !bytes.Equal(bytes.TrimSpace(buf.Bytes()), ErrorJSON("plain", ExitUserError)) {
		t.Errorf("output = %s", buf.String())
	}
}

func TestPrinter_Warn(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Warn("retrying with %d chars", 4404)

	if !strings.Contains(buf.String(), "Warning: retrying with 4404 chars") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrinter_Stderr_SilentInJSON(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, true, false).Stderr("hint\n")

	if buf.Len() != 0 {
		t.Errorf("JSON printer should not write hints, got %q", buf.String())
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Table(
		[]string{"NAME", "SOURCE"},
		[][]string{{"system", "built-in"}, {"user", "project"}},
	)

	want := "NAME    SOURCE\nsystem  built-in\nuser    project\n"
	if buf.String() != want {
		t.Errorf("Table() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestPrinter_Box_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Box("Commit message", "feat: add x")

	if buf.String() != "Commit message\n\nfeat: add x\n" {
		t.Errorf("Box() = %q", buf.String())
	}
}

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		mode  string
		isTTY bool
		want  bool
	}{
		{"never", true, false},
		{"always", false, true},
		{"auto", true, true},
		{"auto", false, false},
		{"", true, true},
		{"bogus", false, false},
	}

	for _, tt := range tests {
		if got := ResolveColorMode(tt.mode, tt.isTTY); got != tt.want {
			t.Errorf("ResolveColorMode(%q, %v) = %v, want %v", tt.mode, tt.isTTY, got, tt.want)
		}
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("IsTTY(buffer) should return false")
	}
}
