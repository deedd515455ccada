package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/gorewood/scribe/internal/output"
)

// isolateEnv keeps tests away from the developer's config and env files.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SCRIBE_CONFIG_HOME", t.TempDir())
	for _, key := range []string{
		"SCRIBE_LLM_URL", "SCRIBE_MODEL", "SCRIBE_MAX_CHARS", "SCRIBE_MAX_RETRIES",
		"SCRIBE_DISCORD_WEBHOOK_URL", "SCRIBE_LOG_LEVEL", "SCRIBE_LOG_FORMAT", "SCRIBE_TIMEOUT",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

// executeCmd runs the root command with args and returns stdout and stderr.
func executeCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Version(t *testing.T) {
	isolateEnv(t)
	version = "1.2.3"

	stdout, _, err := executeCmd(t, "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "1.2.3") {
		t.Errorf("--version output should contain version: %q", stdout)
	}
	if !strings.Contains(stdout, "scribe") {
		t.Errorf("--version output should contain 'scribe': %q", stdout)
	}
}

func TestRootCommand_Help(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := executeCmd(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, expected := range []string{"scribe", "Usage:", "--json", "--color", "commit", "bundle", "serve"} {
		if !strings.Contains(stdout, expected) {
			t.Errorf("--help output should contain %q", expected)
		}
	}
}

func TestRootCommand_JSONFlag_NoSubcommand(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := executeCmd(t, "--json")
	if err == nil {
		t.Fatal("expected error when running with --json but no subcommand")
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("output should be valid JSON: %v\nOutput: %s", err, stdout)
	}
	if _, ok := result["error"]; !ok {
		t.Errorf("JSON output should contain 'error' field: %s", stdout)
	}
	if _, ok := result["code"]; !ok {
		t.Errorf("JSON output should contain 'code' field: %s", stdout)
	}
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SCRIBE_MAX_CHARS", "-5")

	_, stderr, err := executeCmd(t, "templates")
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
	if !strings.Contains(stderr, "invalid configuration") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"json", "color", "verbose"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s should be a persistent flag", name)
		}
	}
}

func TestBuildVersion(t *testing.T) {
	defer func(v, c, d string) { version, commit, date = v, c, d }(version, commit, date)

	version, commit, date = "1.0.0", "none", "unknown"
	if got := buildVersion(); got != "1.0.0" {
		t.Errorf("buildVersion() = %q", got)
	}

	version, commit, date = "1.0.0", "abcdef1234567", "2026-01-02"
	if got := buildVersion(); got != "1.0.0 (abcdef1, 2026-01-02)" {
		t.Errorf("buildVersion() = %q", got)
	}
}
