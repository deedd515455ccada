package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	input := `# local llama-server
SCRIBE_LLM_URL=http://localhost:18080
export SCRIBE_MODEL="qwen2.5-coder"
SCRIBE_MAX_CHARS='8000'

not a pair
=novalue
bad key=1
SCRIBE_DISCORD_WEBHOOK_URL=https://discord.com/api/webhooks/1/abc=def
`
	got, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := map[string]string{
		"SCRIBE_LLM_URL":             "http://localhost:18080",
		"SCRIBE_MODEL":               "qwen2.5-coder",
		"SCRIBE_MAX_CHARS":           "8000",
		"SCRIBE_DISCORD_WEBHOOK_URL": "https://discord.com/api/webhooks/1/abc=def",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFileIsSkipped(t *testing.T) {
	n, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Load() set %d vars, want 0", n)
	}
}

func TestLoad_PriorityAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	shared := filepath.Join(dir, ".env")
	writeFile(t, local, "TEST_SCRIBE_A=local\n")
	writeFile(t, shared, "TEST_SCRIBE_A=shared\nTEST_SCRIBE_B=shared\nTEST_SCRIBE_C=shared\n")

	t.Setenv("TEST_SCRIBE_A", "")
	t.Setenv("TEST_SCRIBE_B", "")
	t.Setenv("TEST_SCRIBE_C", "from-env")

	n, err := Load(local, shared)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Load() set %d vars, want 2", n)
	}

	for key, want := range map[string]string{
		"TEST_SCRIBE_A": "local",
		"TEST_SCRIBE_B": "shared",
		"TEST_SCRIBE_C": "from-env",
	} {
		if got := os.Getenv(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
