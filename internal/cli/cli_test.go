package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tapecalc/internal/calculator"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Execute(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestPressPrintsFinalState(t *testing.T) {
	out, _, err := run(t, "", "press", "1", "0", "0", "+", "1", "0", "/", "1", "0", "=")
	if err != nil {
		t.Fatalf("running press: %v", err)
	}

	want := "tape:    \ndisplay: 11\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestPressTracePrintsEveryKey(t *testing.T) {
	out, _, err := run(t, "", "press", "--trace", "1", "/", "0", "=")
	if err != nil {
		t.Fatalf("running press: %v", err)
	}

	want := strings.Join([]string{
		"tape:    ", "display: 1",
		"tape:    1 / ", "display: 0",
		"tape:    1 / ", "display: 0",
		"tape:    ", "display: " + calculator.DivisionByZeroMessage,
	}, "\n") + "\n"
	if out != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, out)
	}
}

func TestPressRejectsUnknownKey(t *testing.T) {
	_, _, err := run(t, "", "press", "1", "sqrt")
	if !errors.Is(err, calculator.ErrInvalidIntent) {
		t.Fatalf("expected ErrInvalidIntent, got %v", err)
	}
}

func TestRunReplaysScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.yaml")
	script := "name: operator swap\nkeys: [\"+\", \"-\"]\n"
	if err := os.WriteFile(path, []byte(script), 0o600); err != nil {
		t.Fatalf("writing script: %v", err)
	}

	out, _, err := run(t, "", "run", path)
	if err != nil {
		t.Fatalf("running script: %v", err)
	}

	want := "# operator swap\ntape:    0 - \ndisplay: 0\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestLoadScriptErrors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("name: nothing\n"), 0o600); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	if _, err := LoadScript(empty); err == nil {
		t.Fatal("expected error for script without keys")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("keys: [1, 2\n"), 0o600); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	if _, err := LoadScript(broken); err == nil {
		t.Fatal("expected error for malformed YAML")
	}

	if _, err := LoadScript(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReplKeepsStateAcrossLines(t *testing.T) {
	stdin := "1 2 +\n\n3 =\nfoo\nquit\n9\n"

	out, errOut, err := run(t, stdin, "repl")
	if err != nil {
		t.Fatalf("running repl: %v", err)
	}

	want := strings.Join([]string{
		"tape:    ", "display: 0",
		"tape:    12 + ", "display: 0",
		"tape:    ", "display: 15",
		"tape:    ", "display: 15",
	}, "\n") + "\n"
	if out != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, out)
	}
	if !strings.Contains(errOut, "unknown key") {
		t.Fatalf("expected unknown key error on stderr, got %q", errOut)
	}
}
