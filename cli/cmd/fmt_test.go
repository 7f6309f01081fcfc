package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
)

func withTempSource(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "flowc-fmt-test-*.flow")
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.WriteString(content); err != nil {
		t.Fatal(err)
	}

	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	return tmpfile.Name()
}

// TestASTRun tests that the ast subcommand parses well-formed input without
// error. Malformed FlowDSL is never a Go error here — it is recorded as a
// diagnostic in the program log, not surfaced by Run.
func TestASTRun(t *testing.T) {
	source := withTempSource(t, "a > worker >> b |: main")

	ast := &AST{Source: source}
	if err := ast.Run(context.Background()); err != nil {
		t.Errorf("AST.Run() unexpected error = %v", err)
	}
}

func TestASTRunMissingFile(t *testing.T) {
	ast := &AST{Source: "/nonexistent/path.flow"}
	if err := ast.Run(context.Background()); err == nil {
		t.Error("AST.Run() expected error for missing file, got nil")
	}
}

func TestASTRunStdin(t *testing.T) {
	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	os.Stdin = r

	go func() {
		defer w.Close()
		io.WriteString(w, "a > worker >> b |: main")
	}()

	ast := &AST{Source: "-"}
	if err := ast.Run(context.Background()); err != nil {
		t.Errorf("AST.Run() unexpected error = %v", err)
	}
}

func TestASTRunOutput(t *testing.T) {
	source := withTempSource(t, "a > worker >> b |: main")

	oldStdout := os.Stdout

	r, w, _ := os.Pipe()
	os.Stdout = w

	ast := &AST{Source: source}
	err := ast.Run(context.Background())

	w.Close()
	os.Stdout = oldStdout

	if err != nil {
		t.Fatalf("AST.Run() unexpected error = %v", err)
	}

	var buf bytes.Buffer
	io.Copy(&buf, r)
	output := buf.String()

	for _, expected := range []string{"definition main", "worker worker"} {
		if !strings.Contains(output, expected) {
			t.Errorf("AST.Run() output = %q, want to contain %q", output, expected)
		}
	}
}

func TestJSONRun(t *testing.T) {
	source := withTempSource(t, "a > worker >> b |: main")

	j := &JSON{Indent: 2, Source: source}
	if err := j.Run(context.Background()); err != nil {
		t.Errorf("JSON.Run() unexpected error = %v", err)
	}
}

func TestYAMLRun(t *testing.T) {
	source := withTempSource(t, "a > worker >> b |: main")

	y := &YAML{Indent: 2, Source: source}
	if err := y.Run(context.Background()); err != nil {
		t.Errorf("YAML.Run() unexpected error = %v", err)
	}
}
