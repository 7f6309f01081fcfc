package cmd

import (
	"context"
	"os"
	"testing"
)

func TestParseRunValidSource(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "flowc-parse-test-*.flow")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.WriteString("a > worker >> b |: main"); err != nil {
		t.Fatal(err)
	}

	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	p := &Parse{Source: tmpfile.Name()}
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Parse.Run() unexpected error = %v", err)
	}
}

func TestParseRunMissingFile(t *testing.T) {
	p := &Parse{Source: "/nonexistent/path/to/source.flow"}
	if err := p.Run(context.Background()); err == nil {
		t.Error("Parse.Run() expected error for missing file, got nil")
	}
}
