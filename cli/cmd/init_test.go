package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string)
		wantErr bool
	}{
		{
			name:    "create_new_config",
			force:   false,
			setup:   nil,
			wantErr: false,
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: false,
		},
		{
			name:  "fail_without_force",
			force: false,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir, err := os.MkdirTemp("", "flowc-init-test-*")
			if err != nil {
				t.Fatal(err)
			}
			defer os.RemoveAll(tmpDir)

			confPath := filepath.Join(tmpDir, "config.yaml")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			var cli struct{}

			parser, err := kong.New(&cli, kong.Vars{
				ConfigIdentifier: confPath,
			})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), kctx)

			initCmd := &Init{Force: tt.force}
			err = initCmd.Run(ctx)

			if (err != nil) != tt.wantErr {
				t.Errorf("Init.Run() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if _, err := os.Stat(confPath); os.IsNotExist(err) {
					t.Error("Init.Run() did not create config file")
				}

				content, err := os.ReadFile(confPath)
				if err != nil {
					t.Fatal(err)
				}

				var doc map[string]any
				if err := yaml.Unmarshal(content, &doc); err != nil {
					t.Errorf("generated config is not valid YAML: %v", err)
				}
			}
		})
	}
}

// TestInitBuildDocument tests that buildDocument reflects current flag values.
func TestInitBuildDocument(t *testing.T) {
	t.Parallel()

	var cli struct {
		Verbose bool   `name:"verbose" help:"Enable verbose output"`
		Output  string `name:"output"  help:"Output file"`
		Count   int    `name:"count"   help:"Number of items"`
	}

	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse([]string{"--verbose", "--output=test.txt", "--count=5"})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), kctx)

	initCmd := &Init{}
	doc := initCmd.buildDocument(ctx)

	if doc == nil {
		t.Fatal("buildDocument() returned nil")
	}

	if v, ok := doc["output"]; !ok || v != "test.txt" {
		t.Errorf("expected output=test.txt, got %v (ok=%v)", v, ok)
	}

	if v, ok := doc["count"]; !ok || v != 5 {
		t.Errorf("expected count=5, got %v (ok=%v)", v, ok)
	}
}

// TestInitWithInvalidPath tests init with an invalid file path.
func TestInitWithInvalidPath(t *testing.T) {
	t.Parallel()

	invalidPath := "/nonexistent/directory/config.yaml"

	var cli struct{}

	parser, err := kong.New(&cli, kong.Vars{
		ConfigIdentifier: invalidPath,
	})
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), kctx)

	initCmd := &Init{Force: false}
	err = initCmd.Run(ctx)

	if err == nil {
		t.Error("Init.Run() expected error for invalid path, got nil")
	}
}

// TestInitFormatOutput tests that init generates a parseable YAML document.
func TestInitFormatOutput(t *testing.T) {
	t.Parallel()

	tmpDir, err := os.MkdirTemp("", "flowc-init-format-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	confPath := filepath.Join(tmpDir, "config.yaml")

	var cli struct {
		Test string `name:"test" help:"Test flag"`
	}

	parser, err := kong.New(&cli, kong.Vars{
		ConfigIdentifier: confPath,
	})
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse([]string{"--test=value"})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), kctx)

	initCmd := &Init{Force: false}

	err = initCmd.Run(ctx)
	if err != nil {
		t.Fatalf("Init.Run() unexpected error = %v", err)
	}

	content, err := os.ReadFile(confPath)
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		t.Fatalf("generated config is not valid YAML: %v", err)
	}

	if doc["test"] != "value" {
		t.Errorf("expected test=value, got %v", doc["test"])
	}
}
