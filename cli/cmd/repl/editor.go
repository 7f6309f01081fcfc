package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/flowc/flow"
	"github.com/ardnew/flowc/log"
)

const defaultEditor = "vi"

// editSourceCommand implements [tea.ExecCommand] for the full
// edit-parse-retry loop. It writes the current source buffer to a temp
// file, opens the user's editor, and re-parses the result. On an
// error-level diagnostic the user is prompted to re-edit; declining exits
// the program.
type editSourceCommand struct {
	source  string
	ctxFunc func() context.Context
	result  *flow.Result
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editSourceCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editSourceCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editSourceCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. It opens the editor on the
// current source buffer, parses the result, and prompts on error-level
// diagnostics. If the user declines to re-edit, it returns
// [ErrEditDeclined].
func (c *editSourceCommand) Run() error {
	ctx := c.ctxFunc()
	content := c.source

	f, err := os.CreateTemp(os.TempDir(), "flowc-repl-*.flow")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	for {
		// Write current content to temp file.
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		// Launch editor and get a reader over the result.
		r, err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath)
		if err != nil {
			return err
		}

		// Check for empty file (user cleared content).
		br := bufio.NewReader(r)
		if _, err := br.Peek(1); err != nil {
			// EOF or read error; treat as cancelled edit.
			return nil
		}

		// Read all content from the buffered reader and parse via the lexer.
		data, err := io.ReadAll(br)
		if err != nil {
			return err
		}

		result, rerr := flow.Compile(ctx, "repl", bytes.NewReader(data), c.logger)
		if rerr != nil {
			return rerr
		}

		c.logger.TraceContext(
			ctx,
			"editor parse attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("has_errors", result.Program.Log.HasErrors()),
		)

		if !result.Program.Log.HasErrors() {
			c.source = string(data)
			c.result = result

			return nil
		}

		fmt.Fprintln(c.stderr)

		for _, rec := range result.Program.Log.Records() {
			fmt.Fprintln(c.stderr, flow.FormatRecord(result.Program.Source, "repl", rec))
		}

		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		// Re-read the (failed) content for the next editor iteration.
		data, readErr := os.ReadFile(tmpPath)
		if readErr != nil {
			return readErr
		}

		content = string(data)
	}
}

// runEditor launches the user's editor on the given file path and returns a
// reader over the edited file content.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) (io.Reader, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return f, nil
}
