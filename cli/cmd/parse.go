package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ardnew/flowc/flow"
	"github.com/ardnew/flowc/log"
)

// Parse reads a FlowDSL source file (or stdin) and prints, in order: the
// AST dump, a "get workflow..." banner, and the per-pure-definition name
// table of pipes and workers built from it. Diagnostics go to stderr.
type Parse struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin" name:"source"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var input io.Reader

	switch {
	case p.Source != "-":
		file, err := os.Open(p.Source)
		if err != nil {
			return err
		}

		defer file.Close()

		input = file
	case sourceFilesFrom(ctx) != nil:
		// Files named by the top-level --source flag, concatenated in order.
		input = sourceFilesFrom(ctx)
	default:
		input = os.Stdin
	}

	result, err := flow.Compile(ctx, p.Source, input, log.Default())
	if err != nil {
		return err
	}

	flow.Dump(os.Stdout, result.Program)

	fmt.Println("get workflow...")

	for _, dw := range result.Workflow.Definitions {
		flow.DumpNameTable(os.Stdout, dw)
	}

	for _, rec := range result.Program.Log.Records() {
		fmt.Fprintln(os.Stderr, flow.FormatRecord(result.Program.Source, p.Source, rec))
	}

	return nil
}
