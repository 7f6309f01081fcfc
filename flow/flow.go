package flow

import (
	"context"
	"io"

	fclog "github.com/ardnew/flowc/log"
)

// Result bundles the parsed AST, its diagnostic log, and the workflow
// graph built from its pure definitions: the complete output of a single
// front-end run.
type Result struct {
	Program  *Program
	Workflow *Workflow
}

// Compile reads all of r, parses it as FlowDSL source named by file, and
// builds the workflow graph from its pure definitions. It never returns a
// non-nil error for malformed FlowDSL source — syntax and workflow errors
// are recorded in Result.Program.Log, not surfaced as a Go error. A non-nil
// error here means the source could not be read at all.
func Compile(ctx context.Context, file string, r io.Reader, logger fclog.Logger) (*Result, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadSource.Wrap(err)
	}

	src := NewSource(file, buf)
	log := NewLog(logger, src)
	prog := NewParser(ctx, src, log).ParseProgram()
	wf := BuildWorkflow(ctx, prog)

	return &Result{Program: prog, Workflow: wf}, nil
}

// ParseBytes parses buf as FlowDSL source named by file without building a
// workflow graph. Useful for callers that only need the AST (e.g. an AST
// dump or formatter).
func ParseBytes(ctx context.Context, file string, buf []byte, logger fclog.Logger) *Program {
	src := NewSource(file, buf)
	log := NewLog(logger, src)

	return NewParser(ctx, src, log).ParseProgram()
}
