package cmd

import (
	"context"
	"io"

	"github.com/ardnew/flowc/cli/cmd/repl"
	"github.com/ardnew/flowc/log"
)

// Repl launches an interactive session that incrementally builds and
// re-parses a FlowDSL source buffer, optionally seeded from one or more
// source files.
type Repl struct {
	Source []string `arg:"" help:"Source input file(s) to seed the buffer, or '-' for stdin" name:"source" optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)

	var cache string
	if ktx != nil {
		cache, _ = ktx.Model.Vars()[CacheIdentifier]
	}

	var seed io.Reader
	if len(r.Source) > 0 {
		seed = buildSourceFiles(r.Source)
	}

	return repl.Run(ctx, seed, cache, log.Default())
}
