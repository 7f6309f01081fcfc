package flow

import (
	"context"
	"fmt"
)

// Pipe is a named (or anonymous) channel carrying data between workers.
// Named pipes are scoped to the [Definition] that declares them.
type Pipe struct {
	Name string
	Span Span
}

// WorkerInstance is one materialised invocation of an AST [Worker] within a
// built [Workflow], with its resolved input and output [Pipe] connections.
type WorkerInstance struct {
	Name    string
	Span    Span
	AST     *Worker
	Inputs  []*Pipe
	Outputs []*Pipe
}

// Workflow is the bipartite worker/pipe graph derived from a [Program]'s
// pure definitions. It owns every [Pipe] and [WorkerInstance] it
// contains; worker instances hold non-owning references to their pipes and
// to the AST worker they were built from.
type Workflow struct {
	Pipes       []*Pipe
	Workers     []*WorkerInstance
	Definitions []*DefinitionWorkflow
}

// DefinitionWorkflow is the slice of a [Workflow] contributed by a single
// pure [Definition] — its own name table's pipes and the worker instances
// built from its pipelines. Pipes and workers still live in the owning
// Workflow's Pipes/Workers slices; this is a non-owning view used by the
// CLI's per-definition name-table dump.
type DefinitionWorkflow struct {
	Definition *Definition
	Pipes      []*Pipe
	Workers    []*WorkerInstance
}

// nameTable is the definition-local mapping from pipe name to [Pipe] object,
// rebuilt fresh for every pure definition (pipe names do not cross
// definition boundaries). When several outputs share a name, the table maps
// the name to its first occurrence's pipe.
type nameTable struct {
	pipes map[string]*Pipe
}

// BuildWorkflow constructs a [Workflow] from every pure definition in prog
// (those with empty free-variable and pipeline-variable lists). If prog
// contains no pure definition, a single Workflow Error is logged at
// [NoSpan] and an empty, non-nil Workflow is returned.
func BuildWorkflow(ctx context.Context, prog *Program) *Workflow {
	wf := &Workflow{}

	pureCount := 0

	for _, def := range prog.Definitions {
		if !def.Pure() {
			continue
		}

		pureCount++

		pipesBefore, workersBefore := len(wf.Pipes), len(wf.Workers)

		buildDefinition(ctx, prog, wf, def)

		wf.Definitions = append(wf.Definitions, &DefinitionWorkflow{
			Definition: def,
			Pipes:      wf.Pipes[pipesBefore:],
			Workers:    wf.Workers[workersBefore:],
		})
	}

	if pureCount == 0 {
		prog.Log.Emit(ctx, SourceWorkflow, LevelError, "no pure definition in file; workflow is empty", NoSpan, nil)
	}

	return wf
}

// buildDefinition wires every pipeline of a single pure definition,
// pre-declaring its output pipes first so forward references are legal: a
// later pipeline may consume a pipe declared by an earlier pipeline's
// outputs, and vice versa.
func buildDefinition(ctx context.Context, prog *Program, wf *Workflow, def *Definition) {
	nt := &nameTable{pipes: make(map[string]*Pipe)}

	for _, pl := range def.Pipelines {
		for _, out := range pl.Outputs {
			// Every output occurrence allocates a pipe, duplicates included;
			// name lookup resolves to the first occurrence.
			pipe := addPipe(ctx, prog, wf, out.Name, out.Span)
			if _, exists := nt.pipes[out.Name]; !exists {
				nt.pipes[out.Name] = pipe
			}
		}
	}

	for _, pl := range def.Pipelines {
		buildPipeline(ctx, prog, wf, nt, pl)
	}
}

// addPipe appends a new owned pipe to wf, diagnosing (and dropping, not
// truncating silently) past [MaxPipesInWorkflow].
func addPipe(ctx context.Context, prog *Program, wf *Workflow, name string, span Span) *Pipe {
	pipe := &Pipe{Name: name, Span: span}

	if len(wf.Pipes) >= MaxPipesInWorkflow {
		prog.Log.Emit(ctx, SourceWorkflow, LevelError, "too many pipes in workflow", span, nil)

		return pipe
	}

	wf.Pipes = append(wf.Pipes, pipe)

	return pipe
}

// getPipe resolves name in nt's name table. An all-digit name synthesises a
// fresh "numeric pipeline" pipe on every call (even for repeated digit
// strings — each occurrence is a distinct pipe). Any other miss logs a
// Workflow Error and returns nil; the caller drops the connection.
func getPipe(ctx context.Context, prog *Program, wf *Workflow, nt *nameTable, name string, span Span) *Pipe {
	if isAllDigits(name) {
		return addPipe(ctx, prog, wf, "numeric pipeline", span)
	}

	if pipe, ok := nt.pipes[name]; ok {
		return pipe
	}

	prog.Log.Emit(ctx, SourceWorkflow, LevelError, fmt.Sprintf("Wrong name of pipe %q", name), span, nil)

	return nil
}

// buildPipeline wires one pipeline's workers: the first worker's inputs
// come from pl.Arguments, adjacent workers are joined by a fresh "implicit
// pipe", and pl.Outputs are attached to the last worker.
func buildPipeline(ctx context.Context, prog *Program, wf *Workflow, nt *nameTable, pl *Pipeline) {
	instances := make([]*WorkerInstance, 0, len(pl.Workers))

	for _, w := range pl.Workers {
		wi := &WorkerInstance{Name: w.Name, Span: w.Span, AST: w}

		if len(wf.Workers) >= MaxWorkersPerDefinition {
			prog.Log.Emit(ctx, SourceWorkflow, LevelError, "too many worker instances in definition", w.Span, nil)

			continue
		}

		wf.Workers = append(wf.Workers, wi)
		instances = append(instances, wi)
	}

	for _, arg := range pl.Arguments {
		wireArgument(ctx, prog, wf, nt, instances, arg)
	}

	for i := 1; i < len(instances); i++ {
		prev, cur := instances[i-1], instances[i]
		pipe := addPipe(ctx, prog, wf, "implicit pipe", Span{Begin: prev.Span.End, End: cur.Span.Begin})

		appendBounded(ctx, prog, &prev.Outputs, pipe, prev.Span)
		appendBounded(ctx, prog, &cur.Inputs, pipe, cur.Span)
	}

	if len(instances) == 0 {
		return
	}

	last := instances[len(instances)-1]
	for _, out := range pl.Outputs {
		pipe := getPipe(ctx, prog, wf, nt, out.Name, out.Span)
		if pipe != nil {
			appendBounded(ctx, prog, &last.Outputs, pipe, out.Span)
		}
	}
}

// wireArgument connects one pipeline argument into the first worker
// instance's inputs, or — for an inline pipeline argument — recursively
// builds it as a parallel sub-pipeline. The inline pipeline's terminal
// worker output is never auto-wired into the enclosing worker's inputs; an
// inline pipeline is a side computation.
func wireArgument(
	ctx context.Context,
	prog *Program,
	wf *Workflow,
	nt *nameTable,
	instances []*WorkerInstance,
	arg *Argument,
) {
	switch arg.Kind {
	case ArgumentName:
		if len(instances) == 0 {
			return
		}

		pipe := getPipe(ctx, prog, wf, nt, arg.Name, arg.Span)
		if pipe != nil {
			appendBounded(ctx, prog, &instances[0].Inputs, pipe, arg.Span)
		}
	case ArgumentInlinePipeline:
		if len(arg.Inline.Outputs) > 0 {
			prog.Log.Emit(
				ctx, SourceWorkflow, LevelError,
				"Unsupported for now: inline pipelines, with output pipes",
				arg.Inline.Span, nil,
			)
		}

		buildPipeline(ctx, prog, wf, nt, arg.Inline)
	}
}

// appendBounded appends pipe to *pipes, diagnosing (and dropping) any
// connection past [MaxPipesPerWorkerInstance].
func appendBounded(ctx context.Context, prog *Program, pipes *[]*Pipe, pipe *Pipe, span Span) {
	if len(*pipes) >= MaxPipesPerWorkerInstance {
		prog.Log.Emit(ctx, SourceWorkflow, LevelError, "too many pipe connections on worker", span, nil)

		return
	}

	*pipes = append(*pipes, pipe)
}
