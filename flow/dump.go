package flow

import (
	"fmt"
	"io"
	"strings"
)

// indentWidth is the number of spaces added per nesting level in [Dump].
const indentWidth = 2

// Dump writes a deterministic, indented text rendering of prog to w: the
// same AST always produces byte-identical output. This is a diagnostic-only
// side output.
func Dump(w io.Writer, prog *Program) {
	for i, def := range prog.Definitions {
		fmt.Fprintf(w, "definition %s\n", definitionLabel(def))
		dumpPipelines(w, def.Pipelines, 1)

		if i < len(prog.Definitions)-1 {
			fmt.Fprintln(w)
		}
	}
}

// DumpNameTable writes the pipe and worker name table for one built
// definition: every pipe name first, then every worker instance with its
// resolved input and output pipe names. The CLI prints one such table per
// pure definition after its "get workflow..." banner.
func DumpNameTable(w io.Writer, dw *DefinitionWorkflow) {
	fmt.Fprintf(w, "definition %s\n", definitionLabel(dw.Definition))

	for _, p := range dw.Pipes {
		fmt.Fprintf(w, "  pipe %s\n", p.Name)
	}

	for _, wi := range dw.Workers {
		fmt.Fprintf(w, "  worker %s in=%s out=%s\n",
			wi.Name, pipeNames(wi.Inputs), pipeNames(wi.Outputs))
	}
}

func pipeNames(pipes []*Pipe) string {
	names := make([]string, len(pipes))
	for i, p := range pipes {
		names[i] = p.Name
	}

	return "[" + strings.Join(names, ", ") + "]"
}

func definitionLabel(def *Definition) string {
	name := def.Name
	if name == "" {
		name = "<anonymous>"
	}

	label := name

	if len(def.PipelineVars) > 0 {
		label += "(" + strings.Join(def.PipelineVars, ", ") + ")"
	}

	if len(def.FreeVars) > 0 {
		label += "{" + strings.Join(def.FreeVars, ", ") + "}"
	}

	if !def.Pure() {
		label += " [impure]"
	}

	return label
}

func dumpPipelines(w io.Writer, pipelines []*Pipeline, depth int) {
	for _, pl := range pipelines {
		dumpPipeline(w, pl, depth)
	}
}

func dumpPipeline(w io.Writer, pl *Pipeline, depth int) {
	pad := strings.Repeat(" ", depth*indentWidth)
	fmt.Fprintf(w, "%spipeline [%d,%d)\n", pad, pl.Span.Begin, pl.Span.End)

	argPad := strings.Repeat(" ", (depth+1)*indentWidth)

	for _, arg := range pl.Arguments {
		switch arg.Kind {
		case ArgumentName:
			fmt.Fprintf(w, "%sarg %s\n", argPad, arg.Name)
		case ArgumentInlinePipeline:
			fmt.Fprintf(w, "%sarg (inline)\n", argPad)
			dumpPipeline(w, arg.Inline, depth+2)
		}
	}

	for _, wk := range pl.Workers {
		fmt.Fprintf(w, "%sworker %s\n", argPad, wk.Name)

		subPad := strings.Repeat(" ", (depth+2)*indentWidth)

		for _, sub := range wk.Substitutions {
			switch sub.Kind {
			case SubstitutionSymbol:
				fmt.Fprintf(w, "%ssub %s=%s\n", subPad, sub.Name, sub.Symbol)
			case SubstitutionPipeline:
				fmt.Fprintf(w, "%ssub %s=(inline)\n", subPad, sub.Name)
				dumpPipeline(w, sub.Pipeline, depth+3)
			}
		}
	}

	for _, out := range pl.Outputs {
		fmt.Fprintf(w, "%sout %s\n", argPad, out.Name)
	}
}
