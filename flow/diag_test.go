package flow_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/flowc/flow"
	fclog "github.com/ardnew/flowc/log"
)

func TestLogEmitStableHandles(t *testing.T) {
	src := flow.NewSource("t.flow", []byte("abc\ndef"))
	log := flow.NewLog(fclog.Make(io.Discard), src)
	ctx := context.Background()

	first := log.Emit(ctx, flow.SourceParser, flow.LevelWarning, "first", flow.Span{Begin: 0, End: 3}, nil)
	second := log.Emit(ctx, flow.SourceWorkflow, flow.LevelError, "second", flow.Span{Begin: 4, End: 7}, &first)

	require.Equal(t, 2, log.Len())

	rec, ok := log.Get(first)
	require.True(t, ok)
	assert.Equal(t, "first", rec.Message)
	assert.Equal(t, flow.SourceParser, rec.Source)

	rec, ok = log.Get(second)
	require.True(t, ok)
	require.NotNil(t, rec.Associated)
	assert.Equal(t, first, *rec.Associated)

	_, ok = log.Get(flow.RecordID(99))
	assert.False(t, ok)

	assert.True(t, log.HasErrors())
}

func TestFormatRecord(t *testing.T) {
	src := flow.NewSource("t.flow", []byte("a > f >> b |: main"))
	log := flow.NewLog(fclog.Make(io.Discard), src)
	ctx := context.Background()

	first := log.Emit(ctx, flow.SourceParser, flow.LevelError, "bad token", flow.Span{Begin: 4, End: 5}, nil)
	rec, _ := log.Get(first)

	out := flow.FormatRecord(src, "t.flow", rec)
	assert.Equal(t, "PARSER::ERROR:t.flow:1:4 bad token\n[at f]", out)

	second := log.Emit(ctx, flow.SourceWorkflow, flow.LevelNote, "related", flow.NoSpan, &first)
	rec, _ = log.Get(second)

	out = flow.FormatRecord(src, "t.flow", rec)
	assert.Contains(t, out, "WORKFLOW::NOTE:")
	assert.Contains(t, out, "(see also: record #0)")
}

// Diagnostic locality: every record emitted while parsing arbitrary garbage
// has a span within [0, len(source)].
func TestDiagnosticLocality(t *testing.T) {
	inputs := []string{
		"a > | b |: main",
		">>>>>>",
		"a > f >> ) |: x",
		"((((((",
		"{ a > f; ; } |:",
		"a, , > f >> , |: m",
	}

	for _, in := range inputs {
		prog, log := parseSource(t, in)
		flow.BuildWorkflow(context.Background(), prog)

		for _, rec := range log.Records() {
			span := rec.Span.Clamp(len(in))
			assert.Equal(t, rec.Span, span, "record span out of range for input %q: %+v", in, rec)
		}
	}
}

// Span containment: every AST node's span lies within its parent's span.
func TestSpanContainment(t *testing.T) {
	prog, _ := parseSource(t, "(1 > f >> z), 2 > g k=(b > h) >> w |: main\nx > p > q >> y |: aux")

	for _, def := range prog.Definitions {
		for _, pl := range def.Pipelines {
			require.True(t, def.Span.Contains(pl.Span), "pipeline span %+v outside definition span %+v", pl.Span, def.Span)
			checkPipelineSpans(t, pl)
		}
	}
}

func checkPipelineSpans(t *testing.T, pl *flow.Pipeline) {
	t.Helper()

	for _, arg := range pl.Arguments {
		assert.True(t, pl.Span.Contains(arg.Span))

		if arg.Kind == flow.ArgumentInlinePipeline {
			assert.True(t, arg.Span.Contains(arg.Inline.Span))
			checkPipelineSpans(t, arg.Inline)
		}
	}

	for _, w := range pl.Workers {
		assert.True(t, pl.Span.Contains(w.Span))

		for _, sub := range w.Substitutions {
			assert.True(t, w.Span.Contains(sub.Span))

			if sub.Kind == flow.SubstitutionPipeline {
				checkPipelineSpans(t, sub.Pipeline)
			}
		}
	}

	for _, out := range pl.Outputs {
		assert.True(t, pl.Span.Contains(out.Span))
	}
}
