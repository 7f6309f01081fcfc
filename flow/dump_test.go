package flow_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/flowc/flow"
)

// Property 7: dumping the same AST twice yields byte-identical output.
func TestDumpDeterministic(t *testing.T) {
	prog, _ := parseSource(t, "a > f > g >> b |: main")

	var first, second bytes.Buffer
	flow.Dump(&first, prog)
	flow.Dump(&second, prog)

	require.Equal(t, first.String(), second.String())
	require.NotEmpty(t, first.String())
}

func TestDumpNameTable(t *testing.T) {
	_, wf, _ := buildSource(t, "a > f >> b |: main")

	require.Len(t, wf.Definitions, 1)

	var buf bytes.Buffer
	flow.DumpNameTable(&buf, wf.Definitions[0])

	out := buf.String()
	require.Contains(t, out, "definition main")
	require.Contains(t, out, "pipe b")
	require.Contains(t, out, "worker f")
}
