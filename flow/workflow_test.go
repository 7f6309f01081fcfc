package flow_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/flowc/flow"
	fclog "github.com/ardnew/flowc/log"
)

func buildSource(t *testing.T, text string) (*flow.Program, *flow.Workflow, *flow.Log) {
	t.Helper()

	src := flow.NewSource("t.flow", []byte(text))
	log := flow.NewLog(fclog.Make(io.Discard), src)
	ctx := context.Background()
	prog := flow.NewParser(ctx, src, log).ParseProgram()
	wf := flow.BuildWorkflow(ctx, prog)

	return prog, wf, log
}

// S1 - minimal pure definition: "a" is never pre-declared as an output, so
// it is reported as a Workflow Error; "b" is pre-declared and attached.
func TestBuildMinimalPureDefinition(t *testing.T) {
	_, wf, log := buildSource(t, "a > worker >> b |: main")

	require.Len(t, wf.Workers, 1)
	require.Equal(t, "worker", wf.Workers[0].Name)
	require.Empty(t, wf.Workers[0].Inputs, "unresolved argument should not wire a pipe")
	require.Len(t, wf.Workers[0].Outputs, 1)
	require.Equal(t, "b", wf.Workers[0].Outputs[0].Name)

	require.True(t, hasError(log, "Wrong name of pipe \"a\""))
}

// S2 - chained workers with implicit pipes.
func TestBuildChainedWorkersImplicitPipes(t *testing.T) {
	_, wf, _ := buildSource(t, "x > f > g > h >> y |: main")

	require.Len(t, wf.Workers, 3)

	f, g, h := wf.Workers[0], wf.Workers[1], wf.Workers[2]

	require.Len(t, f.Outputs, 1)
	require.Equal(t, "implicit pipe", f.Outputs[0].Name)
	require.Same(t, f.Outputs[0], g.Inputs[0])

	require.Len(t, g.Outputs, 1)
	require.Same(t, g.Outputs[0], h.Inputs[0])

	require.Len(t, h.Outputs, 1)
	require.Equal(t, "y", h.Outputs[0].Name)
}

// S3 - inline pipeline declaring outputs is flagged unsupported.
func TestBuildInlinePipelineWithOutputs(t *testing.T) {
	_, wf, log := buildSource(t, "(1 > f >> z), 2 > g >> w |: main")

	require.True(t, hasError(log, "Unsupported for now: inline pipelines, with output pipes"))

	// The inline pipeline's worker is still built, just not wired to g.
	names := workerNames(wf)
	require.Contains(t, names, "f")
	require.Contains(t, names, "g")
}

// S5 - pipeline group pre-declares every pipeline's outputs before wiring
// any of them, so cross-pipeline forward references resolve cleanly.
func TestBuildPipelineGroupForwardReference(t *testing.T) {
	_, wf, log := buildSource(t, "{ a > f >> b; c > g >> d } |: main")

	require.False(t, hasError(log, "Wrong name of pipe \"b\""))
	require.False(t, hasError(log, "Wrong name of pipe \"d\""))
	require.Len(t, wf.Workers, 2)
}

// Numeric argument freshness: two distinct all-digit arguments, even with
// identical digits, produce distinct pipe objects.
func TestBuildNumericArgumentFreshness(t *testing.T) {
	_, wf, _ := buildSource(t, "1, 1 > f >> o1 |: main")

	var numeric []*flow.Pipe

	for _, p := range wf.Pipes {
		if p.Name == "numeric pipeline" {
			numeric = append(numeric, p)
		}
	}

	require.Len(t, numeric, 2)
	require.NotSame(t, numeric[0], numeric[1])
}

// Pure-definition predicate: impure definitions never contribute workers.
func TestBuildSkipsImpureDefinitions(t *testing.T) {
	_, wf, log := buildSource(t, "a > f >> b |: main(p){v}")

	require.Empty(t, wf.Workers)
	require.True(t, hasError(log, "no pure definition in file; workflow is empty"))
}

// Two outputs sharing a name allocate two pipes (each occurrence consumes
// pipe budget and appears in the dump), while name lookup resolves every
// reference to the first occurrence's pipe.
func TestBuildDuplicateOutputNamesAllocatePerOccurrence(t *testing.T) {
	_, wf, log := buildSource(t, "{ > f >> b; > g >> b } |: main")

	var named []*flow.Pipe

	for _, p := range wf.Pipes {
		if p.Name == "b" {
			named = append(named, p)
		}
	}

	require.Len(t, named, 2)
	require.NotSame(t, named[0], named[1])

	require.Len(t, wf.Workers, 2)
	require.Len(t, wf.Workers[0].Outputs, 1)
	require.Len(t, wf.Workers[1].Outputs, 1)
	require.Same(t, named[0], wf.Workers[0].Outputs[0])
	require.Same(t, named[0], wf.Workers[1].Outputs[0])

	require.False(t, hasError(log, "Wrong name of pipe \"b\""))
}

// Connections past the per-worker pipe cap are diagnosed and dropped.
func TestBuildTooManyPipeConnections(t *testing.T) {
	src := strings.Repeat("1, ", flow.MaxPipesPerWorkerInstance) + "1 > w |: m"

	_, wf, log := buildSource(t, src)

	require.True(t, hasError(log, "too many pipe connections on worker"))
	require.Len(t, wf.Workers, 1)
	require.Len(t, wf.Workers[0].Inputs, flow.MaxPipesPerWorkerInstance)
}

// Worker instances past the workflow cap are diagnosed and dropped. A
// single definition can reach the cap exactly (16 pipelines of 64 workers);
// the next definition's first worker overflows it.
func TestBuildTooManyWorkerInstances(t *testing.T) {
	pipeline := strings.Repeat(" > w", flow.MaxWorkersPerPipeline)

	pipelines := make([]string, flow.MaxPipelinesPerDefinition)
	for i := range pipelines {
		pipelines[i] = pipeline
	}

	src := "{" + strings.Join(pipelines, ";") + "} |: d1\n> w |: d2"

	_, wf, log := buildSource(t, src)

	require.True(t, hasError(log, "too many worker instances in definition"))
	require.Len(t, wf.Workers, flow.MaxWorkersPerDefinition)
}

// Pipes past the workflow cap are diagnosed and dropped. Numeric arguments
// allocate a fresh pipe per occurrence, so enough of them across enough
// definitions exhaust the budget.
func TestBuildTooManyPipes(t *testing.T) {
	args := strings.Repeat("1, ", flow.MaxPipesPerWorkerInstance-1) + "1"

	definitions := flow.MaxPipesInWorkflow/flow.MaxPipesPerWorkerInstance + 1

	var b strings.Builder
	for i := 0; i <= definitions; i++ {
		fmt.Fprintf(&b, "%s > w |: d%d\n", args, i)
	}

	_, wf, log := buildSource(t, b.String())

	require.True(t, hasError(log, "too many pipes in workflow"))
	require.Len(t, wf.Pipes, flow.MaxPipesInWorkflow)
}

func hasError(log *flow.Log, substr string) bool {
	for _, rec := range log.Records() {
		if rec.Level == flow.LevelError && rec.Message == substr {
			return true
		}
	}

	return false
}

func workerNames(wf *flow.Workflow) []string {
	names := make([]string, 0, len(wf.Workers))
	for _, w := range wf.Workers {
		names = append(names, w.Name)
	}

	return names
}
