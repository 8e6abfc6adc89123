package main

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestRun_CornerJSON checks the report of the corner scenario.
func TestRun_CornerJSON(t *testing.T) {
	out, err := execute(t, "run", "-c", filepath.Join("testdata", "corner.yaml"), "--json")
	require.NoError(t, err)

	var rep report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Equal(t, 1, rep.SupplyCells)
	require.Equal(t, 1, rep.DemandCells)
	require.Equal(t, 1, rep.Pairs)
	require.InDelta(t, math.Exp(-0.8), rep.Summary.TotalActual, 1e-9)
	require.InDelta(t, 1-math.Exp(-0.8), rep.Summary.TotalBlocked, 1e-9)
	require.Equal(t, 2, rep.Graph.Nodes)
	require.Equal(t, 1, rep.Graph.Edges)
	require.NotEmpty(t, rep.RunID)
}

// TestRun_SyntheticText runs the seeded landscape with instrumentation.
func TestRun_SyntheticText(t *testing.T) {
	out, err := execute(t, "run", "-c", filepath.Join("testdata", "synthetic.yaml"), "--metrics")
	require.NoError(t, err)
	require.Contains(t, out, "total theoretical")
	require.Contains(t, out, "moran's I")
	require.Contains(t, out, "spanflow_stage_duration_seconds")
	require.Contains(t, out, `spanflow_runs_total{outcome="ok"} 1`)
}

// TestRun_Archive stores a run and reads it back through the runs command.
func TestRun_Archive(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	out, err := execute(t, "run", "-c", filepath.Join("testdata", "corner.yaml"), "--json", "--store", db)
	require.NoError(t, err)
	var rep report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))

	out, err = execute(t, "runs", "-s", db)
	require.NoError(t, err)
	require.Contains(t, out, rep.RunID)
	require.Contains(t, out, "corner.yaml")

	out, err = execute(t, "runs", "show", rep.RunID, "-s", db)
	require.NoError(t, err)
	var shown report
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	require.Equal(t, rep.RunID, shown.RunID)
	require.Equal(t, rep.Graph.Edges, shown.Graph.Edges)

	_, err = execute(t, "runs", "rm", rep.RunID, "-s", db)
	require.NoError(t, err)
	_, err = execute(t, "runs", "show", rep.RunID, "-s", db)
	require.Error(t, err)
}

// TestRun_MissingScenario reports the open failure.
func TestRun_MissingScenario(t *testing.T) {
	_, err := execute(t, "run", "-c", filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
}

// TestModels lists the built-in potential models.
func TestModels(t *testing.T) {
	out, err := execute(t, "models")
	require.NoError(t, err)
	require.Equal(t, "local\nreachable\n", out)
}

// TestNumberJSON writes null for non-finite values.
func TestNumberJSON(t *testing.T) {
	b, err := json.Marshal([]number{1.5, number(math.NaN()), number(math.Inf(1))})
	require.NoError(t, err)
	require.Equal(t, "[1.5,null,null]", string(b))
}
