package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/qsim/sim"
	"github.com/inference-sim/qsim/sim/export"
	"github.com/inference-sim/qsim/sim/scenario"
)

func testScenario(t *testing.T) *scenario.Scenario {
	t.Helper()
	sc, err := scenario.ParseScenario([]byte(`
seed: 11
customers: 30
replications: 6
workers: 2
arrival: {type: exponential, params: {mean: 1}}
service: {type: uniform, params: {min: 0.5, max: 2.5}}
shifts:
  - {ready: 0, close: .inf}
  - {ready: 5, close: .inf}
`))
	require.NoError(t, err)
	require.NoError(t, sc.Validate())
	return sc
}

func TestRunBatch_ReplicateReproducesColumn(t *testing.T) {
	// GIVEN a scenario run as a batch
	sc := testScenario(t)
	result, err := runBatch(context.Background(), sc)
	require.NoError(t, err)
	assert.Equal(t, 30, result.Exits.Customers())
	assert.Equal(t, 6, result.Exits.Replications())

	// WHEN replication 4 is rerun on its own
	records, err := runSingle(sc, 4)

	// THEN its exits match the batch column
	require.NoError(t, err)
	assert.Equal(t, result.Exits.Column(4), sim.ExitTimes(records))
}

func TestRunSingle_NegativeIndex(t *testing.T) {
	_, err := runSingle(testScenario(t), -1)
	assert.ErrorIs(t, err, sim.ErrInvalidParameters)
}

func TestWriteMatrixFile(t *testing.T) {
	m := sim.NewExitMatrix(2, 1)
	require.NoError(t, m.SetColumn(0, []float64{1, 2}))
	path := filepath.Join(t.TempDir(), "exits.arrow")

	require.NoError(t, writeMatrixFile(path, m))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestLoadObservedExits_SortsWhenRequested(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteRecordsCSV(&buf, []sim.ServiceRecord{
		{Customer: 0, Exit: 9}, {Customer: 1, Exit: 4}, {Customer: 2, Exit: 6},
	}))
	path := filepath.Join(t.TempDir(), "observed.csv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	sorted, err := loadObservedExits(path, true)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 6, 9}, sorted)

	raw, err := loadObservedExits(path, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 4, 6}, raw)
}

func TestLoadObservedExits_MissingFile(t *testing.T) {
	_, err := loadObservedExits(filepath.Join(t.TempDir(), "none.csv"), true)
	assert.Error(t, err)
}
