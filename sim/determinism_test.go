package sim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/qsim/sim"
	"github.com/inference-sim/qsim/sim/variate"
)

func exponentialQueue() sim.QueueConfig {
	return sim.QueueConfig{
		Customers:  200,
		Arrival:    sim.DistSpec{Type: "exponential", Params: map[string]float64{"mean": 1}},
		Service:    sim.DistSpec{Type: "gamma", Params: map[string]float64{"shape": 2, "scale": 1}},
		Shifts:     []sim.Shift{{Ready: 0, Close: 1e9}, {Ready: 0, Close: 1e9}, {Ready: 30, Close: 1e9}},
		SortByExit: true,
	}
}

func TestRunMonteCarlo_SameSeedSameMatrix_AnyWorkerCount(t *testing.T) {
	run := func(workers int) *sim.ExitMatrix {
		cfg := &sim.MonteCarloConfig{Queue: exponentialQueue(), Replications: 24, Workers: workers}
		res, err := sim.RunMonteCarlo(context.Background(), cfg, variate.StreamFactory(sim.NewSimulationKey(42)))
		require.NoError(t, err)
		return res.Exits
	}

	serial := run(1)
	assert.Equal(t, serial, run(8))
	assert.Equal(t, serial, run(3))
}

func TestRunMonteCarlo_DifferentSeedsDiffer(t *testing.T) {
	run := func(seed int64) []float64 {
		cfg := &sim.MonteCarloConfig{Queue: exponentialQueue(), Replications: 2, Workers: 1}
		res, err := sim.RunMonteCarlo(context.Background(), cfg, variate.StreamFactory(sim.NewSimulationKey(seed)))
		require.NoError(t, err)
		return res.Exits.Column(0)
	}

	assert.NotEqual(t, run(1), run(2))
}

func TestSimulateReplication_MatchesBatchColumn(t *testing.T) {
	// A single replication rerun from its index reproduces the batch column.
	key := sim.NewSimulationKey(7)
	queue := exponentialQueue()
	cfg := &sim.MonteCarloConfig{Queue: queue, Replications: 5, Workers: 4}
	res, err := sim.RunMonteCarlo(context.Background(), cfg, variate.StreamFactory(key))
	require.NoError(t, err)

	records, err := sim.SimulateReplication(&queue, variate.StreamFactory(key)(3))
	require.NoError(t, err)

	assert.Equal(t, res.Exits.Column(3), sim.ExitTimes(records))
}

func TestSimulateReplication_SortedExitsNonDecreasing(t *testing.T) {
	queue := exponentialQueue()
	records, err := sim.SimulateReplication(&queue, variate.StreamFactory(sim.NewSimulationKey(3))(0))
	require.NoError(t, err)

	exits := sim.ExitTimes(records)
	for i := 1; i < len(exits); i++ {
		if exits[i] < exits[i-1] {
			t.Fatalf("exit %d (%f) < exit %d (%f)", i, exits[i], i-1, exits[i-1])
		}
	}
}
