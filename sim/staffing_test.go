package sim_test

import (
	"testing"

	"github.com/inference-sim/qsim/sim"
	"github.com/inference-sim/qsim/sim/variate"
)

// TestSimulateReplication_ExtraStationNeverDelaysAnyone checks monotonicity
// under common random numbers: with the same arrivals and the same per-customer
// service durations, adding an always-open station can only move every
// customer's service start earlier.
func TestSimulateReplication_ExtraStationNeverDelaysAnyone(t *testing.T) {
	base := sim.QueueConfig{
		Customers: 300,
		Arrival:   sim.DistSpec{Type: "exponential", Params: map[string]float64{"mean": 1}},
		Service:   sim.DistSpec{Type: "lognormal", Params: map[string]float64{"mu": 0.6, "sigma": 0.5}},
		Shifts:    []sim.Shift{{Ready: 0, Close: 1e12}, {Ready: 0, Close: 1e12}},
	}
	wider := base
	wider.Shifts = append(append([]sim.Shift(nil), base.Shifts...), sim.Shift{Ready: 0, Close: 1e12})

	factory := variate.StreamFactory(sim.NewSimulationKey(2024))
	for r := 0; r < 10; r++ {
		narrow, err := sim.SimulateReplication(&base, factory(r))
		if err != nil {
			t.Fatal(err)
		}
		wide, err := sim.SimulateReplication(&wider, factory(r))
		if err != nil {
			t.Fatal(err)
		}
		for i := range narrow {
			if narrow[i].Entry != wide[i].Entry {
				t.Fatalf("replication %d customer %d: arrivals differ (%f vs %f)", r, i, narrow[i].Entry, wide[i].Entry)
			}
			if wide[i].ServiceStart > narrow[i].ServiceStart+1e-9 {
				t.Errorf("replication %d customer %d: start %f with 3 stations > %f with 2",
					r, i, wide[i].ServiceStart, narrow[i].ServiceStart)
			}
		}
	}
}
