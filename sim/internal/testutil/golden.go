// Package testutil provides shared test infrastructure for the queue
// simulator: the golden dataset types and assertion helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one deterministic replication: constant inter-arrival
// gaps and constant service durations, so every exit time is exact.
type GoldenTestCase struct {
	Name       string        `json:"name"`
	Customers  int           `json:"customers"`
	Gap        float64       `json:"gap"`
	Duration   float64       `json:"duration"`
	Shifts     []GoldenShift `json:"shifts"`
	SortByExit bool          `json:"sort_by_exit"`
	Error      string        `json:"error"` // "" or "stations_exhausted"
	Metrics    GoldenMetrics `json:"metrics"`
}

// GoldenShift mirrors one station shift.
type GoldenShift struct {
	Ready float64 `json:"ready"`
	Close float64 `json:"close"`
}

// GoldenMetrics represents the expected outcome of a golden test case.
type GoldenMetrics struct {
	// Exact match, in output row order
	Exits    []float64 `json:"exits"`
	Stations []int     `json:"stations"`

	// Derived
	MeanWait float64 `json:"mean_wait"`
	Makespan float64 `json:"makespan"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
