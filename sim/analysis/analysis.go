// Package analysis summarizes an exit-time matrix: per-customer percentile
// bands, and z-score comparison of an observed case against the simulated
// distribution.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/inference-sim/qsim/sim"
)

// Band is the distribution of one customer row across replications.
type Band struct {
	Customer int
	Min      float64
	P01      float64
	P25      float64
	Median   float64
	P75      float64
	P99      float64
	Max      float64
	Mean     float64
	StdDev   float64 // sample standard deviation (n-1); NaN for a single replication
}

// Percentile returns the p-th percentile (0..100) of sorted data using linear
// interpolation between the two closest ranks, matching numpy's default.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))
	if upperIdx >= n {
		return sorted[n-1]
	}
	if lowerIdx == upperIdx {
		return sorted[lowerIdx]
	}
	return sorted[lowerIdx] + (sorted[upperIdx]-sorted[lowerIdx])*(rank-float64(lowerIdx))
}

// Bands computes one Band per customer row of m.
func Bands(m *sim.ExitMatrix) []Band {
	if m.Replications() == 0 {
		return nil
	}
	bands := make([]Band, m.Customers())
	for c := range bands {
		row := m.Row(c)
		sort.Float64s(row)
		mean, std := meanStd(row)
		bands[c] = Band{
			Customer: c,
			Min:      floats.Min(row),
			P01:      Percentile(row, 1),
			P25:      Percentile(row, 25),
			Median:   Percentile(row, 50),
			P75:      Percentile(row, 75),
			P99:      Percentile(row, 99),
			Max:      floats.Max(row),
			Mean:     mean,
			StdDev:   std,
		}
	}
	return bands
}

// ZScores standardizes each observed exit time against its simulated row:
// (observed - mean) / std. Rows with zero spread yield ±Inf, or NaN when the
// observation equals the mean.
func ZScores(m *sim.ExitMatrix, observed []float64) ([]float64, error) {
	if len(observed) != m.Customers() {
		return nil, fmt.Errorf("observed case has %d customers, simulation has %d: %w",
			len(observed), m.Customers(), sim.ErrShapeMismatch)
	}
	z := make([]float64, len(observed))
	for c, obs := range observed {
		mean, std := meanStd(m.Row(c))
		z[c] = (obs - mean) / std
	}
	return z, nil
}

// Compare returns the mean z-score of observed against m.
func Compare(m *sim.ExitMatrix, observed []float64) (float64, error) {
	z, err := ZScores(m, observed)
	if err != nil {
		return 0, err
	}
	return MeanZ(z), nil
}

// MeanZ averages z-scores. NaN entries are left out; infinite ones are kept.
// Returns NaN when no entry is usable.
func MeanZ(z []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range z {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// meanStd returns the mean and the n-1 sample standard deviation.
func meanStd(x []float64) (float64, float64) {
	if len(x) == 1 {
		return x[0], math.NaN()
	}
	return stat.MeanStdDev(x, nil)
}
