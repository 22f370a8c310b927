package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inference-sim/qsim/sim/analysis"
)

func TestSampleRows(t *testing.T) {
	tests := []struct {
		name     string
		n, limit int
		want     []int
	}{
		{"no limit", 4, 0, []int{0, 1, 2, 3}},
		{"limit above n", 3, 10, []int{0, 1, 2}},
		{"evenly spaced", 11, 3, []int{0, 5, 10}},
		{"first and last", 100, 2, []int{0, 99}},
		{"single row shows last", 50, 1, []int{49}},
		{"empty", 0, 5, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sampleRows(tt.n, tt.limit))
		})
	}
}

func TestFormatBands(t *testing.T) {
	bands := []analysis.Band{
		{Customer: 0, Min: 1, P01: 1, P25: 2, Median: 3, P75: 4, P99: 5, Max: 5},
		{Customer: 1, Min: 2, P01: 2, P25: 3, Median: 4, P75: 5, P99: 6, Max: 6},
		{Customer: 2, Min: 3, P01: 3, P25: 4, Median: 5, P75: 6, P99: 7, Max: 7.25},
	}

	out := FormatBands(bands, 2)

	assert.Contains(t, out, "Exit-Time Percentile Bands")
	assert.Contains(t, out, "median")
	assert.Contains(t, out, "7.25")
	// Title, two rules, column header, and rows 0 and 2; row 1 is sampled out.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 6)
}

func TestFormatBands_Empty(t *testing.T) {
	assert.Contains(t, FormatBands(nil, 10), "No data to display")
}

func TestFormatZScores(t *testing.T) {
	out := FormatZScores([]float64{0.5, -1.25})
	assert.Contains(t, out, "0.5000")
	assert.Contains(t, out, "-1.2500")
}
