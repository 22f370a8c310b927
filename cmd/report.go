package cmd

import (
	"fmt"
	"strings"

	"github.com/inference-sim/qsim/sim/analysis"
)

const tableWidth = 80

// FormatBands renders percentile bands as a fixed-width table. When limit is
// positive and smaller than the row count, rows are sampled evenly and the
// last customer is always shown.
func FormatBands(bands []analysis.Band, limit int) string {
	var sb strings.Builder
	sb.WriteString("\nExit-Time Percentile Bands\n")
	sb.WriteString(strings.Repeat("=", tableWidth))
	sb.WriteString("\n")
	if len(bands) == 0 {
		sb.WriteString("No data to display\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "%8s %9s %9s %9s %9s %9s %9s %9s\n",
		"customer", "min", "p01", "p25", "median", "p75", "p99", "max")
	sb.WriteString(strings.Repeat("-", tableWidth))
	sb.WriteString("\n")
	for _, i := range sampleRows(len(bands), limit) {
		b := bands[i]
		fmt.Fprintf(&sb, "%8d %9.2f %9.2f %9.2f %9.2f %9.2f %9.2f %9.2f\n",
			b.Customer, b.Min, b.P01, b.P25, b.Median, b.P75, b.P99, b.Max)
	}
	return sb.String()
}

// FormatZScores renders one z-score per customer.
func FormatZScores(z []float64) string {
	var sb strings.Builder
	sb.WriteString("\nZ-Score per Customer\n")
	sb.WriteString(strings.Repeat("=", tableWidth))
	sb.WriteString("\n")
	for c, v := range z {
		fmt.Fprintf(&sb, "%8d %9.4f\n", c, v)
	}
	return sb.String()
}

// sampleRows picks at most limit row indices out of n, evenly spaced,
// always including the first and last row.
func sampleRows(n, limit int) []int {
	if limit <= 0 || limit >= n {
		rows := make([]int, n)
		for i := range rows {
			rows[i] = i
		}
		return rows
	}
	if limit == 1 {
		return []int{n - 1}
	}
	rows := make([]int, 0, limit)
	for k := 0; k < limit; k++ {
		rows = append(rows, k*(n-1)/(limit-1))
	}
	return rows
}
