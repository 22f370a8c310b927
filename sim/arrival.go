package sim

import (
	"fmt"
	"math"
)

// GenerateArrivals draws n inter-arrival gaps from src and returns the
// cumulative arrival times, one per customer.
//
// The scheduler relies on arrivals being non-decreasing, so a negative (or
// NaN) gap is rejected with ErrInvalidParameters instead of producing an
// out-of-order schedule.
func GenerateArrivals(n int, src VariateSource, dist DistSpec) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("customer count must be positive, got %d: %w", n, ErrInvalidParameters)
	}
	gaps, err := src.Draw(dist, n)
	if err != nil {
		return nil, fmt.Errorf("arrival distribution: %w", err)
	}
	if len(gaps) != n {
		return nil, fmt.Errorf("arrival source returned %d samples, want %d: %w", len(gaps), n, ErrShapeMismatch)
	}

	arrivals := make([]float64, n)
	t := 0.0
	for i, gap := range gaps {
		if gap < 0 || math.IsNaN(gap) {
			return nil, fmt.Errorf("inter-arrival gap %d is %f; gaps must be non-negative: %w", i, gap, ErrInvalidParameters)
		}
		t += gap
		arrivals[i] = t
	}
	return arrivals, nil
}
