package sim

import "fmt"

// ExitMatrix holds exit times of customers (rows) across replications
// (columns). Storage is pre-allocated and column-major so each replication
// writes one contiguous slot without coordinating with the others.
type ExitMatrix struct {
	customers    int
	replications int
	data         []float64
}

// NewExitMatrix allocates a zeroed customers x replications matrix.
func NewExitMatrix(customers, replications int) *ExitMatrix {
	return &ExitMatrix{
		customers:    customers,
		replications: replications,
		data:         make([]float64, customers*replications),
	}
}

// Customers returns the row count.
func (m *ExitMatrix) Customers() int { return m.customers }

// Replications returns the column count.
func (m *ExitMatrix) Replications() int { return m.replications }

// At returns the exit time of customer row c in replication column r.
func (m *ExitMatrix) At(c, r int) float64 {
	return m.data[r*m.customers+c]
}

// Column returns a copy of replication column r.
func (m *ExitMatrix) Column(r int) []float64 {
	col := make([]float64, m.customers)
	copy(col, m.data[r*m.customers:(r+1)*m.customers])
	return col
}

// Row returns a copy of customer row c across all replications.
func (m *ExitMatrix) Row(c int) []float64 {
	row := make([]float64, m.replications)
	for r := range row {
		row[r] = m.data[r*m.customers+c]
	}
	return row
}

// SetColumn writes replication column r. Concurrent calls for distinct r are
// safe; each column must be written at most once.
func (m *ExitMatrix) SetColumn(r int, exits []float64) error {
	if len(exits) != m.customers {
		return fmt.Errorf("column %d has %d rows, matrix has %d: %w", r, len(exits), m.customers, ErrShapeMismatch)
	}
	copy(m.data[r*m.customers:(r+1)*m.customers], exits)
	return nil
}

// withoutColumns returns a new matrix with the given (sorted, unique) columns
// removed, remaining columns kept in order.
func (m *ExitMatrix) withoutColumns(drop []int) *ExitMatrix {
	if len(drop) == 0 {
		return m
	}
	out := NewExitMatrix(m.customers, m.replications-len(drop))
	dst, d := 0, 0
	for r := 0; r < m.replications; r++ {
		if d < len(drop) && drop[d] == r {
			d++
			continue
		}
		copy(out.data[dst*m.customers:(dst+1)*m.customers], m.data[r*m.customers:(r+1)*m.customers])
		dst++
	}
	return out
}
