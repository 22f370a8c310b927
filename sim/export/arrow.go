// Package export writes simulation results for downstream consumers:
// the exit matrix as an Arrow IPC file (one float64 column per replication)
// and single-replication record sets as CSV.
package export

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/inference-sim/qsim/sim"
)

// CustomerColumn is the name of the row-index column in exported matrices.
const CustomerColumn = "customer"

// ReplicationColumn returns the column name of replication r.
func ReplicationColumn(r int) string {
	return fmt.Sprintf("rep_%d", r)
}

// ExitMatrixSchema returns the Arrow schema for an m-shaped export:
// customer:int64 followed by rep_0..rep_{R-1}:float64.
func ExitMatrixSchema(m *sim.ExitMatrix) *arrow.Schema {
	fields := make([]arrow.Field, 0, m.Replications()+1)
	fields = append(fields, arrow.Field{Name: CustomerColumn, Type: arrow.PrimitiveTypes.Int64})
	for r := 0; r < m.Replications(); r++ {
		fields = append(fields, arrow.Field{Name: ReplicationColumn(r), Type: arrow.PrimitiveTypes.Float64})
	}
	return arrow.NewSchema(fields, nil)
}

// ExitMatrixRecord converts m to a single Arrow record. The caller owns the
// returned record and must Release it.
func ExitMatrixRecord(mem memory.Allocator, m *sim.ExitMatrix) arrow.Record {
	b := array.NewRecordBuilder(mem, ExitMatrixSchema(m))
	defer b.Release()

	customers := b.Field(0).(*array.Int64Builder)
	customers.Reserve(m.Customers())
	for c := 0; c < m.Customers(); c++ {
		customers.Append(int64(c))
	}
	for r := 0; r < m.Replications(); r++ {
		b.Field(r+1).(*array.Float64Builder).AppendValues(m.Column(r), nil)
	}
	return b.NewRecord()
}

// WriteExitMatrix writes m to w in the Arrow IPC file format.
// w must be seekable; an *os.File qualifies.
func WriteExitMatrix(w io.WriteSeeker, m *sim.ExitMatrix) error {
	mem := memory.NewGoAllocator()
	rec := ExitMatrixRecord(mem, m)
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
	if err != nil {
		return fmt.Errorf("creating arrow writer: %w", err)
	}
	if err := fw.Write(rec); err != nil {
		_ = fw.Close()
		return fmt.Errorf("writing arrow record: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("closing arrow writer: %w", err)
	}
	return nil
}
