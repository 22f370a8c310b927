package sim

import "sort"

// ServiceRecord is the outcome for one customer. Produced once, never mutated.
type ServiceRecord struct {
	Customer     int     // zero-based arrival-order index
	Entry        float64 // arrival time
	ServiceStart float64 // max(Entry, station ready time at assignment)
	Exit         float64 // ServiceStart + service duration
	Station      int     // index into the shift list
}

// Wait returns the time the customer spent queueing before service.
func (r ServiceRecord) Wait() float64 {
	return r.ServiceStart - r.Entry
}

// SortByExit stably sorts records by exit time. Records with equal exits keep
// their arrival order. The slice position becomes the new row index; the
// Customer field still carries the arrival-order index.
func SortByExit(records []ServiceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Exit < records[j].Exit
	})
}

// ExitTimes extracts the exit column from records, in slice order.
func ExitTimes(records []ServiceRecord) []float64 {
	exits := make([]float64, len(records))
	for i, r := range records {
		exits[i] = r.Exit
	}
	return exits
}
