package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// ServiceScheduler turns an ordered arrival sequence into service records.
//
// Assignment is greedy longest-idle-first: each customer, in arrival order,
// goes to the open station with the smallest ready time, using only the pool
// state left by the previous customer. Customers are never reassigned.
type ServiceScheduler struct {
	Source VariateSource // service-duration stream
	Dist   DistSpec      // service-duration distribution
}

// Schedule serves every customer in arrivals through pool, mutating pool.
// Arrivals are assumed non-decreasing and are not re-sorted.
// ErrStationsExhausted aborts the remainder of the replication.
func (s *ServiceScheduler) Schedule(arrivals []float64, pool *StationPool) ([]ServiceRecord, error) {
	records := make([]ServiceRecord, 0, len(arrivals))
	for i, entry := range arrivals {
		idx, err := pool.SelectStation()
		if err != nil {
			return nil, fmt.Errorf("customer %d at t=%.4f: %w", i, entry, err)
		}
		start := math.Max(entry, pool.Station(idx).Ready)

		draw, err := s.Source.Draw(s.Dist, 1)
		if err != nil {
			return nil, fmt.Errorf("service distribution: %w", err)
		}
		if len(draw) != 1 {
			return nil, fmt.Errorf("service source returned %d samples, want 1: %w", len(draw), ErrShapeMismatch)
		}
		duration := draw[0]
		if duration < 0 || math.IsNaN(duration) {
			return nil, fmt.Errorf("customer %d: service duration %f must be non-negative: %w", i, duration, ErrInvalidParameters)
		}

		exit := start + duration
		pool.RecordService(idx, exit)
		if pool.Station(idx).State == StationClosed {
			logrus.Debugf("station %d closed at t=%.4f after customer %d", idx, exit, i)
		}

		records = append(records, ServiceRecord{
			Customer:     i,
			Entry:        entry,
			ServiceStart: start,
			Exit:         exit,
			Station:      idx,
		})
	}
	return records, nil
}
