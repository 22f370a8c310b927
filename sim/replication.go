package sim

import (
	"fmt"
)

// QueueConfig describes one replication: how many customers arrive, how
// arrivals and service durations are distributed, and which shifts staff the
// stations.
type QueueConfig struct {
	Customers  int      // customers per replication (must be > 0)
	Arrival    DistSpec // inter-arrival gap distribution
	Service    DistSpec // service duration distribution
	Shifts     []Shift  // one shift per station, in station-index order
	SortByExit bool     // stable-sort records by exit time before returning
}

// Validate checks the counts and that both distributions are named.
// Distribution parameters are validated by the VariateSource on first draw.
func (c *QueueConfig) Validate() error {
	if c.Customers <= 0 {
		return fmt.Errorf("customers must be positive, got %d: %w", c.Customers, ErrInvalidParameters)
	}
	if len(c.Shifts) == 0 {
		return fmt.Errorf("at least one shift required: %w", ErrShapeMismatch)
	}
	if c.Arrival.Type == "" {
		return fmt.Errorf("arrival distribution type is required: %w", ErrInvalidParameters)
	}
	if c.Service.Type == "" {
		return fmt.Errorf("service distribution type is required: %w", ErrInvalidParameters)
	}
	return nil
}

// SimulateReplication runs one complete replication: a fresh station pool,
// freshly generated arrivals, and the scheduler over them.
func SimulateReplication(cfg *QueueConfig, streams Streams) ([]ServiceRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pool, err := NewStationPool(cfg.Shifts)
	if err != nil {
		return nil, err
	}
	arrivals, err := GenerateArrivals(cfg.Customers, streams.Arrival, cfg.Arrival)
	if err != nil {
		return nil, err
	}
	scheduler := &ServiceScheduler{Source: streams.Service, Dist: cfg.Service}
	records, err := scheduler.Schedule(arrivals, pool)
	if err != nil {
		return nil, err
	}
	if cfg.SortByExit {
		SortByExit(records)
	}
	return records, nil
}
