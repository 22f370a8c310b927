// Package sim provides the simulation engine for qsim: a multi-station
// service queue replicated many times to estimate the distribution of
// customer exit times.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - station.go: StationPool, the longest-idle station selection and shift closing
//   - scheduler.go: ServiceScheduler, which turns arrivals into service records
//   - montecarlo.go: RunMonteCarlo, the parallel replication batch
//
// # Architecture
//
// Data flows one way: GenerateArrivals -> ServiceScheduler -> SimulateReplication
// -> RunMonteCarlo -> ExitMatrix. The sim package defines the data types and
// the VariateSource interface; implementations and outer layers live in
// sub-packages:
//   - sim/variate/: VariateSource backed by gonum distuv
//   - sim/scenario/: YAML scenario loading and cron shift plans
//   - sim/analysis/: percentile bands and z-score comparison
//   - sim/export/: Arrow matrix export, record CSV read/write
//
// # Determinism
//
// Every replication draws from its own streams, derived from the master
// SimulationKey and the replication index (see rng.go). Results are
// bit-identical for any worker count.
//
// # Policies
//
// Two behaviours are part of the reproducibility contract: ties between
// equally idle stations go to the lowest index, and a station is checked for
// closure only when it finishes a service, so an unused station stays open
// past its nominal close.
package sim
