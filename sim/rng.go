package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results, independent of worker count.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// ForReplication derives the key of replication r.
// Derivation: key XOR fnv1a64("replication_<r>"), so a replication's streams
// depend only on the master seed and its index, never on execution order.
func (k SimulationKey) ForReplication(r int) SimulationKey {
	return SimulationKey(int64(k) ^ fnv1a64(fmt.Sprintf("replication_%d", r)))
}

// === Subsystem Constants ===

const (
	// SubsystemArrival is the RNG subsystem for inter-arrival gaps.
	SubsystemArrival = "arrival"

	// SubsystemService is the RNG subsystem for service durations.
	// Kept apart from arrivals so that changing the station layout does not
	// perturb the arrival sequence.
	SubsystemService = "service"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Each subsystem stream is a PCG seeded with (key, fnv1a64(subsystemName)).
//
// Thread-safety: NOT thread-safe. One PartitionedRNG per replication.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewPCG(uint64(p.key), uint64(fnv1a64(name))))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
