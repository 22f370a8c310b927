// Package variate implements sim.VariateSource on top of gonum's stat/distuv.
//
// Distribution types and their required params:
//
//	constant     value
//	exponential  mean
//	gamma        shape, scale
//	weibull      shape, scale
//	normal       mean, std_dev
//	lognormal    mu, sigma
//	uniform      min, max
//	triangular   min, mode, max
//	poisson      mean
package variate

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/inference-sim/qsim/sim"
)

// ValidTypes is the set of recognized distribution type names.
var ValidTypes = map[string]bool{
	"constant": true, "exponential": true, "gamma": true, "weibull": true,
	"normal": true, "lognormal": true, "uniform": true, "triangular": true, "poisson": true,
}

// Source draws variates from a single random stream.
// Not safe for concurrent use; give each replication its own Source.
type Source struct {
	src rand.Source
}

// NewSource wraps src. A *rand.Rand from math/rand/v2 is a valid rand.Source.
func NewSource(src rand.Source) *Source {
	return &Source{src: src}
}

// Draw implements sim.VariateSource.
func (s *Source) Draw(dist sim.DistSpec, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("sample count must be non-negative, got %d: %w", n, sim.ErrInvalidParameters)
	}
	rander, err := NewRander(dist, s.src)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = rander.Rand()
	}
	return out, nil
}

// constant is a degenerate distribution; it consumes no randomness.
type constant float64

func (c constant) Rand() float64 { return float64(c) }

// NewRander validates spec and builds the matching distuv distribution
// bound to src.
func NewRander(spec sim.DistSpec, src rand.Source) (distuv.Rander, error) {
	if err := Validate(spec); err != nil {
		return nil, err
	}
	p := spec.Params
	switch spec.Type {
	case "constant":
		return constant(p["value"]), nil
	case "exponential":
		return distuv.Exponential{Rate: 1 / p["mean"], Src: src}, nil
	case "gamma":
		// distuv.Gamma is parameterized by rate.
		return distuv.Gamma{Alpha: p["shape"], Beta: 1 / p["scale"], Src: src}, nil
	case "weibull":
		return distuv.Weibull{K: p["shape"], Lambda: p["scale"], Src: src}, nil
	case "normal":
		return distuv.Normal{Mu: p["mean"], Sigma: p["std_dev"], Src: src}, nil
	case "lognormal":
		return distuv.LogNormal{Mu: p["mu"], Sigma: p["sigma"], Src: src}, nil
	case "uniform":
		return distuv.Uniform{Min: p["min"], Max: p["max"], Src: src}, nil
	case "triangular":
		return distuv.NewTriangle(p["min"], p["max"], p["mode"], src), nil
	case "poisson":
		return distuv.Poisson{Lambda: p["mean"], Src: src}, nil
	default:
		// Validate rejects unknown types before we get here.
		return nil, fmt.Errorf("unknown distribution type %q: %w", spec.Type, sim.ErrInvalidParameters)
	}
}

// Validate checks that spec names a known type with all required params,
// every param finite, and each in its legal range.
func Validate(spec sim.DistSpec) error {
	if !ValidTypes[spec.Type] {
		return fmt.Errorf("unknown distribution type %q; valid: constant, exponential, gamma, weibull, normal, lognormal, uniform, triangular, poisson: %w",
			spec.Type, sim.ErrInvalidParameters)
	}
	for name, val := range spec.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%s.params.%s must be a finite number, got %f: %w", spec.Type, name, val, sim.ErrInvalidParameters)
		}
	}
	p := spec.Params
	switch spec.Type {
	case "constant":
		return requireParam(spec, "value")
	case "exponential", "poisson":
		if err := requireParam(spec, "mean"); err != nil {
			return err
		}
		return requirePositive(spec, "mean")
	case "gamma", "weibull":
		if err := requireParam(spec, "shape", "scale"); err != nil {
			return err
		}
		return requirePositive(spec, "shape", "scale")
	case "normal":
		if err := requireParam(spec, "mean", "std_dev"); err != nil {
			return err
		}
		return requirePositive(spec, "std_dev")
	case "lognormal":
		if err := requireParam(spec, "mu", "sigma"); err != nil {
			return err
		}
		return requirePositive(spec, "sigma")
	case "uniform":
		if err := requireParam(spec, "min", "max"); err != nil {
			return err
		}
		if p["min"] >= p["max"] {
			return fmt.Errorf("uniform: min (%f) must be below max (%f): %w", p["min"], p["max"], sim.ErrInvalidParameters)
		}
	case "triangular":
		if err := requireParam(spec, "min", "mode", "max"); err != nil {
			return err
		}
		if p["min"] >= p["max"] || p["mode"] < p["min"] || p["mode"] > p["max"] {
			return fmt.Errorf("triangular: need min <= mode <= max and min < max, got min=%f mode=%f max=%f: %w",
				p["min"], p["mode"], p["max"], sim.ErrInvalidParameters)
		}
	}
	return nil
}

// requireParam checks that all required keys exist in spec.Params.
func requireParam(spec sim.DistSpec, keys ...string) error {
	for _, k := range keys {
		if _, ok := spec.Params[k]; !ok {
			return fmt.Errorf("%s distribution requires parameter %q: %w", spec.Type, k, sim.ErrInvalidParameters)
		}
	}
	return nil
}

func requirePositive(spec sim.DistSpec, keys ...string) error {
	for _, k := range keys {
		if spec.Params[k] <= 0 {
			return fmt.Errorf("%s.params.%s must be positive, got %f: %w", spec.Type, k, spec.Params[k], sim.ErrInvalidParameters)
		}
	}
	return nil
}

// Streams returns the arrival and service sources of one replication, each
// reading its own subsystem stream of rng.
func Streams(rng *sim.PartitionedRNG) sim.Streams {
	return sim.Streams{
		Arrival: NewSource(rng.ForSubsystem(sim.SubsystemArrival)),
		Service: NewSource(rng.ForSubsystem(sim.SubsystemService)),
	}
}

// StreamFactory derives independent per-replication streams from key.
func StreamFactory(key sim.SimulationKey) sim.StreamFactory {
	return func(r int) sim.Streams {
		return Streams(sim.NewPartitionedRNG(key.ForReplication(r)))
	}
}
