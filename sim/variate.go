package sim

// DistSpec identifies a distribution and its parameters.
// Type names and parameter keys are resolved by the VariateSource.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// VariateSource is the injected random-variate sampling capability.
// The engine never inspects the shape of the distribution.
type VariateSource interface {
	// Draw returns n samples from dist. Errors wrap ErrInvalidParameters
	// when the distribution is unknown or its parameters are rejected.
	Draw(dist DistSpec, n int) ([]float64, error)
}

// Streams holds the two independent sampling streams one replication consumes.
type Streams struct {
	Arrival VariateSource
	Service VariateSource
}
