package sim

import (
	"fmt"
)

// constSource returns the same value for every draw, whatever the DistSpec.
type constSource float64

func (c constSource) Draw(_ DistSpec, n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(c)
	}
	return out, nil
}

// seqSource replays a fixed sequence of values and fails once exhausted.
type seqSource struct {
	values []float64
	next   int
}

func newSeqSource(values ...float64) *seqSource {
	return &seqSource{values: values}
}

func (s *seqSource) Draw(_ DistSpec, n int) ([]float64, error) {
	if s.next+n > len(s.values) {
		return nil, fmt.Errorf("seqSource: %d values left, %d requested", len(s.values)-s.next, n)
	}
	out := append([]float64(nil), s.values[s.next:s.next+n]...)
	s.next += n
	return out, nil
}

// errSource rejects every draw the way a sampler rejects bad parameters.
type errSource struct{}

func (errSource) Draw(dist DistSpec, _ int) ([]float64, error) {
	return nil, fmt.Errorf("distribution %q: %w", dist.Type, ErrInvalidParameters)
}

// lcgSource yields pseudo-random values in [0, scale) from a tiny LCG so
// property tests do not depend on any distribution package.
type lcgSource struct {
	state uint64
	scale float64
}

func (s *lcgSource) Draw(_ DistSpec, n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		s.state = s.state*6364136223846793005 + 1442695040888963407
		out[i] = float64(s.state>>11) / float64(1<<53) * s.scale
	}
	return out, nil
}

var fixedDist = DistSpec{Type: "constant"}

// constStreams builds streams with constant gaps and durations.
func constStreams(gap, duration float64) Streams {
	return Streams{Arrival: constSource(gap), Service: constSource(duration)}
}
