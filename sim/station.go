package sim

import (
	"fmt"
	"math"
)

// StationState represents the lifecycle state of a station.
type StationState int

const (
	StationOpen StationState = iota
	StationClosed
)

func (s StationState) String() string {
	switch s {
	case StationOpen:
		return "open"
	case StationClosed:
		return "closed"
	default:
		return fmt.Sprintf("StationState(%d)", int(s))
	}
}

// Shift is a station's configured open interval. Close may be +Inf.
type Shift struct {
	Ready float64 `yaml:"ready"`
	Close float64 `yaml:"close"`
}

// Station is one service resource. Ready is only meaningful while the
// station is open; Close never changes after construction.
type Station struct {
	Ready float64
	Close float64
	State StationState
}

// StationPool holds the mutable station table of a single replication.
// It is owned by exactly one replication and never shared.
type StationPool struct {
	stations []Station
	open     int
}

// NewStationPool builds one open station per shift, in shift order.
// The index of a shift is the station ID used in ServiceRecord.Station.
func NewStationPool(shifts []Shift) (*StationPool, error) {
	if len(shifts) == 0 {
		return nil, fmt.Errorf("station pool needs at least one shift: %w", ErrShapeMismatch)
	}
	stations := make([]Station, len(shifts))
	for i, sh := range shifts {
		if math.IsNaN(sh.Ready) || math.IsInf(sh.Ready, 0) {
			return nil, fmt.Errorf("shift[%d]: ready must be finite, got %f: %w", i, sh.Ready, ErrInvalidParameters)
		}
		if math.IsNaN(sh.Close) {
			return nil, fmt.Errorf("shift[%d]: close must not be NaN: %w", i, ErrInvalidParameters)
		}
		stations[i] = Station{Ready: sh.Ready, Close: sh.Close, State: StationOpen}
	}
	return &StationPool{stations: stations, open: len(stations)}, nil
}

// Len returns the number of stations, open or closed.
func (p *StationPool) Len() int {
	return len(p.stations)
}

// OpenCount returns the number of stations still open.
func (p *StationPool) OpenCount() int {
	return p.open
}

// Station returns a copy of station idx.
func (p *StationPool) Station(idx int) Station {
	return p.stations[idx]
}

// SelectStation returns the open station that has been idle the longest,
// i.e. the minimum Ready. Ties are broken by first occurrence (lowest index);
// this ordering is part of the reproducibility contract.
func (p *StationPool) SelectStation() (int, error) {
	best := -1
	for i := range p.stations {
		st := &p.stations[i]
		if st.State != StationOpen {
			continue
		}
		if best < 0 || st.Ready < p.stations[best].Ready {
			best = i
		}
	}
	if best < 0 {
		return -1, ErrStationsExhausted
	}
	return best, nil
}

// RecordService books a completed service on station idx. A finish time at
// or past the station's Close shuts it for good; otherwise the station
// becomes ready again at finish.
func (p *StationPool) RecordService(idx int, finish float64) {
	st := &p.stations[idx]
	if st.State == StationClosed {
		panic(fmt.Sprintf("RecordService: station %d is closed", idx))
	}
	if finish >= st.Close {
		st.State = StationClosed
		p.open--
		return
	}
	st.Ready = finish
}
