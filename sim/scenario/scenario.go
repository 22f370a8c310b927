// Package scenario loads queue scenarios from YAML and turns them into
// engine configuration.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/qsim/sim"
	"github.com/inference-sim/qsim/sim/variate"
)

// Scenario is the top-level scenario configuration.
// Loaded from YAML via LoadScenario(path).
type Scenario struct {
	Version      string            `yaml:"version"`
	Seed         int64             `yaml:"seed"`
	Customers    int               `yaml:"customers"`
	Replications int               `yaml:"replications"`
	Workers      int               `yaml:"workers,omitempty"`      // 0 = runtime.NumCPU()
	OnFailure    sim.FailurePolicy `yaml:"on_failure,omitempty"`   // abort (default) | skip
	SortByExit   *bool             `yaml:"sort_by_exit,omitempty"` // nil = true
	Stations     *int              `yaml:"stations,omitempty"`     // expected station count, checked against shifts
	Arrival      sim.DistSpec      `yaml:"arrival"`
	Service      sim.DistSpec      `yaml:"service"`
	Shifts       []sim.Shift       `yaml:"shifts,omitempty"`
	ShiftPlans   []ShiftPlan       `yaml:"shift_plans,omitempty"`
	PlanWindow   *PlanWindow       `yaml:"plan_window,omitempty"`
}

var validVersions = map[string]bool{"": true, "1": true}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses YAML scenario bytes with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &s, nil
}

// Validate checks every field, expands shift plans, and verifies the
// expanded station count against Stations when set.
func (s *Scenario) Validate() error {
	_, err := s.validate()
	return err
}

// validate checks the scenario and returns its expanded shifts.
func (s *Scenario) validate() ([]sim.Shift, error) {
	if !validVersions[s.Version] {
		return nil, fmt.Errorf("unsupported scenario version %q: %w", s.Version, sim.ErrInvalidParameters)
	}
	if s.Customers <= 0 {
		return nil, fmt.Errorf("customers must be positive, got %d: %w", s.Customers, sim.ErrInvalidParameters)
	}
	if s.Replications <= 0 {
		return nil, fmt.Errorf("replications must be positive, got %d: %w", s.Replications, sim.ErrInvalidParameters)
	}
	if s.Workers < 0 {
		return nil, fmt.Errorf("workers must be non-negative, got %d: %w", s.Workers, sim.ErrInvalidParameters)
	}
	if !sim.ValidFailurePolicies[s.OnFailure] {
		return nil, fmt.Errorf("unknown on_failure %q; valid: abort, skip: %w", s.OnFailure, sim.ErrInvalidParameters)
	}
	if err := variate.Validate(s.Arrival); err != nil {
		return nil, fmt.Errorf("arrival: %w", err)
	}
	if err := variate.Validate(s.Service); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return s.ExpandShifts()
}

// ExpandShifts returns the station shifts in station-index order: explicit
// shifts first, then each plan's occurrences in time order.
func (s *Scenario) ExpandShifts() ([]sim.Shift, error) {
	shifts := append([]sim.Shift(nil), s.Shifts...)
	if len(s.ShiftPlans) > 0 {
		if s.PlanWindow == nil {
			return nil, fmt.Errorf("shift_plans require plan_window: %w", sim.ErrInvalidParameters)
		}
		for i := range s.ShiftPlans {
			planned, err := s.PlanWindow.Expand(&s.ShiftPlans[i])
			if err != nil {
				return nil, fmt.Errorf("shift_plans[%d]: %w", i, err)
			}
			shifts = append(shifts, planned...)
		}
	}
	if len(shifts) == 0 {
		return nil, fmt.Errorf("scenario defines no shifts: %w", sim.ErrShapeMismatch)
	}
	if s.Stations != nil && *s.Stations != len(shifts) {
		return nil, fmt.Errorf("stations is %d but shifts define %d stations: %w", *s.Stations, len(shifts), sim.ErrShapeMismatch)
	}
	return shifts, nil
}

// QueueConfig builds the per-replication engine configuration.
func (s *Scenario) QueueConfig() (*sim.QueueConfig, error) {
	shifts, err := s.validate()
	if err != nil {
		return nil, err
	}
	sortByExit := true
	if s.SortByExit != nil {
		sortByExit = *s.SortByExit
	}
	return &sim.QueueConfig{
		Customers:  s.Customers,
		Arrival:    s.Arrival,
		Service:    s.Service,
		Shifts:     shifts,
		SortByExit: sortByExit,
	}, nil
}

// MonteCarloConfig builds the batch configuration.
func (s *Scenario) MonteCarloConfig() (*sim.MonteCarloConfig, error) {
	queue, err := s.QueueConfig()
	if err != nil {
		return nil, err
	}
	return &sim.MonteCarloConfig{
		Queue:        *queue,
		Replications: s.Replications,
		Workers:      s.Workers,
		OnFailure:    s.OnFailure,
	}, nil
}

// Key returns the simulation key derived from the scenario seed.
func (s *Scenario) Key() sim.SimulationKey {
	return sim.NewSimulationKey(s.Seed)
}
