package scenario

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/inference-sim/qsim/sim"
)

// maxPlannedShifts bounds cron expansion so a too-frequent schedule cannot
// allocate an unbounded station table.
const maxPlannedShifts = 100000

// ShiftPlan staffs Stations stations for Length every time Schedule fires.
// Every occurrence becomes its own station: a closed station never reopens.
type ShiftPlan struct {
	Schedule string        `yaml:"schedule"`           // 5-field cron expression
	Length   time.Duration `yaml:"length"`             // shift length
	Stations int           `yaml:"stations,omitempty"` // stations per occurrence; 0 = 1
}

// PlanWindow maps wall-clock shift plans onto simulation time.
// Simulation time 0 is Start; one simulation time unit is Unit.
type PlanWindow struct {
	Start   string        `yaml:"start"`          // RFC 3339
	Horizon time.Duration `yaml:"horizon"`        // occurrences at or after Start+Horizon are ignored
	Unit    time.Duration `yaml:"unit,omitempty"` // 0 = 1m
}

// cronParser accepts standard 5-field cron expressions.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Expand lists plan's shifts inside the window, in occurrence order, with
// plan.Stations consecutive stations per occurrence.
func (w *PlanWindow) Expand(plan *ShiftPlan) ([]sim.Shift, error) {
	start, err := time.Parse(time.RFC3339, w.Start)
	if err != nil {
		return nil, fmt.Errorf("plan_window.start: %v: %w", err, sim.ErrInvalidParameters)
	}
	if w.Horizon <= 0 {
		return nil, fmt.Errorf("plan_window.horizon must be positive, got %v: %w", w.Horizon, sim.ErrInvalidParameters)
	}
	unit := w.Unit
	if unit == 0 {
		unit = time.Minute
	}
	if unit < 0 {
		return nil, fmt.Errorf("plan_window.unit must be positive, got %v: %w", unit, sim.ErrInvalidParameters)
	}
	if plan.Length <= 0 {
		return nil, fmt.Errorf("length must be positive, got %v: %w", plan.Length, sim.ErrInvalidParameters)
	}
	if plan.Stations < 0 {
		return nil, fmt.Errorf("stations must be non-negative, got %d: %w", plan.Stations, sim.ErrInvalidParameters)
	}
	perOccurrence := plan.Stations
	if perOccurrence == 0 {
		perOccurrence = 1
	}
	schedule, err := cronParser.Parse(plan.Schedule)
	if err != nil {
		return nil, fmt.Errorf("schedule %q: %v: %w", plan.Schedule, err, sim.ErrInvalidParameters)
	}

	toSim := func(t time.Time) float64 {
		return float64(t.Sub(start)) / float64(unit)
	}
	end := start.Add(w.Horizon)
	var shifts []sim.Shift
	// Next is strictly after its argument; step back one second so an
	// occurrence exactly at Start is included.
	for t := schedule.Next(start.Add(-time.Second)); !t.IsZero() && t.Before(end); t = schedule.Next(t) {
		shift := sim.Shift{Ready: toSim(t), Close: toSim(t.Add(plan.Length))}
		for i := 0; i < perOccurrence; i++ {
			shifts = append(shifts, shift)
		}
		if len(shifts) > maxPlannedShifts {
			return nil, fmt.Errorf("schedule %q expands to more than %d shifts: %w", plan.Schedule, maxPlannedShifts, sim.ErrInvalidParameters)
		}
	}
	return shifts, nil
}
