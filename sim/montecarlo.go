package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"
)

// FailurePolicy decides what a batch does when a replication runs out of
// open stations.
type FailurePolicy string

const (
	// FailAbort fails the whole batch (default).
	FailAbort FailurePolicy = "abort"
	// FailSkip drops replications that exhausted their stations and keeps
	// the rest. Other errors still abort.
	FailSkip FailurePolicy = "skip"
)

// ValidFailurePolicies is the set of recognized failure policy names.
// Empty means FailAbort.
var ValidFailurePolicies = map[FailurePolicy]bool{"": true, FailAbort: true, FailSkip: true}

// StreamFactory returns the sampling streams for replication r.
// Streams must depend only on r (and whatever seed the factory closes over)
// so results do not depend on worker scheduling.
type StreamFactory func(replication int) Streams

// MonteCarloConfig configures a batch of identical replications.
type MonteCarloConfig struct {
	Queue        QueueConfig
	Replications int                // number of columns (must be > 0)
	Workers      int                // concurrent replications; <= 0 means runtime.NumCPU()
	OnFailure    FailurePolicy      // "" means FailAbort
	Clock        clock.PassiveClock // nil means clock.RealClock{}
}

// MonteCarloResult is the output of RunMonteCarlo.
type MonteCarloResult struct {
	Exits   *ExitMatrix   // Queue.Customers rows x (Replications - len(Skipped)) columns
	Skipped []int         // replication indices dropped under FailSkip, ascending
	Elapsed time.Duration // wall time of the batch
}

func (c *MonteCarloConfig) validate() error {
	if c.Replications <= 0 {
		return fmt.Errorf("replications must be positive, got %d: %w", c.Replications, ErrInvalidParameters)
	}
	if !ValidFailurePolicies[c.OnFailure] {
		return fmt.Errorf("unknown failure policy %q; valid: abort, skip: %w", c.OnFailure, ErrInvalidParameters)
	}
	return c.Queue.Validate()
}

// RunMonteCarlo runs cfg.Replications independent replications and collects
// each run's exit column into an ExitMatrix.
//
// Replications fan out over cfg.Workers goroutines. ctx is checked only
// between replications; a replication in progress always runs to completion.
// Under FailAbort, once replication k fails no replication above k is
// started, and the error of the lowest failing index is returned, so the
// reported failure is the same for every worker count. Under FailSkip a batch
// in which every replication was skipped fails with replication 0's error.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, streams StreamFactory) (*MonteCarloResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	skip := cfg.OnFailure == FailSkip
	start := clk.Now()

	exits := NewExitMatrix(cfg.Queue.Customers, cfg.Replications)
	errs := make([]error, cfg.Replications)
	skippable := make([]bool, cfg.Replications)

	var firstFatal atomic.Int64
	firstFatal.Store(math.MaxInt64)
	pastFatal := func(r int) bool { return int64(r) > firstFatal.Load() }

	var g errgroup.Group
	g.SetLimit(workers)
	for r := 0; r < cfg.Replications; r++ {
		if ctx.Err() != nil || pastFatal(r) {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil || pastFatal(r) {
				return nil
			}
			records, err := SimulateReplication(&cfg.Queue, streams(r))
			if err == nil {
				err = exits.SetColumn(r, ExitTimes(records))
			}
			if err != nil {
				errs[r] = fmt.Errorf("replication %d: %w", r, err)
				if skip && errors.Is(err, ErrStationsExhausted) {
					skippable[r] = true
					return nil
				}
				lowerFatal(&firstFatal, int64(r))
				return nil
			}
			logrus.Debugf("replication %d: %d customers served", r, len(records))
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var skipped []int
	for r, err := range errs {
		if err == nil {
			continue
		}
		if !skippable[r] {
			return nil, err
		}
		logrus.Warnf("skipping %v", err)
		skipped = append(skipped, r)
	}
	if len(skipped) == cfg.Replications {
		return nil, fmt.Errorf("all %d replications skipped: %w", cfg.Replications, errs[skipped[0]])
	}

	result := &MonteCarloResult{
		Exits:   exits.withoutColumns(skipped),
		Skipped: skipped,
		Elapsed: clk.Since(start),
	}
	logrus.Infof("Monte Carlo: %d replications x %d customers (%d skipped) in %v",
		cfg.Replications, cfg.Queue.Customers, len(skipped), result.Elapsed)
	return result, nil
}

// lowerFatal records r as the lowest fatal replication index seen so far.
func lowerFatal(low *atomic.Int64, r int64) {
	for {
		cur := low.Load()
		if r >= cur || low.CompareAndSwap(cur, r) {
			return
		}
	}
}
