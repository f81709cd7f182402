// Package verify runs randomized property checks against a slot table.
//
// Each property draws operands from a seeded PCG stream and compares the
// slot result with an exact math/big or IEEE oracle. Iterations are split
// across worker goroutines; every worker owns its own stream so a run is
// reproducible for a given seed and worker count.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/mulslot/pkg/slot"
)

// Property is a named invariant checked on random inputs.
type Property struct {
	Name        string
	Group       string
	Description string
	// Check runs one trial. A non-nil error describes the counterexample.
	Check func(r *rand.Rand, t *slot.Table) error
}

// Result summarizes the trials of one property.
type Result struct {
	Name         string        `json:"name" yaml:"name"`
	Group        string        `json:"group" yaml:"group"`
	Iterations   int           `json:"iterations" yaml:"iterations"`
	Failures     int64         `json:"failures" yaml:"failures"`
	FirstFailure string        `json:"first_failure,omitempty" yaml:"first_failure,omitempty"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
}

// Passed reports whether every trial passed.
func (r Result) Passed() bool { return r.Failures == 0 }

// Options configures a run.
type Options struct {
	Workers    int
	Iterations int
	Seed       uint64
	Logger     *slog.Logger
}

// Run checks every property against table and returns one result per
// property in order. It returns an error only when ctx is cancelled.
func Run(ctx context.Context, table *slot.Table, props []Property, opts Options) ([]Result, error) {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	results := make([]Result, 0, len(props))
	for pi, p := range props {
		start := time.Now()
		res, err := runProperty(ctx, table, p, opts, uint64(pi))
		if err != nil {
			return results, err
		}
		res.Duration = time.Since(start)
		logger.Debug("property checked",
			slog.String("property", p.Name),
			slog.Int("iterations", res.Iterations),
			slog.Int64("failures", res.Failures),
			slog.Duration("duration", res.Duration))
		results = append(results, res)
	}
	return results, nil
}

func runProperty(ctx context.Context, table *slot.Table, p Property, opts Options, stream uint64) (Result, error) {
	var (
		failures atomic.Int64
		firstMu  sync.Mutex
		first    string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	per := opts.Iterations / opts.Workers
	extra := opts.Iterations % opts.Workers
	for w := 0; w < opts.Workers; w++ {
		n := per
		if w < extra {
			n++
		}
		if n == 0 {
			continue
		}
		r := rand.New(rand.NewPCG(opts.Seed, stream<<32|uint64(w)))
		g.Go(func() error {
			for i := 0; i < n; i++ {
				if i%256 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				if err := trial(p, r, table); err != nil {
					if failures.Add(1) == 1 {
						firstMu.Lock()
						first = err.Error()
						firstMu.Unlock()
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return Result{
		Name:         p.Name,
		Group:        p.Group,
		Iterations:   opts.Iterations,
		Failures:     failures.Load(),
		FirstFailure: first,
	}, nil
}

// trial runs one check, turning a panic into a failure.
func trial(p Property, r *rand.Rand, table *slot.Table) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return p.Check(r, table)
}
