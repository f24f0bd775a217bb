package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yndnr/hashrest-go/pkg/pow"
)

// BenchTarget is the target identifier used when none is given.
const BenchTarget = "hashrest-bench"

// BenchResult summarizes the trials run at one difficulty.
type BenchResult struct {
	Difficulty   int           `json:"difficulty" yaml:"difficulty"`
	Trials       int           `json:"trials" yaml:"trials"`
	MeanAttempts float64       `json:"mean_attempts" yaml:"mean_attempts"`
	MinAttempts  uint64        `json:"min_attempts" yaml:"min_attempts"`
	MaxAttempts  uint64        `json:"max_attempts" yaml:"max_attempts"`
	MeanElapsed  time.Duration `json:"mean_elapsed" yaml:"mean_elapsed"`
}

// BenchOptions configures Bench.
type BenchOptions struct {
	MaxDifficulty int
	Trials        int
	Workers       int
	Target        string
	// OnTrial is called after each completed search, from worker goroutines.
	OnTrial func()
}

// Bench measures search cost for every difficulty from 0 to
// opts.MaxDifficulty, running opts.Trials independent searches each.
// Each trial draws a fresh timestamp and nonce.
func (s *ProofService) Bench(ctx context.Context, opts BenchOptions) ([]BenchResult, error) {
	if err := pow.ValidateDifficulty(opts.MaxDifficulty); err != nil {
		return nil, mapPowError(err, opts.MaxDifficulty, opts.Target)
	}
	if opts.Trials <= 0 {
		return nil, fmt.Errorf("bench: trials must be positive, got %d", opts.Trials)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = s.concurrency
	}
	target := opts.Target
	if target == "" {
		target = BenchTarget
	}

	levels := opts.MaxDifficulty + 1
	attempts := make([][]uint64, levels)
	elapsed := make([][]time.Duration, levels)
	for d := range levels {
		attempts[d] = make([]uint64, opts.Trials)
		elapsed[d] = make([]time.Duration, opts.Trials)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for d := range levels {
		for i := range opts.Trials {
			g.Go(func() error {
				p, err := s.Prove(gctx, d, target)
				if err != nil {
					return err
				}
				attempts[d][i] = p.Attempts
				elapsed[d][i] = p.Elapsed
				if opts.OnTrial != nil {
					opts.OnTrial()
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]BenchResult, levels)
	for d := range levels {
		results[d] = summarize(d, attempts[d], elapsed[d])
	}
	return results, nil
}

func summarize(difficulty int, attempts []uint64, elapsed []time.Duration) BenchResult {
	r := BenchResult{Difficulty: difficulty, Trials: len(attempts)}
	var total uint64
	var totalElapsed time.Duration
	for i, a := range attempts {
		total += a
		totalElapsed += elapsed[i]
		if i == 0 || a < r.MinAttempts {
			r.MinAttempts = a
		}
		if a > r.MaxAttempts {
			r.MaxAttempts = a
		}
	}
	r.MeanAttempts = float64(total) / float64(len(attempts))
	r.MeanElapsed = totalElapsed / time.Duration(len(attempts))
	return r
}
