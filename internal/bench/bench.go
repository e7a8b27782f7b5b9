// Package bench generates batches of levels in parallel and reports
// aggregate statistics about the generator.
package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/wiregrid/internal/wiregrid/core"
)

// Result is the outcome of one level in a batch.
type Result struct {
	Index      int
	Seed       int64
	Generated  bool
	Valid      bool
	PathLength int
	Attempts   int
	Err        error // Set when generation was exhausted
}

// Stats aggregates a batch.
type Stats struct {
	Difficulty        core.Difficulty
	BaseSeed          int64
	Total             int
	Successful        int
	Failed            int
	Valid             int
	Invalid           int
	AveragePathLength float64 // Over successful levels
	AverageAttempts   float64 // Over successful levels
	Duration          time.Duration
	Results           []Result
}

// SuccessRate returns the fraction of levels that were generated.
func (s Stats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Successful) / float64(s.Total)
}

// Run generates count levels of difficulty d with at most workers running at
// once. Level i uses seed opts.Seed+i, so a batch with a fixed base seed is
// reproducible regardless of scheduling. A zero base seed is replaced by the
// current time. Exhausted levels count as failures; malformed options, a
// negative count and cancellation abort the batch.
func Run(ctx context.Context, gen *core.Generator, d core.Difficulty, opts core.Options, count, workers int) (Stats, error) {
	if count < 0 {
		return Stats{}, fmt.Errorf("%w: level count %d is negative", core.ErrInvalidOptions, count)
	}

	base := opts.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}
	if workers <= 0 {
		workers = 1
	}

	stats := Stats{
		Difficulty: d,
		BaseSeed:   base,
		Total:      count,
		Results:    make([]Result, count),
	}
	started := time.Now()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < count; i++ {
		levelOpts := opts
		levelOpts.Seed = levelSeed(base, i, count)

		g.Go(func() error {
			res := Result{Index: i, Seed: levelOpts.Seed}

			level, err := gen.Generate(gCtx, d, levelOpts)
			switch {
			case errors.Is(err, core.ErrGenerationExhausted):
				res.Err = err
			case err != nil:
				return err
			default:
				res.Generated = true
				res.PathLength = level.SolvedPathLength
				res.Attempts = level.Metadata.GenerationAttempts
				res.Valid = core.ValidateLevel(level).Valid
			}

			stats.Results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	stats.Duration = time.Since(started)
	stats.aggregate()
	return stats, nil
}

// levelSeed returns the seed of level i. Zero would make the generator
// fall back to the clock, so it maps to base+count, which no other level
// of the batch uses.
func levelSeed(base int64, i, count int) int64 {
	seed := base + int64(i)
	if seed == 0 {
		seed = base + int64(count)
	}
	return seed
}

func (s *Stats) aggregate() {
	var pathSum, attemptSum int
	for _, r := range s.Results {
		if !r.Generated {
			s.Failed++
			continue
		}
		s.Successful++
		pathSum += r.PathLength
		attemptSum += r.Attempts
		if r.Valid {
			s.Valid++
		} else {
			s.Invalid++
		}
	}
	if s.Successful > 0 {
		s.AveragePathLength = float64(pathSum) / float64(s.Successful)
		s.AverageAttempts = float64(attemptSum) / float64(s.Successful)
	}
}
