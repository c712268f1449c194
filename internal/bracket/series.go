package bracket

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/pennant-path/internal/metrics"
)

// SeriesEngine estimates best-of-N series probabilities by simulation.
// Trials are split into fixed-size chunks, each with its own generator seeded
// from the series seed and the chunk index, so a given seed yields the same
// estimate for any worker count.
type SeriesEngine struct {
	trials    int
	chunkSize int
	workers   int
}

// NewSeriesEngine creates an engine from cfg. Unset fields take defaults.
func NewSeriesEngine(cfg Config) *SeriesEngine {
	cfg = cfg.withDefaults()
	return &SeriesEngine{
		trials:    cfg.Trials,
		chunkSize: cfg.ChunkSize,
		workers:   cfg.Workers,
	}
}

// Trials returns the number of simulated series per estimate.
func (e *SeriesEngine) Trials() int {
	return e.trials
}

// WinProbability returns the share of simulated best-of-N series won by a
// side that wins each game independently with probability p.
func (e *SeriesEngine) WinProbability(ctx context.Context, p float64, bestOf int, seed int64) (float64, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidProbability, p)
	}
	if bestOf < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBestOf, bestOf)
	}

	winTarget := bestOf/2 + 1
	chunks := (e.trials + e.chunkSize - 1) / e.chunkSize
	wins := make([]int, chunks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for c := 0; c < chunks; c++ {
		n := e.chunkSize
		if rest := e.trials - c*e.chunkSize; rest < n {
			n = rest
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(deriveSeed(seed, uint64(c))))
			won, err := simulateChunk(gctx, rng, p, winTarget, n)
			wins[c] = won
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, w := range wins {
		total += w
	}
	metrics.RecordSeriesSimulation(strconv.Itoa(bestOf), e.trials)
	return float64(total) / float64(e.trials), nil
}

const cancelCheckInterval = 256

func simulateChunk(ctx context.Context, rng *rand.Rand, p float64, winTarget, trials int) (int, error) {
	won := 0
	for t := 0; t < trials; t++ {
		if t%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return won, err
			}
		}
		wins, losses := 0, 0
		for wins < winTarget && losses < winTarget {
			if rng.Float64() < p {
				wins++
			} else {
				losses++
			}
		}
		if wins == winTarget {
			won++
		}
	}
	return won, nil
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// deriveSeed mixes a base seed with a path of indices into a new seed.
func deriveSeed(base int64, path ...uint64) int64 {
	x := uint64(base)
	for _, p := range path {
		x = splitmix64(x ^ splitmix64(p))
	}
	return int64(x)
}
