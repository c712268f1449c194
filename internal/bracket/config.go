package bracket

import (
	"runtime"
	"time"

	"github.com/yourusername/pennant-path/internal/config"
)

// OpponentPolicy decides who the focus team meets when its opponent is the
// winner of a sub-bracket.
type OpponentPolicy string

const (
	// PolicyFavorite assumes the best-seeded team of the sub-bracket advances.
	PolicyFavorite OpponentPolicy = "favorite"
	// PolicyWeighted mixes over the simulated distribution of sub-bracket winners.
	PolicyWeighted OpponentPolicy = "weighted"
)

// Defaults
const (
	DefaultTrials         = 5000
	DefaultChunkSize      = 500
	DefaultQualifierCount = 5
)

// Config configures a Simulator
type Config struct {
	Trials         int
	Seed           int64
	Workers        int
	ChunkSize      int
	Timeout        time.Duration
	OpponentPolicy OpponentPolicy
	QualifierCount int
}

// DefaultConfig returns the standard simulation settings with a time-based seed.
func DefaultConfig() Config {
	return Config{
		Trials:         DefaultTrials,
		Workers:        runtime.NumCPU(),
		ChunkSize:      DefaultChunkSize,
		OpponentPolicy: PolicyFavorite,
		QualifierCount: DefaultQualifierCount,
	}
}

// ConfigFrom maps application configuration onto simulator settings.
func ConfigFrom(cfg *config.Config) Config {
	sim := cfg.Simulation
	return Config{
		Trials:         sim.Trials,
		Seed:           sim.Seed,
		Workers:        sim.Workers,
		ChunkSize:      sim.ChunkSize,
		Timeout:        cfg.SimulationTimeout(),
		OpponentPolicy: OpponentPolicy(sim.OpponentPolicy),
		QualifierCount: sim.QualifierCount,
	}
}

func (c Config) withDefaults() Config {
	if c.Trials <= 0 {
		c.Trials = DefaultTrials
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.OpponentPolicy == "" {
		c.OpponentPolicy = PolicyFavorite
	}
	if c.QualifierCount <= 0 || c.QualifierCount > len(Rounds)+1 {
		c.QualifierCount = DefaultQualifierCount
	}
	return c
}
