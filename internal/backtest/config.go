package backtest

import (
	"fmt"

	"github.com/yourusername/pennant-path/internal/config"
)

// DefaultRecentWindow is the number of trailing predictions scored separately.
const DefaultRecentWindow = 10

// Config holds the accuracy replay settings
type Config struct {
	RecentWindow int
}

// DefaultConfig returns the replay defaults
func DefaultConfig() Config {
	return Config{RecentWindow: DefaultRecentWindow}
}

// FromConfig converts app config to replay config
func FromConfig(cfg *config.BacktestConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("backtest config is required")
	}
	bt := Config{RecentWindow: cfg.RecentWindow}
	return bt, bt.Validate()
}

// Validate validates replay config parameters
func (c Config) Validate() error {
	if c.RecentWindow <= 0 {
		return fmt.Errorf("recent window must be positive, got %d", c.RecentWindow)
	}
	return nil
}
