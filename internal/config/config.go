// Package config provides configuration management for pennant-path.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Ledger     LedgerConfig     `mapstructure:"ledger" validate:"required"`
	Features   FeaturesConfig   `mapstructure:"features"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Standings  StandingsConfig  `mapstructure:"standings"`
	Predictor  PredictorConfig  `mapstructure:"predictor"`
	Projection ProjectionConfig `mapstructure:"projection"`
	Backtest   BacktestConfig   `mapstructure:"backtest"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Secrets    SecretsConfig    `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MinConnections int    `mapstructure:"min_connections" validate:"omitempty,gte=0"`
}

// LedgerConfig represents the rating ledger parameters
type LedgerConfig struct {
	Roster          []string `mapstructure:"roster" validate:"required,min=2,unique,dive,required"`
	InitialStrength float64  `mapstructure:"initial_strength" validate:"gt=0"`
	KFactor         float64  `mapstructure:"k_factor" validate:"gt=0"`
	FormWindow      int      `mapstructure:"form_window" validate:"gt=0"`
}

// FeaturesConfig represents feature extraction configuration
type FeaturesConfig struct {
	FocusTeam string `mapstructure:"focus_team"`
}

// SimulationConfig represents bracket simulation configuration
type SimulationConfig struct {
	Trials         int    `mapstructure:"trials" validate:"gt=0,lte=10000000"`
	Seed           int64  `mapstructure:"seed"`
	Workers        int    `mapstructure:"workers" validate:"gte=0"`
	ChunkSize      int    `mapstructure:"chunk_size" validate:"gt=0"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
	OpponentPolicy string `mapstructure:"opponent_policy" validate:"required,opponentpolicy"`
	QualifierCount int    `mapstructure:"qualifier_count" validate:"gte=1,lte=5"`
}

// StandingsConfig selects how final standings are ranked
type StandingsConfig struct {
	RankingSource string   `mapstructure:"ranking_source" validate:"required,rankingsource"`
	ManualOrder   []string `mapstructure:"manual_order"`
}

// PredictorConfig represents the outcome predictor configuration
type PredictorConfig struct {
	Source          string  `mapstructure:"source" validate:"required,probabilitysource"`
	URL             string  `mapstructure:"url" validate:"omitempty,url"`
	APIKey          string  `mapstructure:"api_key"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries      int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit       float64 `mapstructure:"rate_limit" validate:"gte=0"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// ProjectionConfig represents season outlook configuration
type ProjectionConfig struct {
	GamesPerSeason int `mapstructure:"games_per_season" validate:"gt=0"`
}

// BacktestConfig represents the prediction accuracy replay configuration
type BacktestConfig struct {
	RecentWindow int `mapstructure:"recent_window" validate:"gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// SecretsConfig points at an optional AWS Secrets Manager secret
type SecretsConfig struct {
	AWSRegion  string `mapstructure:"aws_region"`
	SecretName string `mapstructure:"secret_name"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// HasDatabase reports whether a database connection is configured
func (c *Config) HasDatabase() bool {
	return c.Database.Host != "" && c.Database.Name != ""
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SimulationTimeout returns the projection deadline, zero for none
func (c *Config) SimulationTimeout() time.Duration {
	return time.Duration(c.Simulation.TimeoutSeconds) * time.Second
}

// CacheTTL returns the pairwise probability cache lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Predictor.CacheTTLSeconds) * time.Second
}
