// Package config loads and persists the application configuration from
// a TOML file under the user's home directory (~/.highcard/config.toml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Player configuration
	Player PlayerConfig `toml:"player"`

	// Database configuration
	Database DatabaseConfig `toml:"database"`

	// AI opponent configuration
	AI AIConfig `toml:"ai"`

	// Season configuration
	Season SeasonConfig `toml:"season"`

	// API server configuration
	API APIConfig `toml:"api"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// PlayerConfig contains the local player's identity settings.
type PlayerConfig struct {
	Username string `toml:"username"` // Display name used for new profiles
}

// DatabaseConfig contains sqlite storage settings.
type DatabaseConfig struct {
	Path string `toml:"path"` // Path to the sqlite database (empty = default)
}

// AIConfig controls simulated opponent behavior in the CLI.
type AIConfig struct {
	MinThinkDelay string `toml:"min_think_delay"` // Lower bound for simulated thinking (e.g., "300ms")
	MaxThinkDelay string `toml:"max_think_delay"` // Upper bound for simulated thinking (e.g., "1200ms")
}

// SeasonConfig contains season calendar settings.
type SeasonConfig struct {
	// SeasonOneStart overrides the first season's start date (RFC 3339 date,
	// e.g., "2025-09-01"). Empty uses the built-in default.
	SeasonOneStart string `toml:"season_one_start"`
}

// APIConfig contains the local REST API settings.
type APIConfig struct {
	Port         int  `toml:"port"`           // Listen port for the API server
	RateLimitRPS int  `toml:"rate_limit_rps"` // Requests per second per server (0 = unlimited)
	EnableCORS   bool `toml:"enable_cors"`    // Allow browser clients on other origins
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Player: PlayerConfig{
			Username: "Player",
		},
		Database: DatabaseConfig{
			Path: "",
		},
		AI: AIConfig{
			MinThinkDelay: "300ms",
			MaxThinkDelay: "1200ms",
		},
		Season: SeasonConfig{
			SeasonOneStart: "",
		},
		API: APIConfig{
			Port:         8085,
			RateLimitRPS: 20,
			EnableCORS:   true,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// Dir returns the application data directory, creating it if needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".highcard")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return dir, nil
}

// Path returns the path to the configuration file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	min, err := time.ParseDuration(c.AI.MinThinkDelay)
	if err != nil {
		return fmt.Errorf("invalid min think delay %q: %w", c.AI.MinThinkDelay, err)
	}

	max, err := time.ParseDuration(c.AI.MaxThinkDelay)
	if err != nil {
		return fmt.Errorf("invalid max think delay %q: %w", c.AI.MaxThinkDelay, err)
	}

	if min < 0 || max < 0 {
		return fmt.Errorf("think delays cannot be negative")
	}
	if max < min {
		return fmt.Errorf("max think delay %s is below min %s", c.AI.MaxThinkDelay, c.AI.MinThinkDelay)
	}

	if c.Season.SeasonOneStart != "" {
		if _, err := time.Parse("2006-01-02", c.Season.SeasonOneStart); err != nil {
			return fmt.Errorf("invalid season one start %q: %w", c.Season.SeasonOneStart, err)
		}
	}

	if c.API.Port < 0 || c.API.Port > 65535 {
		return fmt.Errorf("invalid API port: %d", c.API.Port)
	}
	if c.API.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit cannot be negative: %d", c.API.RateLimitRPS)
	}

	return nil
}

// DatabasePath returns the configured database path, or the default
// location under the application data directory.
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "highcard.db"), nil
}

// ThinkDelayBounds returns the AI think delay range as durations.
func (c *Config) ThinkDelayBounds() (time.Duration, time.Duration, error) {
	min, err := time.ParseDuration(c.AI.MinThinkDelay)
	if err != nil {
		return 0, 0, err
	}
	max, err := time.ParseDuration(c.AI.MaxThinkDelay)
	if err != nil {
		return 0, 0, err
	}
	return min, max, nil
}

// SeasonOneStart returns the configured season-one start date, or the
// provided fallback when unset.
func (c *Config) SeasonOneStartOr(fallback time.Time) time.Time {
	if c.Season.SeasonOneStart == "" {
		return fallback
	}
	t, err := time.Parse("2006-01-02", c.Season.SeasonOneStart)
	if err != nil {
		return fallback
	}
	return t.UTC()
}
