// Package config loads pickem-schedule settings from a .env file and the
// environment. Command-line flags override these values in the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pfrederiksen/pickem-schedule/internal/logger"
	"github.com/pfrederiksen/pickem-schedule/internal/schedule"
	"github.com/pfrederiksen/pickem-schedule/internal/scraper"
)

const (
	DefaultSeason     = 2025
	DefaultSourceZone = "America/New_York"
	DefaultDestZone   = "America/Chicago"
	DefaultOutputPath = "data/schedule_2025.json"
	DefaultEnvFile    = ".env"
	DefaultLogLevel   = "INFO"
)

// Config holds the settings for one run
type Config struct {
	Season     int
	SourceZone string
	DestZone   string
	URL        string
	OutputPath string
	Timeout    time.Duration
	LogLevel   logger.Level
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Season:     DefaultSeason,
		SourceZone: DefaultSourceZone,
		DestZone:   DefaultDestZone,
		URL:        scraper.ScheduleURL,
		OutputPath: DefaultOutputPath,
		Timeout:    scraper.Timeout,
		LogLevel:   logger.LevelInfo,
	}
}

// Load reads envFile (if it exists) into the environment without overriding
// variables that are already set, then builds a Config from the environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables over the defaults
func FromEnv() (*Config, error) {
	cfg := Default()

	season, err := envInt("SCHEDULE_SEASON", cfg.Season)
	if err != nil {
		return nil, err
	}
	cfg.Season = season

	timeout, err := envDuration("SCHEDULE_TIMEOUT", cfg.Timeout)
	if err != nil {
		return nil, err
	}
	cfg.Timeout = timeout

	level, err := logger.ParseLevel(envOr("LOG_LEVEL", DefaultLogLevel))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.SourceZone = envOr("SCHEDULE_SOURCE_TZ", cfg.SourceZone)
	cfg.DestZone = envOr("SCHEDULE_DEST_TZ", cfg.DestZone)
	cfg.URL = envOr("SCHEDULE_URL", cfg.URL)
	cfg.OutputPath = envOr("SCHEDULE_OUTPUT", cfg.OutputPath)

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Season <= 0 {
		return fmt.Errorf("season must be positive, got %d", c.Season)
	}
	if strings.TrimSpace(c.URL) == "" {
		return fmt.Errorf("schedule URL must be set")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("output path must be set")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, _, err := c.Zones(); err != nil {
		return err
	}
	return nil
}

// Zones resolves the configured source and destination zones
func (c *Config) Zones() (*time.Location, *time.Location, error) {
	return schedule.LoadZones(c.SourceZone, c.DestZone)
}

// ExtractorOptions returns the schedule extraction options for this config
func (c *Config) ExtractorOptions() (schedule.Options, error) {
	src, dst, err := c.Zones()
	if err != nil {
		return schedule.Options{}, err
	}
	return schedule.Options{
		Season:      c.Season,
		Source:      src,
		Destination: dst,
	}, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}
