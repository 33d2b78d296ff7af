package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default returns a Config with every field set to a sensible value for
// running a demo scenario with no config file at all.
func Default() *Config {
	return &Config{
		Workers:  4,
		LogLevel: "info",
		Scenario: Scenario{
			TimerPeriod:  Duration(100 * time.Millisecond),
			SamplePeriod: Duration(50 * time.Millisecond),
			QueueSize:    10,
			CallTimeout:  Duration(2 * time.Second),
		},
	}
}

// Load reads and parses configuration from a file path, filling in
// Default() for anything the file leaves unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses configuration from YAML bytes, filling in Default() for
// anything the document leaves unset.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logLevel must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	if c.Scenario.QueueSize < 1 {
		return fmt.Errorf("scenario.queueSize must be >= 1, got %d", c.Scenario.QueueSize)
	}
	if c.Scenario.TimerPeriod <= 0 {
		return fmt.Errorf("scenario.timerPeriod must be positive")
	}
	if c.Scenario.SamplePeriod <= 0 {
		return fmt.Errorf("scenario.samplePeriod must be positive")
	}
	if c.Scenario.CallTimeout <= 0 {
		return fmt.Errorf("scenario.callTimeout must be positive")
	}
	return nil
}
