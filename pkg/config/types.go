package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings used to construct an engine and run one of
// the demo scenarios in cmd/flowdemo.
type Config struct {
	// Workers is the number of worker goroutines the engine runs. Only
	// the sum scenario reads it; the other scenarios use fixed counts.
	Workers int `yaml:"workers"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`

	Scenario Scenario `yaml:"scenario"`
}

// Scenario holds per-scenario demo parameters. The service scenario
// reads QueueSize and CallTimeout.
type Scenario struct {
	// TimerPeriod is a timer period setting. It is parsed and validated,
	// but no flowdemo scenario reads it; the scenarios use fixed periods.
	TimerPeriod Duration `yaml:"timerPeriod"`

	// SamplePeriod is a sampling period setting. It is parsed and
	// validated, but no flowdemo scenario reads it.
	SamplePeriod Duration `yaml:"samplePeriod"`

	// QueueSize bounds a CallbackInput's backing ring buffer.
	QueueSize int `yaml:"queueSize"`

	// CallTimeout bounds how long a synchronous service call waits.
	CallTimeout Duration `yaml:"callTimeout"`
}

// Duration is a time.Duration that marshals to and from YAML as a
// human-readable string such as "250ms" instead of a raw integer count
// of nanoseconds.
type Duration time.Duration

// UnmarshalYAML implements custom YAML unmarshaling for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements custom YAML marshaling for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	if d == 0 {
		return "", nil
	}
	return time.Duration(d).String(), nil
}
