package config

import (
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() failed Validate(): %v", err)
	}
}

func TestParse_OverridesDefaults(t *testing.T) {
	data := []byte(`
workers: 8
logLevel: debug
scenario:
  timerPeriod: 10ms
  queueSize: 5
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if time.Duration(cfg.Scenario.TimerPeriod) != 10*time.Millisecond {
		t.Errorf("TimerPeriod = %v, want 10ms", time.Duration(cfg.Scenario.TimerPeriod))
	}
	if cfg.Scenario.QueueSize != 5 {
		t.Errorf("QueueSize = %d, want 5", cfg.Scenario.QueueSize)
	}
	// Fields the document left unset keep the default's values.
	if cfg.Scenario.SamplePeriod != Default().Scenario.SamplePeriod {
		t.Errorf("SamplePeriod = %v, want the default", cfg.Scenario.SamplePeriod)
	}
}

func TestParse_RejectsInvalidLogLevel(t *testing.T) {
	_, err := Parse([]byte(`logLevel: verbose`))
	if err == nil {
		t.Errorf("Parse accepted an invalid logLevel")
	}
}

func TestParse_RejectsNonPositiveWorkers(t *testing.T) {
	_, err := Parse([]byte(`workers: 0`))
	if err == nil {
		t.Errorf("Parse accepted workers: 0")
	}
}

func TestDuration_RoundTripsThroughYAML(t *testing.T) {
	d := Duration(250 * time.Millisecond)
	out, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML returned error: %v", err)
	}
	s, ok := out.(string)
	if !ok {
		t.Fatalf("MarshalYAML returned %T, want string", out)
	}
	if s != "250ms" {
		t.Errorf("MarshalYAML = %q, want 250ms", s)
	}

	data := []byte("timerPeriod: 250ms\n")
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if time.Duration(scenario.TimerPeriod) != 250*time.Millisecond {
		t.Errorf("unmarshaled TimerPeriod = %v, want 250ms", time.Duration(scenario.TimerPeriod))
	}
}
