package engine

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewMetrics_RegistersWithProvidedRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather returned error: %v", err)
	}
	if len(families) != 4 {
		t.Errorf("registered %d metric families, want 4", len(families))
	}
}

func TestEngine_TimerDispatchIncrementsMetric(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	e := New(Config{Metrics: m})

	e.CreateTimerCallback(10*time.Millisecond, func(TimePoint) {})

	go e.Run(1)
	defer e.Stop()

	time.Sleep(100 * time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather returned error: %v", err)
	}
	var found bool
	for _, f := range families {
		if f.GetName() == "flow_engine_timer_dispatches_total" {
			found = true
			if got := f.Metric[0].GetCounter().GetValue(); got <= 0 {
				t.Errorf("flow_engine_timer_dispatches_total = %v, want > 0", got)
			}
		}
	}
	if !found {
		t.Fatalf("flow_engine_timer_dispatches_total metric not found")
	}
}
