package engine

import "github.com/prometheus/client_golang/prometheus"

// Metrics publishes the engine's internal counters to Prometheus. It is
// optional additive instrumentation; an Engine with a nil *Metrics runs
// exactly as it would without one.
type Metrics struct {
	queueDepth      prometheus.Gauge
	timerDispatches prometheus.Counter
	activeWorkers   prometheus.Gauge
	panicsRecovered prometheus.Counter
}

// NewMetrics creates engine metrics and registers them with reg. If reg
// is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flow_engine_queue_depth",
			Help: "Number of deferred callbacks currently queued.",
		}),
		timerDispatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flow_engine_timer_dispatches_total",
			Help: "Total number of timer callbacks enqueued by the timing goroutine.",
		}),
		activeWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flow_engine_active_workers",
			Help: "Number of worker goroutines currently running.",
		}),
		panicsRecovered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flow_engine_callback_panics_total",
			Help: "Total number of user callback panics recovered at the worker or timing boundary.",
		}),
	}

	reg.MustRegister(m.queueDepth, m.timerDispatches, m.activeWorkers, m.panicsRecovered)
	return m
}
