package engine

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/flowrun/flow/pkg/clock"
)

// TimerFunc is invoked by the timing goroutine, via the worker pool, each
// time a registered period elapses.
type TimerFunc func(TimePoint)

// PollFunc is the repeatable body of a poll-style task. It runs while the
// engine is running and the function keeps returning true.
type PollFunc func() bool

// InitFunc runs once during the init phase. Returning false poisons the
// run: no poll body anywhere in the engine will execute.
type InitFunc func() bool

// ShutdownFunc runs exactly once as a task's final phase.
type ShutdownFunc func()

// TimeSourceFunc returns the engine's current TimePoint. Implementations
// must be safe to call from the timing goroutine only (the engine never
// calls it concurrently from two goroutines).
type TimeSourceFunc func() TimePoint

// Config configures a new Engine. All fields are optional.
type Config struct {
	// Clock backs the default time source. Defaults to clock.Real().
	Clock clock.Clock

	// Logger receives structured log lines for lifecycle transitions,
	// programmer-misuse warnings, and recovered callback panics.
	// Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics, if set, receives Prometheus instrumentation. Optional.
	Metrics *Metrics
}

// Engine coordinates the timer scheduler, the deferred-callback worker
// pool, and the init/poll/shutdown lifecycle of every registered task.
//
// The zero value is not usable; construct with New.
type Engine struct {
	clock   clock.Clock
	logger  *slog.Logger
	metrics *Metrics

	timeSourceMu sync.Mutex
	timeSource   TimeSourceFunc

	startInitLatch *latch
	runningLatch   *latch
	stoppedLatch   *latch
	stopOnce       sync.Once

	running   atomic.Bool
	initCount atomic.Int32
	initWG    sync.WaitGroup
	initValid atomic.Bool
	started   atomic.Bool // true once Run has begun spawning goroutines

	timeMu sync.RWMutex
	time   TimePoint

	timersMu sync.Mutex
	timers   []*timerRecord

	queue *callbackQueue

	wg sync.WaitGroup
}

type timerRecord struct {
	period   float64 // seconds
	nextTime float64 // seconds
	callback TimerFunc
}

// New creates an Engine ready for registration. Call Run to start it.
func New(cfg Config) *Engine {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		clock:          clk,
		logger:         logger.With(slog.String("component", "flow-engine")),
		metrics:        cfg.Metrics,
		startInitLatch: newLatch(),
		runningLatch:   newLatch(),
		stoppedLatch:   newLatch(),
		queue:          newCallbackQueue(),
	}
	e.initValid.Store(true)
	return e
}

// PushCallback enqueues a one-shot deferred callback to run on a worker
// goroutine. Valid to call at any time after workers start; callbacks
// pushed before Run simply wait in the queue until the first worker
// drains it.
func (e *Engine) PushCallback(f func()) {
	if e.metrics != nil {
		e.metrics.queueDepth.Set(float64(e.queue.len() + 1))
	}
	e.queue.push(f)
}

// CreateTimerCallback registers a periodic callback invoked every period
// while the engine runs. Timer callbacks may only be registered before
// Run; registering after Run has started is a programmer error, logged
// and ignored.
func (e *Engine) CreateTimerCallback(period time.Duration, callback TimerFunc) {
	if e.started.Load() {
		e.logger.Error("CreateTimerCallback called after Run started; ignoring")
		return
	}

	e.timersMu.Lock()
	e.timers = append(e.timers, &timerRecord{
		period:   period.Seconds(),
		nextTime: 0,
		callback: callback,
	})
	e.timersMu.Unlock()
}

// GetTime returns the engine's most recently published TimePoint.
func (e *Engine) GetTime() TimePoint {
	e.timeMu.RLock()
	defer e.timeMu.RUnlock()
	return e.time
}

func (e *Engine) setTime(t TimePoint) {
	e.timeMu.Lock()
	e.time = t
	e.timeMu.Unlock()
}

// SetTimeSource overrides the engine's default real-time clock with a
// caller-supplied source, enabling simulated or played-back time. Must be
// called before Run.
func (e *Engine) SetTimeSource(source TimeSourceFunc) {
	e.timeSourceMu.Lock()
	e.timeSource = source
	e.timeSourceMu.Unlock()
}

// Stop causes Run to return once every spawned goroutine observes it.
// Callbacks already queued but not yet started are discarded, not
// drained. Safe to call from any goroutine, any number of times.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.running.Store(false)
		e.queue.stop()
		e.stoppedLatch.open()
	})
}

// recoverCallback runs f, recovering and logging any panic so a single
// misbehaving user callback cannot take down the worker or timing
// goroutine that invokes it.
func (e *Engine) recoverCallback(label string, f func()) {
	defer func() {
		if r := recover(); r != nil {
			if e.metrics != nil {
				e.metrics.panicsRecovered.Inc()
			}
			e.logger.Error("recovered panic in callback",
				slog.String("callback", label),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	f()
}
