package engine

import "time"

// minTick is the shortest the timing goroutine sleeps between samples,
// even when a timer is already due. The distilled algorithm spins with no
// sleep at all; this rendition trades a small amount of dispatch
// latency for bounded CPU use (see REDESIGN FLAGS in SPEC_FULL.md).
const minTick = 1 * time.Millisecond

// timingLoop runs on its own goroutine for the lifetime of the engine.
// It samples the time source, publishes the result, and dispatches any
// timer whose period has elapsed since the last sample.
func (e *Engine) timingLoop() {
	<-e.runningLatch.wait()
	if !e.initValid.Load() {
		return
	}

	initialTimestamp := e.clock.Now().UnixNano()

	for e.running.Load() {
		newTime := e.sampleTime(initialTimestamp)
		e.setTime(newTime)
		e.dispatchTimers(newTime)
		e.sleepUntilNextTick(newTime)
	}
}

// sampleTime obtains the current TimePoint from the user-provided time
// source, or the monotonic default derived from the engine's clock.
func (e *Engine) sampleTime(initialTimestamp int64) TimePoint {
	e.timeSourceMu.Lock()
	source := e.timeSource
	e.timeSourceMu.Unlock()

	if source != nil {
		return source()
	}

	now := e.clock.Now().UnixNano()
	return TimePoint{
		Time:      1e-9 * float64(now-initialTimestamp),
		Timestamp: now,
		Rate:      1,
	}
}

// dispatchTimers enqueues a deferred callback for every timer whose
// next_time has elapsed, advancing next_time by exactly one period. A
// timer fires at most once per sampling pass, even if multiple periods
// have elapsed since the last sample (no catch-up).
func (e *Engine) dispatchTimers(newTime TimePoint) {
	e.timersMu.Lock()
	defer e.timersMu.Unlock()

	for _, t := range e.timers {
		if t.nextTime < newTime.Time {
			timer := t
			sample := newTime
			e.PushCallback(func() {
				e.recoverCallback("timer", func() {
					timer.callback(sample)
				})
			})
			timer.nextTime += timer.period
			if e.metrics != nil {
				e.metrics.timerDispatches.Inc()
			}
		}
	}
}

// sleepUntilNextTick sleeps until the nearest timer is next due, bounded
// below by minTick and above by a short ceiling so Stop is noticed
// promptly.
func (e *Engine) sleepUntilNextTick(current TimePoint) {
	const maxTick = 20 * time.Millisecond

	wait := maxTick
	e.timersMu.Lock()
	for _, t := range e.timers {
		remaining := t.nextTime - current.Time
		if remaining < 0 {
			remaining = 0
		}
		d := time.Duration(remaining * float64(time.Second))
		if d < wait {
			wait = d
		}
	}
	e.timersMu.Unlock()

	if wait < minTick {
		wait = minTick
	}
	e.clock.Sleep(wait)
}
