package engine

// workerLoop drains the deferred-callback queue on its own goroutine
// until the engine stops. Workers do not check initValid: they run every
// queued deferred callback, including ones pushed before the engine
// started running (for example from an init callback), whether or not
// any init task failed.
func (e *Engine) workerLoop() {
	<-e.runningLatch.wait()

	if e.metrics != nil {
		e.metrics.activeWorkers.Inc()
		defer e.metrics.activeWorkers.Dec()
	}

	for {
		f, ok := e.queue.pop()
		if !ok {
			return
		}
		if e.metrics != nil {
			e.metrics.queueDepth.Set(float64(e.queue.len()))
		}
		e.recoverCallback("deferred", f)
	}
}
