package engine

// CreateInitCallback registers a task with only an init phase. The
// engine waits for every init task to finish before flipping to running;
// init failure poisons the run but does not stop other init tasks from
// finishing (see CreateInitPollCallback for the general failure rule).
func (e *Engine) CreateInitCallback(init InitFunc) {
	e.initCount.Add(1)
	e.initWG.Add(1)
	e.spawn(func() {
		<-e.startInitLatch.wait()
		e.runInit(init)
	})
}

// CreatePollCallback registers a task with only a poll phase. The poll
// body runs repeatedly while the engine is running and the body keeps
// returning true; it never runs at all if any init task failed.
func (e *Engine) CreatePollCallback(poll PollFunc) {
	e.spawn(func() {
		<-e.runningLatch.wait()
		if !e.initValid.Load() {
			return
		}
		e.runPoll(poll)
	})
}

// CreateInitPollCallback registers a task with an init phase followed by
// a poll phase. If init returns false, the poll phase never runs.
func (e *Engine) CreateInitPollCallback(init InitFunc, poll PollFunc) {
	e.initCount.Add(1)
	e.initWG.Add(1)
	e.spawn(func() {
		<-e.startInitLatch.wait()
		if !e.runInit(init) {
			return
		}
		<-e.runningLatch.wait()
		if !e.initValid.Load() {
			return
		}
		e.runPoll(poll)
	})
}

// CreatePollShutdownCallback registers a task with a poll phase followed
// by a shutdown phase. The shutdown phase always runs, even if a
// different task's init failed.
func (e *Engine) CreatePollShutdownCallback(poll PollFunc, shutdown ShutdownFunc) {
	e.spawn(func() {
		<-e.runningLatch.wait()
		if e.initValid.Load() {
			e.runPoll(poll)
		}
		e.runShutdown(shutdown)
	})
}

// CreateInitPollShutdownCallback registers a task with all three phases.
// Shutdown always runs; poll is skipped if init failed (this task's own,
// or any other task's).
func (e *Engine) CreateInitPollShutdownCallback(init InitFunc, poll PollFunc, shutdown ShutdownFunc) {
	e.initCount.Add(1)
	e.initWG.Add(1)
	e.spawn(func() {
		<-e.startInitLatch.wait()
		if !e.runInit(init) {
			e.runShutdown(shutdown)
			return
		}
		<-e.runningLatch.wait()
		if e.initValid.Load() {
			e.runPoll(poll)
		}
		e.runShutdown(shutdown)
	})
}

// CreateShutdownCallback registers a task whose only phase is shutdown.
// With no poll phase to block on running, it waits out the running phase
// itself before shutting down (whether or not any init task failed).
func (e *Engine) CreateShutdownCallback(shutdown ShutdownFunc) {
	e.spawn(func() {
		<-e.runningLatch.wait()
		<-e.stoppedLatch.wait()
		e.runShutdown(shutdown)
	})
}

// spawn tracks f on the engine's WaitGroup and runs it in its own
// goroutine. Registration methods call this immediately: the goroutine
// starts right away and blocks on the relevant latch, mirroring the
// original implementation where registering a callback already started
// its background thread.
func (e *Engine) spawn(f func()) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		f()
	}()
}

// runInit executes an init function, recovering panics as failures, and
// always decrements initCount exactly once.
func (e *Engine) runInit(init InitFunc) bool {
	defer e.initCount.Add(-1)
	defer e.initWG.Done()

	ok := false
	e.recoverCallback("init", func() {
		ok = init()
	})
	if !ok {
		e.initValid.Store(false)
		e.logger.Warn("init callback failed; poisoning run")
	}
	return ok
}

// runPoll repeatedly invokes poll while the engine is running and poll
// keeps returning true.
func (e *Engine) runPoll(poll PollFunc) {
	for e.running.Load() {
		keepGoing := false
		e.recoverCallback("poll", func() {
			keepGoing = poll()
		})
		if !keepGoing {
			return
		}
	}
}

// runShutdown invokes shutdown exactly once, recovering any panic.
func (e *Engine) runShutdown(shutdown ShutdownFunc) {
	if shutdown == nil {
		return
	}
	e.recoverCallback("shutdown", shutdown)
}
