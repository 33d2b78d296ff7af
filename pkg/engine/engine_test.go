package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestEngine_InitPollShutdownOrder(t *testing.T) {
	e := New(Config{})

	var initRan, pollRan, shutdownRan atomic.Bool

	e.CreateInitPollShutdownCallback(
		func() bool {
			initRan.Store(true)
			return true
		},
		func() bool {
			pollRan.Store(true)
			return false
		},
		func() {
			shutdownRan.Store(true)
		},
	)

	// The timing goroutine and worker pool keep running independently of
	// any single task's poll body returning false; Stop is what actually
	// ends the run.
	go func() {
		time.Sleep(50 * time.Millisecond)
		e.Stop()
	}()

	done := make(chan struct{})
	go func() {
		e.Run(1)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}

	if !initRan.Load() {
		t.Errorf("init callback did not run")
	}
	if !pollRan.Load() {
		t.Errorf("poll callback did not run")
	}
	if !shutdownRan.Load() {
		t.Errorf("shutdown callback did not run")
	}
}

func TestEngine_InitFailurePoisonsRun(t *testing.T) {
	e := New(Config{})

	var pollRan, shutdownRan atomic.Bool

	e.CreateInitCallback(func() bool { return false })
	e.CreateInitPollShutdownCallback(
		func() bool { return true },
		func() bool {
			pollRan.Store(true)
			return true
		},
		func() {
			shutdownRan.Store(true)
		},
	)

	// A failed init skips every poll body and makes the timing goroutine
	// return at once, but the worker pool keeps running until the engine
	// stops. Something still has to call Stop.
	go func() {
		time.Sleep(50 * time.Millisecond)
		e.Stop()
	}()

	done := make(chan struct{})
	go func() {
		e.Run(1)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}

	if pollRan.Load() {
		t.Errorf("poll body ran despite a failed init elsewhere")
	}
	if !shutdownRan.Load() {
		t.Errorf("shutdown callback did not run for the failing task")
	}
}

func TestEngine_ShutdownOnlyCallbackWaitsForStop(t *testing.T) {
	e := New(Config{})

	var shutdownRan atomic.Bool
	e.CreateShutdownCallback(func() {
		shutdownRan.Store(true)
	})

	go e.Run(1)

	time.Sleep(50 * time.Millisecond)
	if shutdownRan.Load() {
		t.Fatal("shutdown-only callback ran while the engine was still running")
	}

	e.Stop()

	deadline := time.After(2 * time.Second)
	for !shutdownRan.Load() {
		select {
		case <-deadline:
			t.Fatal("shutdown-only callback never ran after Stop")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func TestEngine_PanicInInitPoisonsRun(t *testing.T) {
	e := New(Config{})

	var pollRan atomic.Bool
	e.CreateInitCallback(func() bool {
		panic("init boom")
	})
	e.CreateInitPollCallback(
		func() bool { return true },
		func() bool {
			pollRan.Store(true)
			return true
		},
	)

	go func() {
		time.Sleep(50 * time.Millisecond)
		e.Stop()
	}()

	done := make(chan struct{})
	go func() {
		e.Run(1)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}

	if pollRan.Load() {
		t.Errorf("poll body ran despite a panicking init elsewhere")
	}
}

func TestEngine_StopReturnsPromptly(t *testing.T) {
	e := New(Config{})

	e.CreatePollCallback(func() bool { return true })

	done := make(chan struct{})
	go func() {
		e.Run(2)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	e.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return within bounded time of Stop")
	}
}

func TestEngine_PushCallbackExecutesOnWorker(t *testing.T) {
	e := New(Config{})

	ran := make(chan struct{}, 1)
	e.CreateInitCallback(func() bool {
		e.PushCallback(func() { close(ran) })
		return true
	})

	go e.Run(1)
	defer e.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("pushed callback never ran")
	}
}

func TestEngine_PanicInDeferredCallbackIsRecovered(t *testing.T) {
	e := New(Config{})

	survived := make(chan struct{}, 1)
	e.CreateInitCallback(func() bool {
		e.PushCallback(func() { panic("boom") })
		e.PushCallback(func() { close(survived) })
		return true
	})

	go e.Run(1)
	defer e.Stop()

	select {
	case <-survived:
	case <-time.After(2 * time.Second):
		t.Fatal("worker goroutine did not survive a panicking callback")
	}
}

func TestEngine_GetTimeAdvances(t *testing.T) {
	e := New(Config{})
	go e.Run(1)
	defer e.Stop()

	time.Sleep(50 * time.Millisecond)
	if got := e.GetTime().Time; got <= 0 {
		t.Errorf("GetTime().Time = %v, want > 0 after running", got)
	}
}

func TestEngine_SetTimeSourceOverridesSampling(t *testing.T) {
	e := New(Config{})

	var calls atomic.Int64
	e.SetTimeSource(func() TimePoint {
		calls.Add(1)
		return TimePoint{Time: 42, Timestamp: 42, Rate: 1}
	})

	go e.Run(1)
	defer e.Stop()

	time.Sleep(30 * time.Millisecond)
	if calls.Load() == 0 {
		t.Errorf("custom time source was never called")
	}
	if got := e.GetTime().Time; got != 42 {
		t.Errorf("GetTime().Time = %v, want 42", got)
	}
}
