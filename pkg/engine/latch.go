package engine

import "sync"

// latch is a one-shot gate: goroutines block on wait() until open() is
// called exactly once, then every current and future waiter proceeds
// immediately. It replaces the busy-wait spin on an atomic bool that the
// original implementation used for lifecycle phase transitions.
type latch struct {
	once sync.Once
	ch   chan struct{}
}

func newLatch() *latch {
	return &latch{ch: make(chan struct{})}
}

func (l *latch) open() {
	l.once.Do(func() { close(l.ch) })
}

func (l *latch) wait() <-chan struct{} {
	return l.ch
}
