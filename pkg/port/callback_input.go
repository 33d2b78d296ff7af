package port

import (
	"sync"

	"github.com/flowrun/flow/pkg/engine"
)

// defaultQueueSize matches the embedding contract's default queue_size=10.
const defaultQueueSize = 10

// CallbackInput queues written values in a bounded ring buffer and
// invokes callback once per value, in write order, on a worker
// goroutine via the engine's deferred-callback pool. A queue slot is
// only freed once callback returns for the value occupying it, so a
// slow callback applies back-pressure to the writer exactly as long as
// it takes to drain, not just until its value is dequeued.
//
// A write that arrives while the queue is full blocks the writer until
// a slot frees up. The distilled algorithm spins on an atomic flag to
// get the same effect; this rendition parks the writer on a condition
// variable instead (see REDESIGN FLAGS in SPEC_FULL.md).
type CallbackInput[T any] struct {
	eng      *engine.Engine
	callback func(T)

	posMu sync.Mutex
	cond  *sync.Cond
	queue []T
	front int
	size  int

	// procMu serializes process() across concurrent worker goroutines,
	// so a ring slot's value and its eventual advance of front always
	// belong to the same call, however many workers the engine runs.
	procMu sync.Mutex
}

// NewCallbackInput creates a CallbackInput backed by eng's worker pool.
// queueSize is optional; omitting it, or passing a value <= 0, uses
// defaultQueueSize.
func NewCallbackInput[T any](eng *engine.Engine, callback func(T), queueSize ...int) *CallbackInput[T] {
	n := defaultQueueSize
	if len(queueSize) > 0 && queueSize[0] > 0 {
		n = queueSize[0]
	}
	c := &CallbackInput[T]{
		eng:      eng,
		callback: callback,
		queue:    make([]T, n),
	}
	c.cond = sync.NewCond(&c.posMu)
	return c
}

func (c *CallbackInput[T]) writeFunc() func(T) {
	return c.write
}

func (c *CallbackInput[T]) write(value T) {
	c.posMu.Lock()
	for c.size == len(c.queue) {
		c.cond.Wait()
	}
	back := (c.front + c.size) % len(c.queue)
	c.queue[back] = value
	c.size++
	c.posMu.Unlock()

	c.eng.PushCallback(c.process)
}

// process invokes callback with the oldest queued value and only then
// frees its slot. It always runs on a worker goroutine, never on the
// writer's.
func (c *CallbackInput[T]) process() {
	c.procMu.Lock()
	defer c.procMu.Unlock()

	c.posMu.Lock()
	value := c.queue[c.front]
	c.posMu.Unlock()

	c.callback(value)

	c.posMu.Lock()
	var zero T
	c.queue[c.front] = zero
	c.front = (c.front + 1) % len(c.queue)
	c.size--
	c.posMu.Unlock()
	c.cond.Signal()
}
