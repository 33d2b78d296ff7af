package port

import (
	"sync"
	"time"

	"github.com/flowrun/flow/pkg/engine"
)

// TimedOutput buffers the most recently written value and rebroadcasts
// it to connected inputs once per period, rather than once per Write.
// Any number of writes between ticks is coalesced to the latest value;
// a period with no write at all produces no broadcast that tick.
type TimedOutput[T any] struct {
	outputBase[T]

	mu    sync.Mutex
	value T
	set   bool
}

// NewTimedOutput registers a recurring timer callback on eng that
// broadcasts this output's latest value every period, if a value was
// written since the previous broadcast. Like every
// timer registration, this must happen before eng.Run starts.
func NewTimedOutput[T any](eng *engine.Engine, period time.Duration) *TimedOutput[T] {
	o := &TimedOutput[T]{}
	eng.CreateTimerCallback(period, func(engine.TimePoint) {
		o.tick()
	})
	return o
}

func (o *TimedOutput[T]) Write(value T) {
	o.mu.Lock()
	o.value = value
	o.set = true
	o.mu.Unlock()
}

func (o *TimedOutput[T]) tick() {
	o.mu.Lock()
	value, set := o.value, o.set
	o.set = false
	o.mu.Unlock()

	if !set {
		return
	}
	o.writeValue(value)
}
