// Package clock provides time abstractions for deterministic simulation.
//
// In production, use Real() which wraps the standard time package.
// In tests, use NewFakeClock() for deterministic time control.
package clock

import "time"

// Clock provides the time operations the engine needs, real or simulated.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep pauses the current goroutine until the clock has advanced by
	// at least duration d.
	Sleep(d time.Duration)
}
