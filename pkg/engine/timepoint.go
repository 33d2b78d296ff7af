package engine

// TimePoint is a monotonic sample of the engine clock.
//
// If using real time: Time is elapsed seconds since the engine started,
// Timestamp is nanoseconds since the Unix epoch, and Rate is 1.
// If using simulated or played-back time: Time is elapsed system time
// since the start of the simulation (not the same as real time),
// Timestamp is nanoseconds since the start of the simulation, and Rate
// is the ratio between real time and simulated time (e.g. 2 if the
// simulation runs twice as fast as real time).
type TimePoint struct {
	Time      float64
	Timestamp int64
	Rate      float64
}

// Duration is the difference between two TimePoints.
type Duration struct {
	Elapsed          float64
	ElapsedTimestamp int64
}

// Sub returns the Duration elapsed between other and t (t - other).
func (t TimePoint) Sub(other TimePoint) Duration {
	return Duration{
		Elapsed:          t.Time - other.Time,
		ElapsedTimestamp: t.Timestamp - other.Timestamp,
	}
}
