// Package engine implements the dataflow execution engine: the lifecycle
// coordinator, timer scheduler, and deferred-callback worker pool that
// drive a graph of connected ports (see package port).
//
// A graph is built by constructing nodes against an *Engine, registering
// timer and lifecycle callbacks before Run is called. Run spawns the
// timing goroutine and the worker goroutines, drives every registered
// init callback to completion, flips the engine to running, and blocks
// until Stop is called.
package engine
