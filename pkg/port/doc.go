// Package port implements the typed connection points that carry values
// between tasks registered on an engine.Engine: an Output publishes
// values, an Input receives them under one of three delivery
// disciplines, and Connect wires the two together.
package port
