// Package service layers a request/response call pattern on top of
// pkg/port: a ServiceClient sends a request and receives a matching
// response, synchronously or via callback; a ServiceServer receives
// requests off an engine worker goroutine and answers each with a
// response. Connect wires a client to a server over the underlying
// ports.
package service
