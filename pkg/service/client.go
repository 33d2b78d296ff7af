package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/flowrun/flow/pkg/engine"
	"github.com/flowrun/flow/pkg/port"
)

// ServiceClient sends requests and receives the matching response,
// either blocking the caller (Call) or invoking a callback on a worker
// goroutine when the response arrives (AsyncCall). Only one call may be
// in flight on a given client at a time; starting a new one before the
// previous one resolves abandons the previous one's waiter.
type ServiceClient[Request, Response any] struct {
	eng    *engine.Engine
	logger *slog.Logger

	outRequest *port.DirectOutput[Request]
	inResponse *port.DirectInput[Response]

	mu       sync.Mutex
	pending  chan Response
	callback func(Response)
}

// NewServiceClient creates a ServiceClient. Connect it to a
// ServiceServer with Connect before issuing any call.
func NewServiceClient[Request, Response any](eng *engine.Engine, logger *slog.Logger) *ServiceClient[Request, Response] {
	if logger == nil {
		logger = slog.Default()
	}
	c := &ServiceClient[Request, Response]{
		eng:    eng,
		logger: logger.With(slog.String("component", "service-client")),
	}
	c.outRequest = port.NewDirectOutput[Request]()
	c.inResponse = port.NewDirectInput(c.onResponse)
	return c
}

// OutRequest exposes the client's request port for Connect.
func (c *ServiceClient[Request, Response]) OutRequest() port.Output[Request] { return c.outRequest }

// InResponse exposes the client's response port for Connect.
func (c *ServiceClient[Request, Response]) InResponse() port.Input[Response] { return c.inResponse }

// Call sends request and blocks until the matching response arrives or
// ctx is done. The response is delivered on whatever goroutine the
// server's answer was written from.
func (c *ServiceClient[Request, Response]) Call(ctx context.Context, request Request) (Response, error) {
	id := uuid.New()
	result := make(chan Response, 1)

	c.mu.Lock()
	c.pending = result
	c.callback = nil
	c.mu.Unlock()

	c.logger.Debug("sync call issued", slog.String("call_id", id.String()))
	c.outRequest.Write(request)

	select {
	case resp := <-result:
		return resp, nil
	case <-ctx.Done():
		var zero Response
		c.logger.Warn("sync call abandoned", slog.String("call_id", id.String()), slog.Any("err", ctx.Err()))
		return zero, ctx.Err()
	}
}

// AsyncCall sends request and returns immediately. callback runs on one
// of the engine's worker goroutines once the response arrives.
func (c *ServiceClient[Request, Response]) AsyncCall(request Request, callback func(Response)) {
	id := uuid.New()

	c.mu.Lock()
	c.pending = nil
	c.callback = callback
	c.mu.Unlock()

	c.logger.Debug("async call issued", slog.String("call_id", id.String()))
	c.outRequest.Write(request)
}

func (c *ServiceClient[Request, Response]) onResponse(response Response) {
	c.mu.Lock()
	pending := c.pending
	callback := c.callback
	c.pending = nil
	c.callback = nil
	c.mu.Unlock()

	if pending != nil {
		pending <- response
		return
	}
	if callback != nil {
		c.eng.PushCallback(func() { callback(response) })
	}
}
