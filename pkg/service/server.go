package service

import (
	"github.com/flowrun/flow/pkg/engine"
	"github.com/flowrun/flow/pkg/port"
)

// ServiceServer answers requests it receives, one at a time, on an
// engine worker goroutine. callback is invoked at most once per
// request, in the order requests were written.
type ServiceServer[Request, Response any] struct {
	callback func(Request) Response

	outResponse *port.DirectOutput[Response]
	inRequest   *port.CallbackInput[Request]
}

// NewServiceServer creates a ServiceServer backed by eng's worker pool.
// queueSize is optional and forwarded to port.NewCallbackInput.
func NewServiceServer[Request, Response any](eng *engine.Engine, callback func(Request) Response, queueSize ...int) *ServiceServer[Request, Response] {
	s := &ServiceServer[Request, Response]{callback: callback}
	s.outResponse = port.NewDirectOutput[Response]()
	s.inRequest = port.NewCallbackInput(eng, s.handle, queueSize...)
	return s
}

// OutResponse exposes the server's response port for Connect.
func (s *ServiceServer[Request, Response]) OutResponse() port.Output[Response] { return s.outResponse }

// InRequest exposes the server's request port for Connect.
func (s *ServiceServer[Request, Response]) InRequest() port.Input[Request] { return s.inRequest }

func (s *ServiceServer[Request, Response]) handle(request Request) {
	s.outResponse.Write(s.callback(request))
}
