package service

import "github.com/flowrun/flow/pkg/port"

// Connect wires client to server: client requests flow to the server's
// request port, and the server's responses flow back to the client.
func Connect[Request, Response any](client *ServiceClient[Request, Response], server *ServiceServer[Request, Response]) {
	port.Connect[Request](client.OutRequest(), server.InRequest())
	port.Connect[Response](server.OutResponse(), client.InResponse())
}
