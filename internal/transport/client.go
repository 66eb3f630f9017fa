// Package transport provides the outbound OSC/UDP client and the inbound
// OSC/UDP dispatch server used by the scheduler.
//
// Delivery is connectionless and best-effort: a send either reaches the peer
// or is silently lost. The scheduler's contract documents this; nothing in
// this package retries.
package transport

import (
	"github.com/chabad360/go-osc/osc"
)

// Sender is the outbound half of the transport. Satisfied by *Client in
// production and by recording fakes in tests.
type Sender interface {
	Send(msg *osc.Message) error
}

// Client is a persistent OSC/UDP client bound to one configured peer.
//
// Thread-safety: Send may be called from any goroutine; every send is an
// independent datagram.
type Client struct {
	client *osc.Client
}

// NewClient creates a client targeting host:port.
// No connection is established; UDP sends fail per-datagram at Send time.
func NewClient(host string, port int) *Client {
	return &Client{client: osc.NewClient(host, port)}
}

// Send transmits one OSC message to the peer.
func (c *Client) Send(msg *osc.Message) error {
	return c.client.Send(msg)
}
