package transport

import (
	"fmt"
	"log/slog"
	"net"
	"sync/atomic"

	"github.com/chabad360/go-osc/osc"
)

// Handler processes one inbound OSC message.
//
// Handlers run synchronously on the receive goroutine: mutations they perform
// are serialized with respect to each other, and a handler must never block
// on long-running work (the scheduler offloads its drain pass for exactly
// this reason).
type Handler func(msg *osc.Message)

// Server is the inbound OSC/UDP dispatch server.
//
// The UDP socket is bound at construction so that an unusable receive path
// surfaces synchronously; the receive loop itself runs on a dedicated
// goroutine started by New.
type Server struct {
	conn    net.PacketConn
	srv     *osc.Server
	done    chan struct{}
	closing atomic.Bool
}

// New binds addr, registers handlers by OSC address, and starts the receive
// loop. A bind failure is fatal to the caller - the scheduler cannot function
// without its receive path - and is returned immediately.
//
// addr uses host:port form; port 0 binds an ephemeral port (see LocalAddr).
func New(addr string, handlers map[string]Handler) (*Server, error) {
	d := osc.NewStandardDispatcher()
	for address, handler := range handlers {
		if err := d.AddMsgHandler(address, osc.HandlerFunc(handler)); err != nil {
			return nil, fmt.Errorf("transport: register %s: %w", address, err)
		}
	}

	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: bind %s: %w", addr, err)
	}

	s := &Server{
		conn: conn,
		srv:  &osc.Server{Addr: addr, Dispatcher: d},
		done: make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		if err := s.srv.Serve(s.conn); err != nil && !s.closing.Load() {
			slog.Error("osc server stopped", "addr", addr, "error", err)
		}
	}()

	return s, nil
}

// LocalAddr returns the bound address. Useful when the server was created
// with port 0.
func (s *Server) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

// Shutdown closes the socket, releasing the bound port, and joins the
// receive goroutine. Safe to call once.
func (s *Server) Shutdown() error {
	s.closing.Store(true)
	err := s.conn.Close()
	<-s.done
	return err
}
