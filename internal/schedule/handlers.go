package schedule

import (
	"log/slog"

	"github.com/chabad360/go-osc/osc"

	"github.com/roach88/cadenza/internal/transport"
	"github.com/roach88/cadenza/internal/wire"
)

// handlers builds the inbound dispatch table. Handlers run on the transport
// server's receive goroutine and must return promptly: /start only spawns
// the drain goroutine, so pause, resume, and reset arriving mid-pass take
// effect without waiting on it.
//
// Malformed payloads are logged and dropped with no state change.
func (s *Scheduler) handlers() map[string]transport.Handler {
	return map[string]transport.Handler{
		wire.AddrPause:  func(*osc.Message) { s.Pause() },
		wire.AddrResume: func(*osc.Message) { s.Resume() },
		wire.AddrReset:  func(*osc.Message) { s.Reset() },
		wire.AddrStart:  func(*osc.Message) { s.Start() },

		wire.AddrEventProcessed: func(*osc.Message) { s.eventProcessed() },
		wire.AddrClearEvents:    func(*osc.Message) { s.ClearEvents() },

		wire.AddrNewSynth: func(msg *osc.Message) {
			ev, err := wire.DecodeNewSynth(msg)
			if err != nil {
				slog.Warn("dropping malformed message", "address", msg.Address, "error", err)
				return
			}
			s.push(ev)
		},
		wire.AddrSetSynth: func(msg *osc.Message) {
			ev, err := wire.DecodeSetSynth(msg)
			if err != nil {
				slog.Warn("dropping malformed message", "address", msg.Address, "error", err)
				return
			}
			s.push(ev)
		},
	}
}
