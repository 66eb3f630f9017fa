// Package wire encodes scheduler events and control messages to and from
// OSC messages, and defines the address space of the protocol.
package wire

// OSC addresses understood by the scheduler's inbound dispatch.
const (
	AddrPause          = "/pause"
	AddrResume         = "/resume"
	AddrReset          = "/reset"
	AddrStart          = "/start"
	AddrEventProcessed = "/event_processed"
	AddrNewSynth       = "/new_synth"
	AddrSetSynth       = "/set_synth"
	AddrClearEvents    = "/clear_events"
)

// AddrStoreEvent is the single outbound address: every event in a drain pass
// is delivered to it, followed by the end-of-transmission sentinel.
const AddrStoreEvent = "/storeEvent"

// EndOfTransmission is the sentinel payload marking normal completion of a
// drain pass on AddrStoreEvent.
const EndOfTransmission = "end_of_transmission"
