// Package event defines the scheduled-event record delivered to the remote
// synthesis engine, and the constrained parameter value types carried on the
// wire.
package event

import "fmt"

// Kind distinguishes between event kinds.
type Kind int

const (
	// KindCreate instantiates a new remote voice of a named synth.
	KindCreate Kind = iota + 1
	// KindUpdate adjusts parameters of a previously created voice.
	KindUpdate
)

// String returns the wire spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "new"
	case KindUpdate:
		return "set"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a sealed interface for parameter values.
// Only Number and String implement it - synth parameters are either
// numeric (frequencies, amplitudes, durations) or symbolic (buffer names,
// waveform labels).
type Value interface {
	value() // Sealed - only these types implement it
}

// Number is a numeric parameter value.
// Stored as float64; encoded as float32 on the wire (synth-side convention).
type Number float64

func (Number) value() {}

// String is a symbolic parameter value.
type String string

func (String) value() {}

// Param is one key-value entry of an event's parameter list.
type Param struct {
	Key   string
	Value Value
}

// P is a shorthand Param constructor for ergonomic event building.
// Example: NewEvent("kick", 0.5, P("freq", Number(55)), P("amp", Number(0.3)))
func P(key string, value Value) Param {
	return Param{Key: key, Value: value}
}

// Event is one scheduled action: create a voice or update an existing one.
//
// Events are immutable once constructed. Params preserve insertion order so
// wire encoding is deterministic; round-trip equality is defined on the
// key->value association, not on order.
//
// An Update's ID references a voice presumed created earlier. The scheduler
// does not validate the reference - voice lifetime is owned by the remote
// engine.
type Event struct {
	ID     string  // unique within a session, enforced by generation
	Kind   Kind    // KindCreate or KindUpdate
	Target string  // synth name; required iff Kind == KindCreate
	Start  float64 // start time in seconds, non-negative
	Params []Param
}

// ParamMap returns the parameter list as a map for association-based
// comparison. Later duplicate keys win, matching remote-side semantics.
func (e Event) ParamMap() map[string]Value {
	m := make(map[string]Value, len(e.Params))
	for _, p := range e.Params {
		m[p.Key] = p.Value
	}
	return m
}

// Equivalent reports whether two events carry the same kind, target, start
// time, and parameter association. IDs are not compared.
func (e Event) Equivalent(other Event) bool {
	if e.Kind != other.Kind || e.Target != other.Target || e.Start != other.Start {
		return false
	}
	em, om := e.ParamMap(), other.ParamMap()
	if len(em) != len(om) {
		return false
	}
	for k, v := range em {
		if ov, ok := om[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
