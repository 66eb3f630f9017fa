// Package score loads declarative YAML scores, validates them against a CUE
// schema, and expands their voices into scheduler events.
//
// A score positions events in beats; expansion converts beats to seconds at
// the score's tempo. Voices come in two forms: explicit event lists, and
// proportional rhythm-tree voices expanded through internal/theory.
package score

import (
	"gopkg.in/yaml.v3"
)

// DefaultBeat is the note value carrying the beat when a score omits one.
const DefaultBeat = "1/4"

// Score is a parsed score document.
type Score struct {
	Name   string  `yaml:"name"`
	BPM    float64 `yaml:"bpm"`
	Beat   string  `yaml:"beat"` // note value of one beat, e.g. "1/4"
	Voices []Voice `yaml:"voices"`
}

// Voice is one instrument line. Exactly one of Events or (Tempus, Prolatio)
// is set; the schema enforces the disjunction.
type Voice struct {
	Synth  string  `yaml:"synth"`
	Offset float64 `yaml:"offset"` // onset of the voice, in beats

	// Explicit form.
	Events []Event `yaml:"events"`

	// Rhythm-tree form: Prolatio proportions subdivide the Tempus span.
	Tempus   string    `yaml:"tempus"`
	Prolatio yaml.Node `yaml:"prolatio"`
	Params   yaml.Node `yaml:"params"` // fixed params applied to every generated event
}

// Event is one explicit score event.
//
// Params is kept as a raw YAML node so the author's key order survives into
// the wire encoding; yaml.v3 map decoding would shuffle it.
type Event struct {
	Start  float64   `yaml:"start"` // in beats, relative to the voice offset
	Pitch  string    `yaml:"pitch"` // optional; becomes a freq parameter
	Params yaml.Node `yaml:"params"`
}
