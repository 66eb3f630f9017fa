package score

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/roach88/cadenza/internal/event"
	"github.com/roach88/cadenza/internal/theory"
)

// Target is the event sink a score expands into.
// *schedule.Scheduler satisfies it.
type Target interface {
	NewEvent(target string, start float64, params ...event.Param) string
}

// Schedule expands every voice of the score into target and returns the
// number of events pushed.
//
// Starts and offsets convert from beats to seconds at the score tempo.
// Synth names and parameter keys are NFC-normalized so scores authored with
// decomposed Unicode round-trip cleanly over the wire.
func (s *Score) Schedule(target Target) (int, error) {
	secondsPerBeat := 60.0 / s.BPM
	count := 0

	for i, v := range s.Voices {
		synth := norm.NFC.String(v.Synth)
		offset := v.Offset * secondsPerBeat

		if len(v.Events) > 0 {
			for j, ev := range v.Events {
				params, err := decodeParams(ev.Params)
				if err != nil {
					return count, fmt.Errorf("score: voice %d event %d: %w", i, j, err)
				}
				if ev.Pitch != "" {
					freq, err := theory.NamedPitchToFreq(ev.Pitch)
					if err != nil {
						return count, fmt.Errorf("score: voice %d event %d: %w", i, j, err)
					}
					params = append([]event.Param{event.P("freq", event.Number(freq))}, params...)
				}
				target.NewEvent(synth, offset+ev.Start*secondsPerBeat, params...)
				count++
			}
			continue
		}

		tempus, err := theory.BeatDuration(v.Tempus, s.BPM, s.Beat)
		if err != nil {
			return count, fmt.Errorf("score: voice %d: %w", i, err)
		}
		nodes, err := decodeProlatio(&v.Prolatio)
		if err != nil {
			return count, fmt.Errorf("score: voice %d: %w", i, err)
		}
		fixed, err := decodeParams(v.Params)
		if err != nil {
			return count, fmt.Errorf("score: voice %d: %w", i, err)
		}

		for _, span := range theory.Expand(tempus, nodes) {
			if span.Rest {
				continue
			}
			params := make([]event.Param, 0, len(fixed)+1)
			params = append(params, fixed...)
			params = append(params, event.P("dur", event.Number(span.Duration)))
			target.NewEvent(synth, offset+span.Start, params...)
			count++
		}
	}
	return count, nil
}

// decodeParams converts a YAML mapping node into an ordered parameter list.
func decodeParams(node yaml.Node) ([]event.Param, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("params must be a mapping")
	}
	params := make([]event.Param, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := norm.NFC.String(node.Content[i].Value)
		val, err := decodeValue(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", key, err)
		}
		params = append(params, event.Param{Key: key, Value: val})
	}
	return params, nil
}

func decodeValue(node *yaml.Node) (event.Value, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("value must be a scalar")
	}
	switch node.Tag {
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err
		}
		return event.Number(f), nil
	case "!!str":
		return event.String(norm.NFC.String(node.Value)), nil
	default:
		return nil, fmt.Errorf("unsupported value tag %s", node.Tag)
	}
}

// decodeProlatio parses a nested proportion list into rhythm-tree nodes.
// An integer element is a leaf; a two-element [value, [children...]] pair is
// a branch subdividing its value.
func decodeProlatio(node *yaml.Node) ([]theory.Node, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("prolatio must be a sequence")
	}
	nodes := make([]theory.Node, 0, len(node.Content))
	for _, item := range node.Content {
		n, err := decodeProlatioNode(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func decodeProlatioNode(item *yaml.Node) (theory.Node, error) {
	switch item.Kind {
	case yaml.ScalarNode:
		var v int
		if err := item.Decode(&v); err != nil {
			return theory.Node{}, fmt.Errorf("prolatio leaf: %w", err)
		}
		return theory.Leaf(v), nil
	case yaml.SequenceNode:
		if len(item.Content) != 2 || item.Content[1].Kind != yaml.SequenceNode {
			return theory.Node{}, fmt.Errorf("prolatio branch must be [value, [children...]]")
		}
		var v int
		if err := item.Content[0].Decode(&v); err != nil {
			return theory.Node{}, fmt.Errorf("prolatio branch value: %w", err)
		}
		children, err := decodeProlatio(item.Content[1])
		if err != nil {
			return theory.Node{}, err
		}
		return theory.Branch(v, children...), nil
	default:
		return theory.Node{}, fmt.Errorf("prolatio element must be an integer or a branch pair")
	}
}
