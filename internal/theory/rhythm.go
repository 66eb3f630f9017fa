package theory

import "math"

// Node is one node of a proportional rhythm tree.
//
// A leaf's Value is its proportional share of the parent duration; a
// negative Value marks a rest, which consumes time without sounding. An
// internal node's Value weights the whole subtree, and its Children
// subdivide that share recursively.
type Node struct {
	Value    int
	Children []Node
}

// Leaf constructs a leaf node.
func Leaf(value int) Node { return Node{Value: value} }

// Branch constructs an internal node subdividing value across children.
func Branch(value int, children ...Node) Node {
	return Node{Value: value, Children: children}
}

// Span is one expanded rhythm-tree leaf: an onset and duration in seconds.
type Span struct {
	Start    float64
	Duration float64
	Rest     bool
}

// Expand distributes tempus seconds across the tree depth-first, producing
// the ordered (start, duration) spans used to bulk-generate scheduler
// events. The spans partition the tempus: durations sum to it exactly (up
// to float arithmetic) and onsets are cumulative.
func Expand(tempus float64, nodes []Node) []Span {
	var spans []Span
	expand(tempus, 0, nodes, &spans)
	return spans
}

func expand(duration, start float64, nodes []Node, spans *[]Span) {
	total := 0.0
	for _, n := range nodes {
		total += math.Abs(float64(n.Value))
	}
	if total == 0 {
		return
	}

	onset := start
	for _, n := range nodes {
		share := duration * math.Abs(float64(n.Value)) / total
		if len(n.Children) == 0 {
			*spans = append(*spans, Span{Start: onset, Duration: share, Rest: n.Value < 0})
		} else {
			expand(share, onset, n.Children, spans)
		}
		onset += share
	}
}
