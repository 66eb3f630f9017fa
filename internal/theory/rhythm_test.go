package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_FlatProportions(t *testing.T) {
	spans := Expand(4, []Node{Leaf(1), Leaf(1), Leaf(2)})
	require.Len(t, spans, 3)

	assert.Equal(t, Span{Start: 0, Duration: 1}, spans[0])
	assert.Equal(t, Span{Start: 1, Duration: 1}, spans[1])
	assert.Equal(t, Span{Start: 2, Duration: 2}, spans[2])
}

func TestExpand_NestedSubdivision(t *testing.T) {
	// 2 seconds split 1:1, second half subdivided into a triplet.
	spans := Expand(2, []Node{
		Leaf(1),
		Branch(1, Leaf(1), Leaf(1), Leaf(1)),
	})
	require.Len(t, spans, 4)

	assert.InDelta(t, 0, spans[0].Start, 1e-9)
	assert.InDelta(t, 1, spans[0].Duration, 1e-9)
	for i := 1; i < 4; i++ {
		assert.InDelta(t, 1+float64(i-1)/3, spans[i].Start, 1e-9)
		assert.InDelta(t, 1.0/3, spans[i].Duration, 1e-9)
	}
}

func TestExpand_RestsConsumeTime(t *testing.T) {
	spans := Expand(3, []Node{Leaf(1), Leaf(-1), Leaf(1)})
	require.Len(t, spans, 3)

	assert.False(t, spans[0].Rest)
	assert.True(t, spans[1].Rest)
	assert.False(t, spans[2].Rest)
	assert.InDelta(t, 2, spans[2].Start, 1e-9, "rest advances the onset")
}

func TestExpand_SpansPartitionTempus(t *testing.T) {
	tempus := 7.5
	spans := Expand(tempus, []Node{
		Branch(2, Leaf(3), Leaf(-1), Leaf(2)),
		Leaf(1),
		Branch(3, Leaf(1), Branch(1, Leaf(1), Leaf(1))),
	})

	total := 0.0
	for i, s := range spans {
		assert.InDelta(t, total, s.Start, 1e-9, "span %d onset", i)
		total += s.Duration
	}
	assert.InDelta(t, tempus, total, 1e-9)
}

func TestExpand_EmptyAndZero(t *testing.T) {
	assert.Empty(t, Expand(4, nil))
	assert.Empty(t, Expand(4, []Node{}))
}
