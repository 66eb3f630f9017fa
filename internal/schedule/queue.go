package schedule

import (
	"container/heap"
	"slices"
	"sync"

	"github.com/roach88/cadenza/internal/event"
)

// entry pairs an event with its insertion sequence so that equal start times
// drain in push order.
type entry struct {
	ev  event.Event
	seq uint64
}

// eventHeap is a min-heap ordered by (start, seq).
type eventHeap []entry

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].ev.Start != h[j].ev.Start {
		return h[i].ev.Start < h[j].ev.Start
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) { *h = append(*h, x.(entry)) }

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = entry{} // release the Event's param slice to GC
	*h = old[:n-1]
	return e
}

// eventQueue is a thread-safe priority queue of pending events.
//
// Thread-safety is provided for pushes from the inbound dispatch goroutine
// while the drain goroutine snapshots. A push that races a snapshot lands in
// the next pass; nothing already snapshotted is lost.
//
// Drain iteration happens over a Snapshot, never over the live heap: a
// snapshot is a point-in-time ordered copy, finite and not restartable.
type eventQueue struct {
	mu   sync.Mutex
	heap eventHeap
	seq  uint64
}

func newEventQueue() *eventQueue {
	return &eventQueue{heap: make(eventHeap, 0, 64)}
}

// Push inserts an event keyed by (start, insertion sequence). O(log n).
// The queue does not interpret parameter semantics; filtering events with,
// say, negative durations is the producer's concern.
func (q *eventQueue) Push(ev event.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seq++
	heap.Push(&q.heap, entry{ev: ev, seq: q.seq})
}

// Len returns the number of pending events.
func (q *eventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.heap)
}

// Snapshot returns the queued events in (start, push) order without removing
// them from the live structure. Concurrent pushes during an iteration over
// the returned slice are deferred to the next snapshot.
func (q *eventQueue) Snapshot() []event.Event {
	q.mu.Lock()
	entries := make([]entry, len(q.heap))
	copy(entries, q.heap)
	q.mu.Unlock()

	// The heap slice is partially ordered; a snapshot needs total order.
	slices.SortFunc(entries, func(a, b entry) int {
		if a.ev.Start != b.ev.Start {
			if a.ev.Start < b.ev.Start {
				return -1
			}
			return 1
		}
		if a.seq < b.seq {
			return -1
		}
		return 1
	})

	events := make([]event.Event, len(entries))
	for i, e := range entries {
		events[i] = e.ev
	}
	return events
}

// Clear empties the queue.
func (q *eventQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.heap = q.heap[:0]
}
