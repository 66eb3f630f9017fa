// Package schedule implements the cadenza event-delivery scheduler.
//
// The scheduler is the heart of cadenza - it queues timestamped synthesis
// events, drains them in start-time order to a remote synthesis engine over
// OSC/UDP, and coordinates with that engine through an inbound control
// channel (pause, resume, reset, acknowledgment, late event submission).
//
// ARCHITECTURE:
//
// Two Cooperating Goroutines:
// The inbound dispatch goroutine (transport server) and the drain goroutine
// run independently, sharing one lock-protected session state per Scheduler.
// Dispatch is never blocked by an in-progress drain pass, so pause, resume,
// and reset arriving mid-pass take effect promptly.
//
// Delivery Flow:
// 1. Events pushed into the priority queue (local calls or /new_synth,
//    /set_synth control messages), keyed by (start, insertion seq)
// 2. A start trigger snapshots the queue and spawns one drain pass
// 3. The pass sends each snapshot entry on /storeEvent, pacing each send,
//    blocking on a condition variable while paused
// 4. Exhausting the snapshot emits the end-of-transmission sentinel
// 5. Reset bumps the epoch: the pass observes it, abandons silently
//
// Ordering holds within one pass: non-decreasing start time, ties in push
// order. No ordering is promised across passes; events pushed during a pass
// appear in the next snapshot.
//
// Delivery is best-effort datagram messaging by contract. Failed sends are
// logged and never retried; the acknowledgment counter is advisory telemetry
// and gates nothing.
package schedule
