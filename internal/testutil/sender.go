// Package testutil provides deterministic test doubles for scheduler tests.
package testutil

import (
	"sync"
	"time"

	"github.com/chabad360/go-osc/osc"
)

// RecordingSender captures outbound OSC messages instead of hitting the
// network. It satisfies transport.Sender.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type RecordingSender struct {
	mu    sync.Mutex
	msgs  []*osc.Message
	delay time.Duration
	err   error
}

// NewRecordingSender creates an empty recorder.
func NewRecordingSender() *RecordingSender {
	return &RecordingSender{}
}

// SetDelay injects an artificial per-send delay, simulating a slow send in
// flight for concurrency tests.
func (s *RecordingSender) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// FailWith makes every subsequent Send return err. Pass nil to heal.
func (s *RecordingSender) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Send records the message after any configured delay.
// Failed sends are recorded too; the scheduler counts attempts.
func (s *RecordingSender) Send(msg *osc.Message) error {
	s.mu.Lock()
	delay, err := s.delay, s.err
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return err
	}
	s.msgs = append(s.msgs, msg)
	return nil
}

// Messages returns a copy of everything recorded so far.
func (s *RecordingSender) Messages() []*osc.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*osc.Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// Count returns the number of recorded messages.
func (s *RecordingSender) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

// WaitForCount blocks until at least n messages are recorded or the timeout
// elapses, reporting whether the count was reached.
func (s *RecordingSender) WaitForCount(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if s.Count() >= n {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}
