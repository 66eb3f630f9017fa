package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/roach88/cadenza/internal/event"
	"github.com/roach88/cadenza/internal/journal"
	"github.com/roach88/cadenza/internal/transport"
	"github.com/roach88/cadenza/internal/wire"
)

// Default transport configuration, matching the synth-side convention:
// the scheduler sends to the synthesis engine on 57121 and listens for
// control traffic on 9000.
const (
	DefaultHost        = "127.0.0.1"
	DefaultSendPort    = 57121
	DefaultReceivePort = 9000

	// DefaultPacing is the fixed inter-message delay bounding the outbound
	// datagram rate during a drain pass.
	DefaultPacing = 10 * time.Millisecond
)

// Config holds scheduler transport settings. Zero-valued Host, SendPort,
// and Pacing take the package defaults; a zero ReceivePort binds an
// ephemeral port (tests rely on this).
type Config struct {
	Host        string        // peer host, also the listen interface
	SendPort    int           // outbound OSC port of the synthesis engine
	ReceivePort int           // inbound control port; 0 binds an ephemeral port
	Pacing      time.Duration // inter-send delay; 0 means DefaultPacing
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.SendPort == 0 {
		c.SendPort = DefaultSendPort
	}
	if c.Pacing == 0 {
		c.Pacing = DefaultPacing
	}
	return c
}

// Option configures a Scheduler at construction.
type Option func(*Scheduler)

// WithSender replaces the outbound OSC client. Used by tests to capture
// sends without a network peer.
func WithSender(sender transport.Sender) Option {
	return func(s *Scheduler) {
		s.sender = sender
	}
}

// WithIDGenerator replaces the event ID generator (default UUIDGenerator).
func WithIDGenerator(gen event.IDGenerator) Option {
	return func(s *Scheduler) {
		s.idGen = gen
	}
}

// WithJournal attaches a session journal recording every drain pass and sent
// event. The journal's lifetime is owned by the caller; journal failures are
// logged and never affect delivery.
func WithJournal(j *journal.Journal) Option {
	return func(s *Scheduler) {
		s.journal = j
	}
}

// Counters is a point-in-time snapshot of session telemetry.
//
// Sent never exceeds Total. Processed counts inbound acknowledgments and is
// purely advisory - it may lag or race Sent; no ordering invariant holds
// between the two.
type Counters struct {
	Total     int
	Sent      int
	Processed int
}

// Scheduler sequences timestamped events and delivers them, in start-time
// order, to a remote synthesis engine over OSC/UDP, coordinating with that
// engine through an inbound control channel.
//
// Two goroutines share the session state: the transport server's dispatch
// goroutine (mutating handlers) and the drain goroutine (one pass at a
// time). The state is guarded by mu; cond carries pause and reset wakeups so
// a paused drain pass blocks instead of spinning.
//
// A Scheduler starts paused with an empty queue. Construct one per session;
// there is no shared global state.
type Scheduler struct {
	mu   sync.Mutex
	cond *sync.Cond

	queue    *eventQueue
	paused   bool
	draining bool
	epoch    uint64 // incremented once per Reset; cancels the in-flight pass

	total     int
	sent      int
	processed int

	sender  transport.Sender
	server  *transport.Server
	idGen   event.IDGenerator
	journal *journal.Journal
	pacing  time.Duration

	wg sync.WaitGroup // in-flight drain passes (at most one)
}

// New constructs a Scheduler and binds its inbound control server.
//
// A bind failure is the only fatal construction error: the scheduler cannot
// function without its receive path, so it surfaces synchronously here. The
// outbound client is connectionless and cannot fail at construction.
func New(cfg Config, opts ...Option) (*Scheduler, error) {
	cfg = cfg.withDefaults()

	s := &Scheduler{
		queue:  newEventQueue(),
		paused: true,
		idGen:  event.UUIDGenerator{},
		pacing: cfg.Pacing,
	}
	s.cond = sync.NewCond(&s.mu)

	for _, opt := range opts {
		opt(s)
	}

	if s.sender == nil {
		s.sender = transport.NewClient(cfg.Host, cfg.SendPort)
	}

	server, err := transport.New(fmt.Sprintf("%s:%d", cfg.Host, cfg.ReceivePort), s.handlers())
	if err != nil {
		return nil, err
	}
	s.server = server

	slog.Info("scheduler ready",
		"peer", fmt.Sprintf("%s:%d", cfg.Host, cfg.SendPort),
		"listen", server.LocalAddr().String(),
	)
	return s, nil
}

// NewEvent queues a voice-creation event and returns its generated ID.
// Accepted in any controller state; the event is read at snapshot time.
func (s *Scheduler) NewEvent(target string, start float64, params ...event.Param) string {
	id := s.idGen.Generate()
	s.push(event.Event{ID: id, Kind: event.KindCreate, Target: target, Start: start, Params: params})
	return id
}

// SetEvent queues a parameter-update event against a previously created
// voice. The reference is not validated locally; voice lifetime is owned by
// the remote engine.
func (s *Scheduler) SetEvent(id string, start float64, params ...event.Param) {
	s.push(event.Event{ID: id, Kind: event.KindUpdate, Start: start, Params: params})
}

func (s *Scheduler) push(ev event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Push(ev)
	s.total++
}

// Start begins a drain pass over a fresh queue snapshot on its own
// goroutine, clearing the paused flag first. The sent/processed counters
// restart with each pass so telemetry tracks the new snapshot.
//
// A Start while a pass is already draining is silently ignored - concurrent
// passes are never permitted.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draining {
		slog.Debug("start ignored: drain pass already active")
		return
	}
	// Any earlier pass completed or was reset by now. Carrying its sent
	// count into a replay would push sent past total.
	s.sent = 0
	s.processed = 0
	s.paused = false
	s.cond.Broadcast()

	snapshot := s.queue.Snapshot()
	epoch := s.epoch
	s.draining = true
	s.wg.Add(1)
	go s.drain(snapshot, epoch)
}

// Pause blocks the drain pass before its next send. Idempotent; a send
// already in flight is not interrupted.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.paused {
		s.paused = true
		slog.Debug("paused")
	}
}

// Resume clears the paused flag and unblocks the drain pass.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
	s.cond.Broadcast()
	slog.Debug("resumed")
}

// Reset clears the queue, zeroes all counters, forces the paused state, and
// invalidates any in-flight drain pass. The abandoned pass sends no further
// events and no end-of-transmission sentinel.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Clear()
	s.total = 0
	s.sent = 0
	s.processed = 0
	s.paused = true
	s.epoch++
	s.cond.Broadcast()
	slog.Debug("reset", "epoch", s.epoch)
}

// ClearEvents is an alias of Reset, mirroring the /clear_events control
// address.
func (s *Scheduler) ClearEvents() { s.Reset() }

// eventProcessed records one inbound acknowledgment. Advisory telemetry
// only: it never gates pacing or ordering.
func (s *Scheduler) eventProcessed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed++
}

// Counters returns a snapshot of the session telemetry.
func (s *Scheduler) Counters() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Counters{Total: s.total, Sent: s.sent, Processed: s.processed}
}

// LocalAddr returns the inbound control server's bound address. Useful when
// the scheduler was configured with an ephemeral receive port.
func (s *Scheduler) LocalAddr() net.Addr {
	return s.server.LocalAddr()
}

// Shutdown cancels any in-flight drain pass, stops the inbound server
// (releasing the bound port), and joins both goroutines.
func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	s.epoch++
	s.cond.Broadcast()
	s.mu.Unlock()

	s.wg.Wait()
	return s.server.Shutdown()
}

// drain executes one pass over snapshot. It waits (blocking on cond, never
// spinning) while paused, abandons the pass as soon as the reset epoch moves
// past epoch, and otherwise sends each event in order with the configured
// pacing delay. A pass that exhausts its snapshot without cancellation closes
// with the end-of-transmission sentinel.
//
// Send failures are logged and not retried: delivery is best-effort datagram
// messaging by contract, and a dropped message is silently lost.
func (s *Scheduler) drain(snapshot []event.Event, epoch uint64) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		s.draining = false
		s.mu.Unlock()
	}()

	ctx := context.Background()
	passID := s.beginJournalPass(ctx, len(snapshot))

	for i, ev := range snapshot {
		s.mu.Lock()
		for s.paused && s.epoch == epoch {
			s.cond.Wait()
		}
		cancelled := s.epoch != epoch
		s.mu.Unlock()
		if cancelled {
			slog.Debug("drain pass abandoned", "sent", i, "of", len(snapshot))
			return
		}

		if err := s.sender.Send(wire.EncodeEvent(ev)); err != nil {
			slog.Warn("event send failed", "id", ev.ID, "error", err)
		} else if s.journal != nil {
			if err := s.journal.RecordSent(ctx, passID, i, ev); err != nil {
				slog.Warn("journal write failed", "id", ev.ID, "error", err)
			}
		}

		// A reset may have landed while the send was in flight; counting it
		// would break the sent <= total invariant against zeroed counters.
		s.mu.Lock()
		if s.epoch == epoch {
			s.sent++
		}
		s.mu.Unlock()

		time.Sleep(s.pacing)
	}

	// Reset may have landed after the final send; an invalidated pass must
	// not emit the sentinel.
	s.mu.Lock()
	cancelled := s.epoch != epoch
	s.mu.Unlock()
	if cancelled {
		return
	}

	if err := s.sender.Send(wire.EncodeEndOfTransmission()); err != nil {
		slog.Warn("end-of-transmission send failed", "error", err)
	}
	s.completeJournalPass(ctx, passID, len(snapshot))
	slog.Info("drain pass complete", "sent", len(snapshot))
}

func (s *Scheduler) beginJournalPass(ctx context.Context, planned int) int64 {
	if s.journal == nil {
		return 0
	}
	passID, err := s.journal.BeginPass(ctx, planned)
	if err != nil {
		slog.Warn("journal pass open failed", "error", err)
		return 0
	}
	return passID
}

func (s *Scheduler) completeJournalPass(ctx context.Context, passID int64, sent int) {
	if s.journal == nil || passID == 0 {
		return
	}
	if err := s.journal.CompletePass(ctx, passID, sent); err != nil {
		slog.Warn("journal pass close failed", "error", err)
	}
}
