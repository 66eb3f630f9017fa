package event

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator generates unique event IDs.
// Implemented by UUIDGenerator (production) and FixedGenerator (tests).
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates random UUIDv4 event IDs with hyphens stripped,
// matching the format the remote engine uses as voice handles.
//
// Thread-safety: UUIDGenerator is stateless and safe for concurrent use.
type UUIDGenerator struct{}

// Generate creates a new ID.
//
// Format: 32 lowercase hex characters.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDGenerator) Generate() string {
	return strings.ReplaceAll(uuid.Must(uuid.NewRandom()).String(), "-", "")
}

// FixedGenerator returns predetermined IDs for testing.
//
// This enables deterministic test execution and golden wire comparison.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
// Generate panics once all ids are exhausted.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined ID.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("event: FixedGenerator exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
