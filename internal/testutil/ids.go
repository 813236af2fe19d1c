package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDs generates deterministic trace IDs for tests.
//
// The first call to Next returns "trace-0001". Reset restarts the sequence
// so the same scenario produces byte-identical output on every run.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequenceIDs struct {
	mu     sync.Mutex
	prefix string
	seq    int
}

// NewSequenceIDs creates a generator. If prefix is empty, "trace" is used.
func NewSequenceIDs(prefix string) *SequenceIDs {
	if prefix == "" {
		prefix = "trace"
	}
	return &SequenceIDs{prefix: prefix}
}

// Next returns the next ID in the sequence.
func (g *SequenceIDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%04d", g.prefix, g.seq)
}

// Reset restarts the sequence.
func (g *SequenceIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
