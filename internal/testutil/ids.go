package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDs generates snapshot ids "<prefix>-1", "<prefix>-2", ...
//
// Stores opened with a SequenceIDs produce the same ids on every run, so
// listings and golden files stay byte-identical.
//
// Thread-safety: all methods are safe for concurrent use.
type SequenceIDs struct {
	mu     sync.Mutex
	prefix string
	seq    int64
}

// NewSequenceIDs creates a generator. An empty prefix means "snap".
func NewSequenceIDs(prefix string) *SequenceIDs {
	if prefix == "" {
		prefix = "snap"
	}
	return &SequenceIDs{prefix: prefix}
}

// Generate returns the next id. The first call returns "<prefix>-1".
func (g *SequenceIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%d", g.prefix, g.seq)
}

// Issued returns how many ids have been generated.
func (g *SequenceIDs) Issued() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq
}

// Reset starts the sequence over.
func (g *SequenceIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
