package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/rpath/internal/testutil"
)

// createTestStore creates a new store under t.TempDir() with snapshot ids
// snap-1, snap-2, ...
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	opts = append([]Option{WithIDGenerator(testutil.NewSequenceIDs("snap"))}, opts...)
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleGraph() map[string]any {
	return testutil.LibraryGraph()
}
