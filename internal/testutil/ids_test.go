package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceIDs_StartsAtOne(t *testing.T) {
	ids := NewSequenceIDs("snap")
	assert.Equal(t, int64(0), ids.Issued())

	assert.Equal(t, "snap-1", ids.Generate())
	assert.Equal(t, "snap-2", ids.Generate())
	assert.Equal(t, "snap-3", ids.Generate())
	assert.Equal(t, int64(3), ids.Issued())
}

func TestSequenceIDs_DefaultPrefix(t *testing.T) {
	assert.Equal(t, "snap-1", NewSequenceIDs("").Generate())
	assert.Equal(t, "run-1", NewSequenceIDs("run").Generate())
}

func TestSequenceIDs_Reset(t *testing.T) {
	ids := NewSequenceIDs("")
	ids.Generate()
	ids.Generate()

	ids.Reset()
	assert.Equal(t, int64(0), ids.Issued())

	// First call after reset repeats the first id
	assert.Equal(t, "snap-1", ids.Generate())
}

func TestSequenceIDs_ThreadSafe(t *testing.T) {
	ids := NewSequenceIDs("")
	const numGoroutines = 50
	const callsPerGoroutine = 20

	var wg sync.WaitGroup
	seen := make(chan string, numGoroutines*callsPerGoroutine)
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				seen <- ids.Generate()
			}
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[string]bool{}
	for id := range seen {
		require.False(t, unique[id], "duplicate id %s", id)
		unique[id] = true
	}
	assert.Len(t, unique, numGoroutines*callsPerGoroutine)
	assert.Equal(t, int64(numGoroutines*callsPerGoroutine), ids.Issued())
}

func TestLibraryGraph_Fresh(t *testing.T) {
	a := LibraryGraph()
	a["name"] = "changed"

	assert.Equal(t, "library", LibraryGraph()["name"])
}
