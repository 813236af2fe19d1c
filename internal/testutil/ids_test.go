package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceIDs_Next(t *testing.T) {
	g := NewSequenceIDs("")
	assert.Equal(t, "trace-0001", g.Next())
	assert.Equal(t, "trace-0002", g.Next())

	g.Reset()
	assert.Equal(t, "trace-0001", g.Next())
}

func TestSequenceIDs_Concurrent(t *testing.T) {
	g := NewSequenceIDs("q")

	var wg sync.WaitGroup
	seen := sync.Map{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen.Store(g.Next(), true)
		}()
	}
	wg.Wait()

	count := 0
	seen.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.Equal(t, 50, count)
}
