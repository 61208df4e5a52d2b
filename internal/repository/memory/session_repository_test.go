package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_GetOrCreate(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Minute)

	a := repo.GetOrCreate("u1")
	b := repo.GetOrCreate("u1")
	assert.Same(t, a, b)

	got, ok := repo.Get("u1")
	require.True(t, ok)
	assert.Same(t, a, got)

	repo.Delete("u1")
	_, ok = repo.Get("u1")
	assert.False(t, ok)
}

func TestSessionRepository_ConcurrentCreateReturnsOneState(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Minute)

	var wg sync.WaitGroup
	results := make(chan interface{}, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.GetOrCreate("shared")
		}()
	}
	wg.Wait()
	close(results)

	first := <-results
	for r := range results {
		assert.Same(t, first, r)
	}
	assert.Equal(t, 1, repo.Count())
}

func TestSessionRepository_Expiry(t *testing.T) {
	repo := NewSessionRepository(20*time.Millisecond, time.Hour)
	repo.GetOrCreate("u1")

	time.Sleep(40 * time.Millisecond)

	_, ok := repo.Get("u1")
	assert.False(t, ok)
}
