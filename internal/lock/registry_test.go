package lock_test

import (
	"sync"
	"testing"

	"github.com/baharkarakas/point-service/internal/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForReturnsSameHandlePerKey(t *testing.T) {
	r := lock.NewRegistry()

	first := r.For(1)
	require.NotNil(t, first)
	assert.Same(t, first, r.For(1))
}

func TestForReturnsDistinctHandlesAcrossKeys(t *testing.T) {
	r := lock.NewRegistry()

	assert.NotSame(t, r.For(1), r.For(2))
}

func TestConcurrentFirstAccessAllocatesOneHandle(t *testing.T) {
	r := lock.NewRegistry()

	const n = 100
	handles := make([]*sync.Mutex, n)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			handles[i] = r.For(77)
		}(i)
	}
	start.Done()
	done.Wait()

	for i := 1; i < n; i++ {
		require.Same(t, handles[0], handles[i], "goroutine %d got a different handle", i)
	}
}

func TestHandleActuallySerializes(t *testing.T) {
	r := lock.NewRegistry()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu := r.For(9)
			mu.Lock()
			counter++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}
