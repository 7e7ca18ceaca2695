package images

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelCoversEveryIndexExactlyOnce(t *testing.T) {
	// Large enough to take the multi-goroutine path on any machine.
	n := runtime.NumCPU() * 8
	hits := make([]int32, n)

	Parallel(n, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		require.Equal(t, int32(1), h, "index %d", i)
	}
}

func TestParallelSerialFallback(t *testing.T) {
	calls := 0
	Parallel(1, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 1, end)
	})
	assert.Equal(t, 1, calls)
}

func TestParallelPropagatesWorkerPanic(t *testing.T) {
	n := runtime.NumCPU() * 8
	assert.PanicsWithValue(t, "boom", func() {
		Parallel(n, func(start, end int) {
			if start == 0 {
				panic("boom")
			}
		})
	})
}
