package images

import (
	"runtime"
	"sync"
)

// Parallel executes fn across multiple goroutines, each receiving a
// half-open [start, end) partition of the data. Partitioning is by index
// only, so as long as fn writes disjoint output ranges the result is
// deterministic regardless of scheduling. A panic in any partition is
// re-raised on the calling goroutine, so callers can recover at a single
// point.
//
// Arguments:
// - dataSize: The number of items (typically rows) to process.
// - fn: Function invoked once per partition.
func Parallel(dataSize int, fn func(partStart, partEnd int)) {
	numGoroutines := runtime.NumCPU()

	// Small inputs are not worth the goroutine overhead.
	if dataSize < numGoroutines*2 {
		fn(0, dataSize)
		return
	}

	partSize := dataSize / numGoroutines

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	var panicMu sync.Mutex
	var panicked interface{}

	for i := 0; i < numGoroutines; i++ {
		partStart := i * partSize
		partEnd := partStart + partSize
		if i == numGoroutines-1 {
			partEnd = dataSize
		}
		go func(start, end int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicMu.Lock()
					if panicked == nil {
						panicked = r
					}
					panicMu.Unlock()
				}
			}()
			fn(start, end)
		}(partStart, partEnd)
	}

	wg.Wait()
	if panicked != nil {
		panic(panicked)
	}
}
