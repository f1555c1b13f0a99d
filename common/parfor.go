package common

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// GetGrainSize returns a reasonable value to use in Grain
func GetGrainSize(nSamples, minGrainSize, maxGrainSize int) int {
	procs := runtime.GOMAXPROCS(0)
	grainPerProc := nSamples / procs
	if grainPerProc < minGrainSize {
		return minGrainSize
	}
	if grainPerProc > maxGrainSize {
		return maxGrainSize
	}
	return grainPerProc
}

// ParallelFor computes the function f in parallel using chucks of the given size.
// Every index in [0, n) is passed to exactly one call of f. ParallelFor
// panics if grain is not positive.
func ParallelFor(n, grain int, f func(start, end int)) {
	if grain <= 0 {
		panic("parfor: non-positive grain")
	}
	if n <= 0 {
		return
	}
	P := runtime.GOMAXPROCS(0)
	if chunks := (n + grain - 1) / grain; chunks < P {
		P = chunks
	}
	idx := uint64(0)
	var wg sync.WaitGroup
	wg.Add(P)
	for p := 0; p < P; p++ {
		go func() {
			defer wg.Done()
			for {
				start := int(atomic.AddUint64(&idx, uint64(grain))) - grain
				if start >= n {
					break
				}
				end := start + grain
				if end > n {
					end = n
				}
				f(start, end)
			}
		}()
	}
	wg.Wait()
}
