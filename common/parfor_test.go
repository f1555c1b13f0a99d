package common

import (
	"runtime"
	"sync/atomic"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParallelFor(t *testing.T) {
	for _, test := range []struct {
		n, grain int
	}{
		{0, 1},
		{1, 1},
		{10, 3},
		{100, 7},
		{1000, 1000},
		{1001, 500},
	} {
		counts := make([]int32, test.n)
		ParallelFor(test.n, test.grain, func(start, end int) {
			if end-start > test.grain {
				t.Errorf("n = %v: chunk [%v, %v) larger than grain %v", test.n, start, end, test.grain)
			}
			for i := start; i < end; i++ {
				atomic.AddInt32(&counts[i], 1)
			}
		})
		for i, c := range counts {
			if c != 1 {
				t.Errorf("n = %v: index %v visited %v times", test.n, i, c)
			}
		}
	}
}

func TestParallelForBadGrain(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("ParallelFor did not panic with zero grain")
		}
	}()
	ParallelFor(10, 0, func(start, end int) {})
}

func TestGetGrainSize(t *testing.T) {
	procs := runtime.GOMAXPROCS(0)
	if g := GetGrainSize(0, 1, 500); g != 1 {
		t.Errorf("Expected min grain for no samples, found %v", g)
	}
	if g := GetGrainSize(procs*10000, 1, 500); g != 500 {
		t.Errorf("Expected max grain for many samples, found %v", g)
	}
	if g := GetGrainSize(procs*50, 1, 500); g != 50 {
		t.Errorf("Expected 50 samples per proc, found %v", g)
	}
}
