package parallel_test

import (
	"sync/atomic"
	"testing"

	"github.com/ezoic/evalharness/core/parallel"
)

func TestParallelize(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{"empty", 0},
		{"single item", 1},
		{"fewer items than cores", 3},
		{"many items", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited int64
			parallel.Parallelize(tt.items, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt64(&visited, 1)
				}
			})
			if visited != int64(tt.items) {
				t.Errorf("expected %d items visited, got %d", tt.items, visited)
			}
		})
	}
}

func TestParallelizeCoversEveryIndexOnce(t *testing.T) {
	const items = 257
	counts := make([]int64, items)

	parallel.Parallelize(items, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt64(&counts[i], 1)
		}
	})

	for i, c := range counts {
		if c != 1 {
			t.Errorf("index %d visited %d times", i, c)
		}
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	// At or below the threshold the whole range arrives as one chunk.
	var chunks int64
	parallel.ParallelizeWithThreshold(10, 10, func(start, end int) {
		atomic.AddInt64(&chunks, 1)
		if start != 0 || end != 10 {
			t.Errorf("expected single chunk [0,10), got [%d,%d)", start, end)
		}
	})
	if chunks != 1 {
		t.Errorf("expected 1 chunk, got %d", chunks)
	}

	var visited int64
	parallel.ParallelizeWithThreshold(100, 10, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt64(&visited, 1)
		}
	})
	if visited != 100 {
		t.Errorf("expected 100 items visited above threshold, got %d", visited)
	}
}
